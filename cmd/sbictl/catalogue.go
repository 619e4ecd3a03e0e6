// SPDX-FileCopyrightText: Copyright (c) 2024 Siderolabs
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/siderolabs/go-sbi/pkg/sbi"
)

// operation is one callable (extension, function) pair with its argument
// names, in register order.
type operation struct {
	name string
	args []string
	ext  uint64
	fn   uint64
}

// extension groups the operations of one extension id.
type extension struct {
	name string
	ops  []operation
	id   uint64
}

var catalogue = []extension{
	{
		name: "base", id: sbi.ExtBase,
		ops: []operation{
			{name: "spec-version", ext: sbi.ExtBase, fn: sbi.BaseGetSpecVersion},
			{name: "impl-id", ext: sbi.ExtBase, fn: sbi.BaseGetImplID},
			{name: "impl-version", ext: sbi.ExtBase, fn: sbi.BaseGetImplVersion},
			{name: "probe", ext: sbi.ExtBase, fn: sbi.BaseProbeExtension, args: []string{"extension"}},
			{name: "mvendorid", ext: sbi.ExtBase, fn: sbi.BaseGetMvendorID},
			{name: "marchid", ext: sbi.ExtBase, fn: sbi.BaseGetMarchID},
			{name: "mimpid", ext: sbi.ExtBase, fn: sbi.BaseGetMimpID},
		},
	},
	{
		name: "hsm", id: sbi.ExtHSM,
		ops: []operation{
			{name: "hart-start", ext: sbi.ExtHSM, fn: sbi.HSMHartStart, args: []string{"hart", "start-addr", "priv"}},
			{name: "hart-stop", ext: sbi.ExtHSM, fn: sbi.HSMHartStop},
			{name: "hart-status", ext: sbi.ExtHSM, fn: sbi.HSMHartGetStatus, args: []string{"hart"}},
		},
	},
	{
		name: "time", id: sbi.ExtTimer,
		ops: []operation{
			{name: "set-timer", ext: sbi.ExtTimer, fn: sbi.TimerSetTimer, args: []string{"stime"}},
		},
	},
	{
		name: "ipi", id: sbi.ExtIPI,
		ops: []operation{
			{name: "send-ipi", ext: sbi.ExtIPI, fn: sbi.IPISendIPI, args: []string{"mask-bits", "mask-base"}},
		},
	},
	{
		name: "rfence", id: sbi.ExtRFence,
		ops: []operation{
			{name: "fence-i", ext: sbi.ExtRFence, fn: sbi.RFenceFenceI, args: []string{"mask-bits", "mask-base"}},
			{name: "sfence-vma", ext: sbi.ExtRFence, fn: sbi.RFenceSFenceVMA, args: []string{"mask-bits", "mask-base", "start", "size"}},
			{name: "sfence-vma-asid", ext: sbi.ExtRFence, fn: sbi.RFenceSFenceVMAASID, args: []string{"mask-bits", "mask-base", "start", "size", "asid"}},
			{name: "hfence-gvma-vmid", ext: sbi.ExtRFence, fn: sbi.RFenceHFenceGVMAVMID, args: []string{"mask-bits", "mask-base", "start", "size", "vmid"}},
			{name: "hfence-gvma", ext: sbi.ExtRFence, fn: sbi.RFenceHFenceGVMA, args: []string{"mask-bits", "mask-base", "start", "size"}},
			{name: "hfence-vvma-asid", ext: sbi.ExtRFence, fn: sbi.RFenceHFenceVVMAASID, args: []string{"mask-bits", "mask-base", "start", "size", "asid"}},
			{name: "hfence-vvma", ext: sbi.ExtRFence, fn: sbi.RFenceHFenceVVMA, args: []string{"mask-bits", "mask-base", "start", "size"}},
		},
	},
}

// findOperation resolves an operation by name ("hsm/hart-start" or plain
// "hart-start" when unambiguous).
func findOperation(name string) (operation, bool) {
	extName, opName, qualified := strings.Cut(name, "/")

	for _, ext := range catalogue {
		if qualified && ext.name != extName {
			continue
		}

		for _, op := range ext.ops {
			if (qualified && op.name == opName) || (!qualified && op.name == extName) {
				return op, true
			}
		}
	}

	return operation{}, false
}

func statusName(status int64) string {
	switch {
	case status == 0:
		return "success"
	case status >= -6 && status <= -1:
		return sbi.StatusError(status).Error()
	default:
		return fmt.Sprintf("out of contract (%d)", status)
	}
}

// parseWord accepts decimal or 0x-prefixed hexadecimal machine words.
func parseWord(s string) (uint64, error) {
	return strconv.ParseUint(strings.TrimPrefix(strings.ToLower(s), "0x"), base(s), 64)
}

func base(s string) int {
	if strings.HasPrefix(strings.ToLower(s), "0x") {
		return 16
	}

	return 10
}
