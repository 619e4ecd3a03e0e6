// SPDX-FileCopyrightText: Copyright (c) 2024 Siderolabs
// SPDX-License-Identifier: Apache-2.0

// Package fwcontext tracks the per-hart firmware environment. Each hart has
// a scratch space inside the runtime, reachable only through the firmware
// extension; inside it, behind a platform defined indirection, sits the
// firmware context pointer that upper firmware phases use to find their
// own state. This package keeps the table of discovered scratch handles and
// wraps the context field accesses.
package fwcontext

import (
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/siderolabs/go-sbi/pkg/sbi"
)

// Registry holds one scratch handle per hart id. The table has exactly
// sbi.MaxHarts slots and starts out zeroed. Slot i is owned by whichever
// firmware phase runs on hart i: only that hart writes it. Reading another
// hart's slot is allowed but is a point-in-time snapshot that can be stale
// the instant it is read; no synchronization beyond atomic publication is
// provided, on purpose.
type Registry struct {
	client   *sbi.Client
	platform Platform
	logger   *slog.Logger
	fwExt    uint64

	slots [sbi.MaxHarts]atomic.Uintptr
}

// New builds a Registry over the given client. The firmware extension id is
// derived from the runtime's implementation id, which is queried once here.
func New(client *sbi.Client, platform Platform, log *slog.Logger) (*Registry, error) {
	implID, err := client.ImplID()
	if err != nil {
		return nil, fmt.Errorf("querying SBI implementation id: %w", err)
	}

	return &Registry{
		client:   client,
		platform: platform,
		logger:   log.With("module", "fwcontext"),
		fwExt:    sbi.FirmwareExtension(implID),
	}, nil
}

// FirmwareExtensionID returns the derived firmware extension id.
func (r *Registry) FirmwareExtensionID() uint64 {
	return r.fwExt
}

// Discover asks the runtime for the scratch handle of the given hart and
// records it in the hart's slot. Firmware bring-up calls this once per
// hart, each hart for itself.
func (r *Registry) Discover(hart uint64) (uintptr, error) {
	if hart >= sbi.MaxHarts {
		return 0, sbi.ErrInvalidParam
	}

	scratch, err := r.client.MscratchForHart(r.fwExt, hart)
	if err != nil {
		return 0, fmt.Errorf("querying scratch of hart %d: %w", hart, err)
	}

	r.slots[hart].Store(scratch)
	r.logger.Debug("discovered scratch", "hart", hart, "scratch", fmt.Sprintf("%#x", scratch))

	return scratch, nil
}

// Snapshot reads the recorded scratch handle of a hart without issuing a
// call. The second return is false when the slot was never populated or the
// hart id is out of range. The value may be stale relative to a concurrent
// Discover on the owning hart.
func (r *Registry) Snapshot(hart uint64) (uintptr, bool) {
	if hart >= sbi.MaxHarts {
		return 0, false
	}

	scratch := r.slots[hart].Load()

	return scratch, scratch != 0
}
