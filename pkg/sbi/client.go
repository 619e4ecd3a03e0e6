// SPDX-FileCopyrightText: Copyright (c) 2024 Siderolabs
// SPDX-License-Identifier: Apache-2.0

package sbi

import (
	"fmt"
	"log/slog"
)

// Client issues SBI calls through an Invoker and exposes the typed
// per-extension wrappers. The zero value is not usable; use NewClient.
//
// A Client carries no state between calls. Results are never cached:
// anything the runtime reports (hart status in particular) can go stale the
// moment it is read.
type Client struct {
	inv    Invoker
	logger *slog.Logger
}

// NewClient returns a Client issuing calls through inv. On real hardware
// inv is Machine(); tests and tooling substitute an emulated runtime.
func NewClient(inv Invoker, log *slog.Logger) *Client {
	return &Client{
		inv:    inv,
		logger: log.With("module", "sbi"),
	}
}

// call builds the register frame for one SBI call, zero-filling unused
// argument slots, and issues the trap. Internal callers never pass more
// than six arguments; the vendor passthrough validates before it gets here.
func (c *Client) call(ext, fn uint64, args ...uint64) Ret {
	var frame [6]uint64

	copy(frame[:], args)

	ret := c.inv.Ecall(ext, fn, frame)

	c.logger.Debug("sbi call",
		"ext", fmt.Sprintf("%#x", ext), "fn", fn,
		"args", args,
		"error", ret.Error, "value", fmt.Sprintf("%#x", ret.Value))

	return ret
}
