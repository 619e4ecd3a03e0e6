// SPDX-FileCopyrightText: Copyright (c) 2024 Siderolabs
// SPDX-License-Identifier: Apache-2.0

package sbi

// The firmware extension is private to this firmware/runtime pair. Its id
// is derived from the runtime's implementation id inside the reserved
// firmware band, so it cannot collide with a standard extension. It exposes
// the per-hart scratch space, through which upper firmware phases find
// their environment.

// Mscratch returns the scratch space pointer of the calling hart as an
// opaque handle. Only the runtime and the platform collaborator interpret
// what it points at.
func (c *Client) Mscratch(fwExt uint64) (uintptr, error) {
	ret := c.call(fwExt, FirmwareMscratch)
	if err := translateError(ret.Error); err != nil {
		return 0, err
	}

	return uintptr(ret.Value), nil
}

// MscratchForHart returns the scratch space pointer of the given hart as an
// opaque handle.
func (c *Client) MscratchForHart(fwExt, hart uint64) (uintptr, error) {
	ret := c.call(fwExt, FirmwareMscratchHartID, hart)
	if err := translateError(ret.Error); err != nil {
		return 0, err
	}

	return uintptr(ret.Value), nil
}
