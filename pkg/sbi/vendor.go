// SPDX-FileCopyrightText: Copyright (c) 2024 Siderolabs
// SPDX-License-Identifier: Apache-2.0

package sbi

import "fmt"

// VendorCall forwards a call to a vendor defined extension. The meaning of
// fn, the arguments and the returned value are whatever the vendor says
// they are.
//
// ext must lie inside the reserved vendor band [ExtVendorStart,
// ExtVendorEnd]; anything else is a defect in the calling firmware, not a
// runtime condition, and panics. More than six arguments cannot be carried
// by the register convention (no stack spill is implemented) and returns
// ErrInvalidParam without issuing the trap.
func (c *Client) VendorCall(ext, fn uint64, args ...uint64) (uint64, error) {
	if ext < ExtVendorStart || ext > ExtVendorEnd {
		panic(fmt.Sprintf("sbi: extension %#x is outside the vendor extension band", ext))
	}

	if len(args) > 6 {
		return 0, ErrInvalidParam
	}

	ret := c.call(ext, fn, args...)
	if err := translateError(ret.Error); err != nil {
		return 0, err
	}

	return ret.Value, nil
}
