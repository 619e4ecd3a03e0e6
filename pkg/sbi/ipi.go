// SPDX-FileCopyrightText: Copyright (c) 2024 Siderolabs
// SPDX-License-Identifier: Apache-2.0

package sbi

// SendIPI requests a supervisor software interrupt on every hart selected
// by mask. It returns once the runtime has accepted the request, not once
// the interrupts have been delivered; a caller needing completion must
// synchronize out of band.
//
// An unknown hart id anywhere in the selected set fails the whole call with
// ErrInvalidParam and no hart is signaled.
func (c *Client) SendIPI(mask HartMask) error {
	bits, base := mask.args()

	ret := c.call(ExtIPI, IPISendIPI, bits, base)

	return translateError(ret.Error)
}
