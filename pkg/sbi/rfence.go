// SPDX-FileCopyrightText: Copyright (c) 2024 Siderolabs
// SPDX-License-Identifier: Apache-2.0

package sbi

// Remote fence broadcasts. All range-based variants share one convention:
// start == 0 && size == 0, or size equal to the full address space span,
// request a full flush rather than a zero-length one. Like SendIPI they
// return once the request is accepted, not once the remote harts have
// executed the fence.

// RemoteFenceI makes the selected harts execute a FENCE.I instruction.
func (c *Client) RemoteFenceI(mask HartMask) error {
	bits, base := mask.args()

	ret := c.call(ExtRFence, RFenceFenceI, bits, base)

	return translateError(ret.Error)
}

// RemoteSFenceVMA makes the selected harts execute SFENCE.VMA covering the
// virtual address range [start, start+size).
func (c *Client) RemoteSFenceVMA(mask HartMask, start, size uint64) error {
	bits, base := mask.args()

	ret := c.call(ExtRFence, RFenceSFenceVMA, bits, base, start, size)

	return translateError(ret.Error)
}

// RemoteSFenceVMAASID is RemoteSFenceVMA restricted to the given ASID.
func (c *Client) RemoteSFenceVMAASID(mask HartMask, start, size, asid uint64) error {
	bits, base := mask.args()

	ret := c.call(ExtRFence, RFenceSFenceVMAASID, bits, base, start, size, asid)

	return translateError(ret.Error)
}

// RemoteHFenceGVMAVMID makes the selected harts execute HFENCE.GVMA for the
// guest physical range [start, start+size), restricted to the given VMID.
// Only valid for harts implementing the hypervisor extension; a hart
// without it surfaces ErrNotSupported.
func (c *Client) RemoteHFenceGVMAVMID(mask HartMask, start, size, vmid uint64) error {
	bits, base := mask.args()

	ret := c.call(ExtRFence, RFenceHFenceGVMAVMID, bits, base, start, size, vmid)

	return translateError(ret.Error)
}

// RemoteHFenceGVMA makes the selected harts execute HFENCE.GVMA for the
// guest physical range [start, start+size) across all VMIDs. Only valid for
// harts implementing the hypervisor extension.
func (c *Client) RemoteHFenceGVMA(mask HartMask, start, size uint64) error {
	bits, base := mask.args()

	ret := c.call(ExtRFence, RFenceHFenceGVMA, bits, base, start, size)

	return translateError(ret.Error)
}

// RemoteHFenceVVMAASID makes the selected harts execute HFENCE.VVMA for the
// guest virtual range [start, start+size), restricted to the given ASID.
// Only valid for harts implementing the hypervisor extension.
func (c *Client) RemoteHFenceVVMAASID(mask HartMask, start, size, asid uint64) error {
	bits, base := mask.args()

	ret := c.call(ExtRFence, RFenceHFenceVVMAASID, bits, base, start, size, asid)

	return translateError(ret.Error)
}

// RemoteHFenceVVMA makes the selected harts execute HFENCE.VVMA for the
// guest virtual range [start, start+size) across all ASIDs. Only valid for
// harts implementing the hypervisor extension.
func (c *Client) RemoteHFenceVVMA(mask HartMask, start, size uint64) error {
	bits, base := mask.args()

	ret := c.call(ExtRFence, RFenceHFenceVVMA, bits, base, start, size)

	return translateError(ret.Error)
}
