// SPDX-FileCopyrightText: Copyright (c) 2024 Siderolabs
// SPDX-License-Identifier: Apache-2.0

package sbi

// read-only queries of the base extension; every runtime implements these

// SpecVersion returns the implemented SBI specification version. The minor
// number sits in the low 24 bits, the major number in the next 7; bit 31 is
// reserved and zero.
func (c *Client) SpecVersion() (uint64, error) {
	ret := c.call(ExtBase, BaseGetSpecVersion)
	if err := translateError(ret.Error); err != nil {
		return 0, err
	}

	return ret.Value, nil
}

// ImplID returns the id of the SBI implementation, used to work around
// quirks of a specific runtime and to derive the firmware extension id.
func (c *Client) ImplID() (uint64, error) {
	ret := c.call(ExtBase, BaseGetImplID)
	if err := translateError(ret.Error); err != nil {
		return 0, err
	}

	return ret.Value, nil
}

// ImplVersion returns the version of the SBI implementation. Its encoding
// is implementation specific.
func (c *Client) ImplVersion() (uint64, error) {
	ret := c.call(ExtBase, BaseGetImplVersion)
	if err := translateError(ret.Error); err != nil {
		return 0, err
	}

	return ret.Value, nil
}

// ProbeExtension asks the runtime whether it implements the given
// extension. The result is 0 when the extension is absent and an extension
// defined nonzero value when present. Probing an absent extension is not an
// error.
func (c *Client) ProbeExtension(ext uint64) (uint64, error) {
	ret := c.call(ExtBase, BaseProbeExtension, ext)
	if err := translateError(ret.Error); err != nil {
		return 0, err
	}

	return ret.Value, nil
}

// MvendorID returns the value of the mvendorid CSR.
func (c *Client) MvendorID() (uint64, error) {
	ret := c.call(ExtBase, BaseGetMvendorID)
	if err := translateError(ret.Error); err != nil {
		return 0, err
	}

	return ret.Value, nil
}

// MarchID returns the value of the marchid CSR.
func (c *Client) MarchID() (uint64, error) {
	ret := c.call(ExtBase, BaseGetMarchID)
	if err := translateError(ret.Error); err != nil {
		return 0, err
	}

	return ret.Value, nil
}

// MimpID returns the value of the mimpid CSR.
func (c *Client) MimpID() (uint64, error) {
	ret := c.call(ExtBase, BaseGetMimpID)
	if err := translateError(ret.Error); err != nil {
		return 0, err
	}

	return ret.Value, nil
}
