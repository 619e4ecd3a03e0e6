// SPDX-FileCopyrightText: Copyright (c) 2024 Siderolabs
// SPDX-License-Identifier: Apache-2.0

package sbi

import "fmt"

// MaskBaseAll is the hart mask base meaning "every hart the platform
// knows"; Bits is ignored when Base is set to it.
const MaskBaseAll = ^uint64(0)

// HartMask selects the target harts of a broadcast operation (IPI, remote
// fence). Bit i of Bits selects hart Base+i. Validation of the selected set
// is the runtime's job: a single unknown hart id anywhere in the set fails
// the whole call, there is no partial delivery.
type HartMask struct {
	Bits uint64
	Base uint64
}

// MaskOf builds a base-zero mask selecting exactly the given harts. The
// bit-vector is a single machine word, so only hart ids below 64 fit; a
// larger id is a defect in the caller and panics. Build a HartMask with a
// nonzero Base to reach higher ids.
func MaskOf(harts ...uint64) HartMask {
	var m HartMask

	for _, h := range harts {
		if h >= 64 {
			panic(fmt.Sprintf("sbi: hart id %d does not fit a base-zero mask word", h))
		}

		m.Bits |= 1 << h
	}

	return m
}

// AllHarts returns the mask targeting every known hart.
func AllHarts() HartMask {
	return HartMask{Base: MaskBaseAll}
}

// All reports whether the mask targets every known hart.
func (m HartMask) All() bool {
	return m.Base == MaskBaseAll
}

// args returns the mask in its wire order, (a0, a1).
func (m HartMask) args() (uint64, uint64) {
	return m.Bits, m.Base
}
