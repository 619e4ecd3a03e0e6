// SPDX-FileCopyrightText: Copyright (c) 2024 Siderolabs
// SPDX-License-Identifier: Apache-2.0

package fwcontext

import (
	"testing"
	"unsafe"
)

func TestRawPlatform(t *testing.T) {
	const ptr = unsafe.Sizeof(uintptr(0))

	// lay out an in-process stand-in for the runtime's scratch and
	// platform structures
	var (
		platformMem [4]uintptr
		scratchMem  [6]uintptr
	)

	scratchMem[5] = uintptr(unsafe.Pointer(&platformMem))

	p := RawPlatform{
		PlatformOffset: 5 * ptr,
		ContextOffset:  2 * ptr,
	}

	scratch := uintptr(unsafe.Pointer(&scratchMem))

	p.SetFirmwareContext(scratch, 0xFEED)

	if platformMem[2] != 0xFEED {
		t.Errorf("context field = %#x, want 0xfeed", platformMem[2])
	}

	if got := p.FirmwareContext(scratch); got != 0xFEED {
		t.Errorf("FirmwareContext = %#x, want 0xfeed", got)
	}
}
