// SPDX-FileCopyrightText: Copyright (c) 2024 Siderolabs
// SPDX-License-Identifier: Apache-2.0

package fwcontext

import "unsafe"

// Platform knows how to reach the firmware context field from a scratch
// handle. The layout behind the handle belongs to the runtime and the
// platform, not to this layer, which is why both values stay opaque
// integers at this boundary.
type Platform interface {
	// FirmwareContext reads the firmware context pointer reachable from
	// the given scratch handle.
	FirmwareContext(scratch uintptr) uintptr

	// SetFirmwareContext overwrites the firmware context pointer reachable
	// from the given scratch handle.
	SetFirmwareContext(scratch, ctx uintptr)
}

// RawPlatform is the Platform for real hardware: the word at
// scratch+PlatformOffset points at the platform descriptor, and the word at
// platform+ContextOffset is the firmware context field. The offsets come
// from the runtime build this firmware is paired with.
type RawPlatform struct {
	PlatformOffset uintptr
	ContextOffset  uintptr
}

// FirmwareContext implements Platform.
func (p RawPlatform) FirmwareContext(scratch uintptr) uintptr {
	platform := *(*uintptr)(unsafe.Pointer(scratch + p.PlatformOffset)) //nolint:govet

	return *(*uintptr)(unsafe.Pointer(platform + p.ContextOffset))
}

// SetFirmwareContext implements Platform.
func (p RawPlatform) SetFirmwareContext(scratch, ctx uintptr) {
	platform := *(*uintptr)(unsafe.Pointer(scratch + p.PlatformOffset)) //nolint:govet

	*(*uintptr)(unsafe.Pointer(platform + p.ContextOffset)) = ctx
}
