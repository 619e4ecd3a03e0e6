// SPDX-FileCopyrightText: Copyright (c) 2024 Siderolabs
// SPDX-License-Identifier: Apache-2.0

package sbi

// this file defines the trap boundary: the register frame going in and the
// (error, value) pair coming back out

// MaxHarts is the number of harts the reference platform can carry. It is
// a hard capacity bound fixed at build time, not negotiable at runtime.
const MaxHarts = 16

// Extension ids of the standard SBI extensions wrapped by this package,
// plus the reserved bands for vendor and firmware specific extensions.
const (
	ExtBase   uint64 = 0x10
	ExtTimer  uint64 = 0x54494D45 // "TIME"
	ExtIPI    uint64 = 0x735049   // "sPI"
	ExtRFence uint64 = 0x52464E43 // "RFNC"
	ExtHSM    uint64 = 0x48534D   // "HSM"

	ExtVendorStart   uint64 = 0x09000000
	ExtVendorEnd     uint64 = 0x09FFFFFF
	ExtFirmwareStart uint64 = 0x0A000000
	ExtFirmwareEnd   uint64 = 0x0AFFFFFF
)

// Function ids of the base extension.
const (
	BaseGetSpecVersion uint64 = iota
	BaseGetImplID
	BaseGetImplVersion
	BaseProbeExtension
	BaseGetMvendorID
	BaseGetMarchID
	BaseGetMimpID
)

// Function ids of the hart state management extension.
const (
	HSMHartStart uint64 = iota
	HSMHartStop
	HSMHartGetStatus
)

// Function ids of the timer extension.
const (
	TimerSetTimer uint64 = iota
)

// Function ids of the IPI extension.
const (
	IPISendIPI uint64 = iota
)

// Function ids of the remote fence extension.
const (
	RFenceFenceI uint64 = iota
	RFenceSFenceVMA
	RFenceSFenceVMAASID
	RFenceHFenceGVMAVMID
	RFenceHFenceGVMA
	RFenceHFenceVVMAASID
	RFenceHFenceVVMA
)

// Function ids of the firmware extension shared between this layer and the
// OpenSBI build it is paired with.
const (
	FirmwareMscratch uint64 = iota
	FirmwareMscratchHartID
)

// Ret is the raw result of one ECALL: the status code from a0 and the
// payload from a1. Error is zero on success and one of the negative wire
// codes otherwise; Value is operation specific (a count, an address, an
// opaque pointer or a probe flag).
type Ret struct {
	Error int64
	Value uint64
}

// Invoker issues a single SBI call. It is the only place where this layer
// crosses the privilege boundary; everything above it is plain Go.
//
// Ecall places ext in a7, fn in a6 and args in a0-a5 (unused slots must be
// zero), executes the trap and returns the (a0, a1) pair. The trap is a
// full memory ordering barrier and blocks the calling hart until the
// runtime returns. HartStop is the one call that does not come back on
// success.
type Invoker interface {
	Ecall(ext, fn uint64, args [6]uint64) Ret
}

// FirmwareExtension computes the extension id of the firmware extension for
// the given SBI implementation id. The id lands inside the reserved
// firmware band, so it cannot collide with a standard extension.
func FirmwareExtension(implID uint64) uint64 {
	return ExtFirmwareStart | implID
}
