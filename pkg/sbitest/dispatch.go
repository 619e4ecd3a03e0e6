// SPDX-FileCopyrightText: Copyright (c) 2024 Siderolabs
// SPDX-License-Identifier: Apache-2.0

package sbitest

import (
	"math"

	"github.com/siderolabs/go-sbi/pkg/sbi"
)

// wire codes, machine side
const (
	sbiSuccess         int64 = 0
	sbiErrFailed       int64 = -1
	sbiErrNotSupported int64 = -2
	sbiErrInvalidParam int64 = -3
	sbiErrInvalidAddr  int64 = -5
	sbiErrAlreadyAvail int64 = -6
)

func success(value uint64) sbi.Ret {
	return sbi.Ret{Error: sbiSuccess, Value: value}
}

func failure(code int64) sbi.Ret {
	return sbi.Ret{Error: code}
}

// Ecall dispatches one register frame, exactly like the trap handler of a
// real runtime: extension id from a7, function id from a6, arguments from
// a0-a5, result into a0 and a1.
func (f *Firmware) Ecall(ext, fn uint64, args [6]uint64) sbi.Ret {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, Call{Ext: ext, Fn: fn, Args: args})

	switch {
	case ext == sbi.ExtBase:
		return f.handleBase(fn, args)
	case ext == sbi.ExtHSM:
		return f.handleHSM(fn, args)
	case ext == sbi.ExtTimer:
		return f.handleTimer(fn, args)
	case ext == sbi.ExtIPI:
		return f.handleIPI(fn, args)
	case ext == sbi.ExtRFence:
		return f.handleRFence(fn, args)
	case ext == sbi.FirmwareExtension(f.implID):
		return f.handleFirmware(fn, args)
	default:
		if handler, ok := f.vendors[ext]; ok {
			return handler(fn, args)
		}

		return failure(sbiErrNotSupported)
	}
}

func (f *Firmware) handleBase(fn uint64, args [6]uint64) sbi.Ret {
	switch fn {
	case sbi.BaseGetSpecVersion:
		return success(f.specVersion)
	case sbi.BaseGetImplID:
		return success(f.implID)
	case sbi.BaseGetImplVersion:
		return success(f.implVersion)
	case sbi.BaseProbeExtension:
		return success(f.probe(args[0]))
	case sbi.BaseGetMvendorID:
		return success(f.mvendorID)
	case sbi.BaseGetMarchID:
		return success(f.marchID)
	case sbi.BaseGetMimpID:
		return success(f.mimpID)
	default:
		return failure(sbiErrNotSupported)
	}
}

// probe reports 0 for an absent extension and a nonzero value otherwise.
// Probing an extension we do not implement is not an error.
func (f *Firmware) probe(ext uint64) uint64 {
	switch ext {
	case sbi.ExtBase, sbi.ExtHSM, sbi.ExtTimer, sbi.ExtIPI, sbi.ExtRFence:
		return 1
	case sbi.FirmwareExtension(f.implID):
		return 1
	}

	if _, ok := f.vendors[ext]; ok {
		return 1
	}

	return f.probes[ext]
}

func (f *Firmware) handleHSM(fn uint64, args [6]uint64) sbi.Ret {
	switch fn {
	case sbi.HSMHartStart:
		hart, startAddr := args[0], args[1]

		if !f.knownHart(hart) {
			return failure(sbiErrInvalidParam)
		}

		switch f.states[hart] {
		case sbi.HartStarted, sbi.HartStartPending:
			return failure(sbiErrAlreadyAvail)
		case sbi.HartStopPending:
			return failure(sbiErrFailed)
		}

		if !f.validAddr(startAddr) {
			return failure(sbiErrInvalidAddr)
		}

		f.states[hart] = sbi.HartStartPending

		return success(0)

	case sbi.HSMHartStop:
		if f.states[f.current] != sbi.HartStarted {
			return failure(sbiErrFailed)
		}

		f.states[f.current] = sbi.HartStopPending

		// A real runtime would not return here. The emulator has no hart
		// to take away, so it reports success and lets the client surface
		// the "returned from HartStop" failure.
		return success(0)

	case sbi.HSMHartGetStatus:
		hart := args[0]

		if !f.knownHart(hart) {
			return failure(sbiErrInvalidParam)
		}

		return success(uint64(f.states[hart]))

	default:
		return failure(sbiErrNotSupported)
	}
}

func (f *Firmware) handleTimer(fn uint64, args [6]uint64) sbi.Ret {
	if fn != sbi.TimerSetTimer {
		return failure(sbiErrNotSupported)
	}

	f.timer = args[0]
	f.timerArmed = args[0] != sbi.TimerInfinite

	return success(0)
}

func (f *Firmware) handleIPI(fn uint64, args [6]uint64) sbi.Ret {
	if fn != sbi.IPISendIPI {
		return failure(sbiErrNotSupported)
	}

	targets, ok := f.resolveMask(args[0], args[1])
	if !ok {
		return failure(sbiErrInvalidParam)
	}

	f.pendingIPI |= targets

	return success(0)
}

func (f *Firmware) handleRFence(fn uint64, args [6]uint64) sbi.Ret {
	if fn > sbi.RFenceHFenceVVMA {
		return failure(sbiErrNotSupported)
	}

	targets, ok := f.resolveMask(args[0], args[1])
	if !ok {
		return failure(sbiErrInvalidParam)
	}

	hfence := fn >= sbi.RFenceHFenceGVMAVMID
	if hfence && targets&^f.hypervisor != 0 {
		return failure(sbiErrNotSupported)
	}

	fence := Fence{Fn: fn, Targets: targets}

	if fn != sbi.RFenceFenceI {
		start, size := args[2], args[3]

		if (start == 0 && size == 0) || size == math.MaxUint64 {
			fence.Full = true
		} else {
			fence.Start, fence.Size = start, size
		}

		if fn == sbi.RFenceSFenceVMAASID || fn == sbi.RFenceHFenceGVMAVMID || fn == sbi.RFenceHFenceVVMAASID {
			fence.ID = args[4]
		}
	}

	f.fences = append(f.fences, fence)

	return success(0)
}

func (f *Firmware) handleFirmware(fn uint64, args [6]uint64) sbi.Ret {
	switch fn {
	case sbi.FirmwareMscratch:
		return success(f.scratch[f.current])
	case sbi.FirmwareMscratchHartID:
		hart := args[0]

		if !f.knownHart(hart) {
			return failure(sbiErrInvalidParam)
		}

		return success(f.scratch[hart])
	default:
		return failure(sbiErrNotSupported)
	}
}

func (f *Firmware) knownHart(hart uint64) bool {
	return hart < sbi.MaxHarts && f.known&(1<<hart) != 0
}

// resolveMask turns the wire pair (bits, base) into the targeted hart set.
// base equal to the all-harts sentinel selects every known hart regardless
// of bits. A single unknown hart id anywhere in the set invalidates the
// whole mask; partial delivery is not a defined outcome.
func (f *Firmware) resolveMask(bits, base uint64) (uint64, bool) {
	if base == sbi.MaskBaseAll {
		return f.known, true
	}

	var targets uint64

	for i := uint64(0); i < 64; i++ {
		if bits&(1<<i) == 0 {
			continue
		}

		hart := base + i
		if hart < base || !f.knownHart(hart) {
			// hart ids past the top of the id space wrap around; they
			// are unknown harts, not low hart ids
			return 0, false
		}

		targets |= 1 << hart
	}

	return targets, true
}
