// SPDX-FileCopyrightText: Copyright (c) 2024 Siderolabs
// SPDX-License-Identifier: Apache-2.0

// Package sbitest provides an in-memory SBI runtime implementing
// sbi.Invoker. It stands in for the machine-mode firmware in tests and in
// sbictl's emulator mode: it dispatches the same register frames a real
// runtime would see and answers with the same wire codes.
package sbitest

import (
	"fmt"
	"sync"

	"github.com/siderolabs/go-sbi/pkg/sbi"
)

// Call is one recorded register frame.
type Call struct {
	Ext  uint64
	Fn   uint64
	Args [6]uint64
}

// Fence is one accepted remote fence request. Full-flush requests (start
// and size both zero, or size spanning the whole address space) are
// normalized to Full=true with Start and Size cleared.
type Fence struct {
	Fn      uint64
	Targets uint64
	Start   uint64
	Size    uint64
	ID      uint64
	Full    bool
}

// Firmware is the emulated runtime. All methods are safe for concurrent
// use; each Ecall is handled atomically, like a real trap on one hart.
type Firmware struct {
	mu sync.Mutex

	specVersion uint64
	implID      uint64
	implVersion uint64
	mvendorID   uint64
	marchID     uint64
	mimpID      uint64

	known      uint64 // bitmask of hart ids the platform knows
	hypervisor uint64 // bitmask of harts with the hypervisor extension
	current    uint64 // hart issuing the ecalls

	states  [sbi.MaxHarts]sbi.HartState
	scratch [sbi.MaxHarts]uint64

	pendingIPI uint64
	timer      uint64
	timerArmed bool

	probes  map[uint64]uint64
	vendors map[uint64]func(fn uint64, args [6]uint64) sbi.Ret

	validAddr func(addr uint64) bool

	calls  []Call
	fences []Fence
}

// New returns a Firmware knowing hart ids [0, harts). All harts except hart
// 0, the one issuing calls, come up stopped; hart 0 comes up started. Every
// hart gets a distinct scratch handle.
func New(harts int) *Firmware {
	if harts < 1 || harts > sbi.MaxHarts {
		panic("sbitest: hart count out of range")
	}

	f := &Firmware{
		specVersion: 0x1000000, // 1.0
		implID:      1,         // OpenSBI
		implVersion: 0x10003,
		known:       1<<harts - 1,
		probes:      map[uint64]uint64{},
		vendors:     map[uint64]func(fn uint64, args [6]uint64) sbi.Ret{},
		validAddr:   func(addr uint64) bool { return addr != 0 },
	}

	for i := range harts {
		f.states[i] = sbi.HartStopped
		f.scratch[i] = 0x80001000 + uint64(i)*0x1000
	}

	f.states[0] = sbi.HartStarted

	return f
}

// SetCurrentHart sets the hart id the next calls are issued from. Only a
// hart the platform knows can issue calls; anything else panics like an
// out-of-range hart count in New.
func (f *Firmware) SetCurrentHart(hart uint64) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.knownHart(hart) {
		panic(fmt.Sprintf("sbitest: hart %d is not known to the platform", hart))
	}

	f.current = hart
}

// SetHartState forces the state of a hart.
func (f *Firmware) SetHartState(hart uint64, s sbi.HartState) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.states[hart] = s
}

// SetHypervisor marks the given harts as implementing the hypervisor
// extension, required by the HFence calls.
func (f *Firmware) SetHypervisor(harts ...uint64) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, h := range harts {
		f.hypervisor |= 1 << h
	}
}

// SetProbe sets the probe value reported for an extension this runtime does
// not actually dispatch.
func (f *Firmware) SetProbe(ext, value uint64) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.probes[ext] = value
}

// SetValidAddr replaces the start-address check used by HartStart. The
// default accepts anything nonzero.
func (f *Firmware) SetValidAddr(fn func(addr uint64) bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.validAddr = fn
}

// RegisterVendor installs a handler for a vendor extension id. The id is
// also reported as present by the probe function.
func (f *Firmware) RegisterVendor(ext uint64, handler func(fn uint64, args [6]uint64) sbi.Ret) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.vendors[ext] = handler
}

// Settle advances every pending hart state: start-pending harts become
// started, stop-pending harts become stopped. Tests use it to stage the
// legitimate races a caller of HartGetStatus has to tolerate.
func (f *Firmware) Settle() {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := range f.states {
		switch f.states[i] {
		case sbi.HartStartPending:
			f.states[i] = sbi.HartStarted
		case sbi.HartStopPending:
			f.states[i] = sbi.HartStopped
		}
	}
}

// Calls returns the journal of every register frame received so far.
func (f *Firmware) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]Call(nil), f.calls...)
}

// Fences returns the accepted fence requests.
func (f *Firmware) Fences() []Fence {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]Fence(nil), f.fences...)
}

// PendingIPI reports whether the hart has a pending software interrupt, and
// clears it.
func (f *Firmware) PendingIPI(hart uint64) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	pending := f.pendingIPI&(1<<hart) != 0
	f.pendingIPI &^= 1 << hart

	return pending
}

// Timer returns the armed deadline and whether the timer is armed.
func (f *Firmware) Timer() (uint64, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.timer, f.timerArmed
}

// Scratch returns the scratch handle of a hart, as handed out through the
// firmware extension.
func (f *Firmware) Scratch(hart uint64) uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.scratch[hart]
}
