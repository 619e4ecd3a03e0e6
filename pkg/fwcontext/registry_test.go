// SPDX-FileCopyrightText: Copyright (c) 2024 Siderolabs
// SPDX-License-Identifier: Apache-2.0

package fwcontext_test

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/siderolabs/go-sbi/pkg/fwcontext"
	"github.com/siderolabs/go-sbi/pkg/sbi"
	"github.com/siderolabs/go-sbi/pkg/sbitest"
)

// fakePlatform keeps the firmware context field per scratch handle in a
// map instead of reaching through live memory.
type fakePlatform struct {
	fields map[uintptr]uintptr
}

func newFakePlatform() *fakePlatform {
	return &fakePlatform{fields: map[uintptr]uintptr{}}
}

func (p *fakePlatform) FirmwareContext(scratch uintptr) uintptr {
	return p.fields[scratch]
}

func (p *fakePlatform) SetFirmwareContext(scratch, ctx uintptr) {
	p.fields[scratch] = ctx
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func registry(t *testing.T, harts int) (*fwcontext.Registry, *sbitest.Firmware, *fakePlatform) {
	t.Helper()

	fw := sbitest.New(harts)
	client := sbi.NewClient(fw, discardLogger())
	platform := newFakePlatform()

	r, err := fwcontext.New(client, platform, discardLogger())
	if err != nil {
		t.Fatalf("fwcontext.New: %v", err)
	}

	return r, fw, platform
}

func TestFirmwareExtensionID(t *testing.T) {
	r, _, _ := registry(t, 4)

	// the emulated runtime reports the OpenSBI implementation id
	if got := r.FirmwareExtensionID(); got != sbi.FirmwareExtension(1) {
		t.Errorf("extension id = %#x, want %#x", got, sbi.FirmwareExtension(1))
	}
}

func TestDiscoverAndSnapshot(t *testing.T) {
	r, fw, _ := registry(t, 4)

	// slots start out zeroed
	for hart := uint64(0); hart < sbi.MaxHarts; hart++ {
		if _, ok := r.Snapshot(hart); ok {
			t.Errorf("slot %d populated before discovery", hart)
		}
	}

	scratch, err := r.Discover(2)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}

	if uint64(scratch) != fw.Scratch(2) {
		t.Errorf("scratch = %#x, want %#x", scratch, fw.Scratch(2))
	}

	got, ok := r.Snapshot(2)
	if !ok || got != scratch {
		t.Errorf("Snapshot(2) = (%#x, %v), want (%#x, true)", got, ok, scratch)
	}

	// other slots stay untouched
	if _, ok := r.Snapshot(1); ok {
		t.Error("slot 1 populated by discovery of hart 2")
	}
}

func TestDiscoverBounds(t *testing.T) {
	r, _, _ := registry(t, 4)

	// beyond the fixed table capacity: rejected locally, no trap needed
	if _, err := r.Discover(sbi.MaxHarts); !errors.Is(err, sbi.ErrInvalidParam) {
		t.Errorf("err = %v, want %v", err, sbi.ErrInvalidParam)
	}

	// known to the table but not to the 4-hart platform: runtime rejects
	if _, err := r.Discover(9); !errors.Is(err, sbi.ErrInvalidParam) {
		t.Errorf("err = %v, want %v", err, sbi.ErrInvalidParam)
	}

	if _, ok := r.Snapshot(sbi.MaxHarts + 1); ok {
		t.Error("out-of-range snapshot reported a value")
	}
}

func TestContextRoundTrip(t *testing.T) {
	r, fw, platform := registry(t, 4)

	fw.SetCurrentHart(1)

	if ok := r.SetContext(0xC0FFEE); !ok {
		t.Fatal("SetContext reported failure")
	}

	ctx, ok := r.Context()
	if !ok || ctx != 0xC0FFEE {
		t.Fatalf("Context() = (%#x, %v), want (0xc0ffee, true)", ctx, ok)
	}

	// the write landed behind this hart's scratch, not some other hart's
	if got := platform.FirmwareContext(uintptr(fw.Scratch(1))); got != 0xC0FFEE {
		t.Errorf("context behind scratch = %#x, want 0xc0ffee", got)
	}

	if got := platform.FirmwareContext(uintptr(fw.Scratch(0))); got != 0 {
		t.Errorf("hart 0 context = %#x, want 0", got)
	}
}

// brokenInvoker fails every call except the base extension, so the
// registry can be constructed but scratch lookups fail.
type brokenInvoker struct{}

func (brokenInvoker) Ecall(ext, _ uint64, _ [6]uint64) sbi.Ret {
	if ext == sbi.ExtBase {
		return sbi.Ret{Value: 1}
	}

	return sbi.Ret{Error: -2}
}

func TestContextSuppressesInnerFailure(t *testing.T) {
	client := sbi.NewClient(brokenInvoker{}, discardLogger())
	platform := newFakePlatform()

	r, err := fwcontext.New(client, platform, discardLogger())
	if err != nil {
		t.Fatalf("fwcontext.New: %v", err)
	}

	// the accessors never surface the inner error; ok=false is the only
	// signal that the output was left unset
	if ctx, ok := r.Context(); ok || ctx != 0 {
		t.Errorf("Context() = (%#x, %v), want (0, false)", ctx, ok)
	}

	if ok := r.SetContext(0x1234); ok {
		t.Error("SetContext reported success despite the failed lookup")
	}

	if len(platform.fields) != 0 {
		t.Error("SetContext wrote through despite the failed lookup")
	}
}
