// SPDX-FileCopyrightText: Copyright (c) 2024 Siderolabs
// SPDX-License-Identifier: Apache-2.0

package sbi_test

import (
	"errors"
	"math"
	"testing"

	"github.com/siderolabs/go-sbi/pkg/sbi"
)

func TestRemoteFenceI(t *testing.T) {
	c, fw := emulated(t, 4)

	if err := c.RemoteFenceI(sbi.AllHarts()); err != nil {
		t.Fatalf("RemoteFenceI: %v", err)
	}

	fences := fw.Fences()
	if len(fences) != 1 {
		t.Fatalf("got %d fences, want 1", len(fences))
	}

	if fences[0].Fn != sbi.RFenceFenceI || fences[0].Targets != 0b1111 {
		t.Errorf("fence = %+v", fences[0])
	}
}

func TestRemoteSFenceVMAFullFlush(t *testing.T) {
	c, fw := emulated(t, 4)

	// start==0 && size==0 and size==2^64-1 are both "flush everything",
	// not a zero-length no-op
	if err := c.RemoteSFenceVMA(sbi.MaskOf(1), 0, 0); err != nil {
		t.Fatalf("RemoteSFenceVMA: %v", err)
	}

	if err := c.RemoteSFenceVMA(sbi.MaskOf(1), 0x1000, math.MaxUint64); err != nil {
		t.Fatalf("RemoteSFenceVMA: %v", err)
	}

	if err := c.RemoteSFenceVMA(sbi.MaskOf(1), 0x1000, 0x2000); err != nil {
		t.Fatalf("RemoteSFenceVMA: %v", err)
	}

	fences := fw.Fences()
	if len(fences) != 3 {
		t.Fatalf("got %d fences, want 3", len(fences))
	}

	if !fences[0].Full || !fences[1].Full {
		t.Errorf("full-range requests not normalized: %+v, %+v", fences[0], fences[1])
	}

	if fences[2].Full || fences[2].Start != 0x1000 || fences[2].Size != 0x2000 {
		t.Errorf("ranged request mangled: %+v", fences[2])
	}
}

func TestRemoteSFenceVMAASID(t *testing.T) {
	c, fw := emulated(t, 4)

	if err := c.RemoteSFenceVMAASID(sbi.MaskOf(0, 1), 0x4000, 0x1000, 42); err != nil {
		t.Fatalf("RemoteSFenceVMAASID: %v", err)
	}

	fences := fw.Fences()
	if len(fences) != 1 || fences[0].ID != 42 {
		t.Fatalf("asid not carried: %+v", fences)
	}
}

func TestHFenceRequiresHypervisor(t *testing.T) {
	c, fw := emulated(t, 4)

	// hart 2 lacks the hypervisor extension: surfaced, not ignored
	fw.SetHypervisor(0, 1)

	err := c.RemoteHFenceGVMA(sbi.MaskOf(1, 2), 0, 0)
	if !errors.Is(err, sbi.ErrNotSupported) {
		t.Fatalf("err = %v, want %v", err, sbi.ErrNotSupported)
	}

	if err := c.RemoteHFenceGVMA(sbi.MaskOf(0, 1), 0, 0); err != nil {
		t.Fatalf("RemoteHFenceGVMA: %v", err)
	}

	if err := c.RemoteHFenceGVMAVMID(sbi.MaskOf(1), 0x8000, 0x1000, 3); err != nil {
		t.Fatalf("RemoteHFenceGVMAVMID: %v", err)
	}

	if err := c.RemoteHFenceVVMA(sbi.MaskOf(0), 0, 0); err != nil {
		t.Fatalf("RemoteHFenceVVMA: %v", err)
	}

	if err := c.RemoteHFenceVVMAASID(sbi.MaskOf(0), 0, 0x100, 9); err != nil {
		t.Fatalf("RemoteHFenceVVMAASID: %v", err)
	}
}

func TestRFenceUnknownHart(t *testing.T) {
	c, fw := emulated(t, 2)

	err := c.RemoteSFenceVMA(sbi.MaskOf(0, 3), 0, 0)
	if !errors.Is(err, sbi.ErrInvalidParam) {
		t.Fatalf("err = %v, want %v", err, sbi.ErrInvalidParam)
	}

	if len(fw.Fences()) != 0 {
		t.Error("fence accepted despite invalid mask")
	}
}
