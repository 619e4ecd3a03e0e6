// SPDX-FileCopyrightText: Copyright (c) 2024 Siderolabs
// SPDX-License-Identifier: Apache-2.0

package sbi_test

import (
	"testing"

	"github.com/siderolabs/go-sbi/pkg/sbi"
	"github.com/siderolabs/go-sbi/pkg/sbitest"
)

func emulated(t *testing.T, harts int) (*sbi.Client, *sbitest.Firmware) {
	t.Helper()

	fw := sbitest.New(harts)

	return sbi.NewClient(fw, discardLogger()), fw
}

func TestBaseQueries(t *testing.T) {
	c, _ := emulated(t, 4)

	v, err := c.SpecVersion()
	if err != nil {
		t.Fatalf("SpecVersion: %v", err)
	}

	if major := (v >> 24) & 0x7f; major != 1 {
		t.Errorf("spec major = %d, want 1", major)
	}

	id, err := c.ImplID()
	if err != nil {
		t.Fatalf("ImplID: %v", err)
	}

	if id != 1 {
		t.Errorf("impl id = %d, want 1 (OpenSBI)", id)
	}

	if _, err := c.ImplVersion(); err != nil {
		t.Fatalf("ImplVersion: %v", err)
	}

	for name, query := range map[string]func() (uint64, error){
		"MvendorID": c.MvendorID,
		"MarchID":   c.MarchID,
		"MimpID":    c.MimpID,
	} {
		if _, err := query(); err != nil {
			t.Errorf("%s: %v", name, err)
		}
	}
}

func TestProbeExtension(t *testing.T) {
	c, fw := emulated(t, 4)

	// present extension: nonzero, extension-defined value
	v, err := c.ProbeExtension(sbi.ExtTimer)
	if err != nil {
		t.Fatalf("probe TIME: %v", err)
	}

	if v == 0 {
		t.Error("probe of a present extension returned 0")
	}

	// absent extension: zero value, but not an error
	v, err = c.ProbeExtension(0x0BADF00D)
	if err != nil {
		t.Fatalf("probe of absent extension errored: %v", err)
	}

	if v != 0 {
		t.Errorf("probe of absent extension = %d, want 0", v)
	}

	// probe values are extension-defined, not just 0/1
	fw.SetProbe(0x0C000000, 7)

	v, err = c.ProbeExtension(0x0C000000)
	if err != nil {
		t.Fatalf("probe: %v", err)
	}

	if v != 7 {
		t.Errorf("probe = %d, want 7", v)
	}
}
