// SPDX-FileCopyrightText: Copyright (c) 2024 Siderolabs
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var probeCmd = &cobra.Command{
	Use:   "probe <extension>...",
	Short: "probe extensions on the emulated runtime",
	Long:  "probe takes extension names from the catalogue or raw extension ids",
	Args:  cobra.MinimumNArgs(1),
	RunE:  probe,
}

func probe(_ *cobra.Command, args []string) error {
	c, _, err := newEmulator()
	if err != nil {
		return err
	}

	for _, arg := range args {
		id, err := resolveExtension(arg)
		if err != nil {
			return err
		}

		v, err := c.ProbeExtension(id)
		if err != nil {
			return fmt.Errorf("probing %s: %w", arg, err)
		}

		if v == 0 {
			fmt.Printf("%-12s %#010x  %s\n", arg, id, errStyle.Render("absent"))
		} else {
			fmt.Printf("%-12s %#010x  %s\n", arg, id, okStyle.Render(fmt.Sprintf("present (%#x)", v)))
		}
	}

	return nil
}

func resolveExtension(s string) (uint64, error) {
	for _, e := range catalogue {
		if e.name == s {
			return e.id, nil
		}
	}

	id, err := parseWord(s)
	if err != nil {
		return 0, fmt.Errorf("%q is neither a catalogue extension nor an extension id", s)
	}

	return id, nil
}

func init() {
	rootCmd.AddCommand(probeCmd)
}
