// SPDX-FileCopyrightText: Copyright (c) 2024 Siderolabs
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var extCmd = &cobra.Command{
	Use:   "ext [name]",
	Short: "list the extension and function catalogue",
	Args:  cobra.MaximumNArgs(1),
	RunE:  ext,
}

func ext(_ *cobra.Command, args []string) error {
	for _, e := range catalogue {
		if len(args) == 1 && args[0] != e.name {
			continue
		}

		fmt.Println(headerStyle.Render(fmt.Sprintf("%s (%#x)", e.name, e.id)))

		for _, op := range e.ops {
			argList := dimStyle.Render("()")
			if len(op.args) > 0 {
				argList = dimStyle.Render("(" + strings.Join(op.args, ", ") + ")")
			}

			fmt.Printf("  %2d  %-18s %s\n", op.fn, op.name, argList)
		}

		fmt.Println()
	}

	if len(args) == 1 && !hasExtension(args[0]) {
		return fmt.Errorf("unknown extension %q", args[0])
	}

	return nil
}

func hasExtension(name string) bool {
	for _, e := range catalogue {
		if e.name == name {
			return true
		}
	}

	return false
}

func init() {
	rootCmd.AddCommand(extCmd)
}
