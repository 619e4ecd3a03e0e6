// SPDX-FileCopyrightText: Copyright (c) 2024 Siderolabs
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#90EE90"))

	errStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

var decodeCmd = &cobra.Command{
	Use:   "decode <status>...",
	Short: "decode SBI status codes",
	Args:  cobra.MinimumNArgs(1),
	RunE:  decode,
}

func decode(_ *cobra.Command, args []string) error {
	for _, arg := range args {
		status, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			return fmt.Errorf("parsing status %q: %w", arg, err)
		}

		style := errStyle
		if status == 0 {
			style = okStyle
		}

		fmt.Printf("%4d  %s\n", status, style.Render(statusName(status)))
	}

	return nil
}

func init() {
	rootCmd.AddCommand(decodeCmd)
}
