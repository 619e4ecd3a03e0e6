// SPDX-FileCopyrightText: Copyright (c) 2024 Siderolabs
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/siderolabs/go-sbi/pkg/sbi"
)

var hartsCmd = &cobra.Command{
	Use:   "harts",
	Short: "show the lifecycle state of every emulated hart",
	RunE:  harts,
}

func harts(_ *cobra.Command, _ []string) error {
	c, _, err := newEmulator()
	if err != nil {
		return err
	}

	fmt.Println(headerStyle.Render("hart states"))

	for hart := uint64(0); hart < uint64(viper.GetInt(flagHarts)); hart++ {
		state, err := c.HartGetStatus(hart)
		if err != nil {
			return fmt.Errorf("querying hart %d: %w", hart, err)
		}

		style := okStyle
		if state != sbi.HartStarted {
			style = dimStyle
		}

		fmt.Printf("  %2d  %s\n", hart, style.Render(state.String()))
	}

	return nil
}

func init() {
	rootCmd.AddCommand(hartsCmd)
}
