// SPDX-FileCopyrightText: Copyright (c) 2024 Siderolabs
// SPDX-License-Identifier: Apache-2.0

// Package main is the main package invoking the tool
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/siderolabs/go-sbi/internal/util"
	"github.com/siderolabs/go-sbi/pkg/sbi"
	"github.com/siderolabs/go-sbi/pkg/sbitest"
)

const (
	flagLogLevel    = "log-level"
	flagHarts       = "harts"
	flagCurrentHart = "current-hart"
	flagHypervisor  = "hypervisor"
)

var rootCmd = &cobra.Command{
	Use:   "sbictl",
	Short: "poke at the SBI calling convention from the comfort of userspace",
	Long: "sbictl decodes SBI status codes, lists the extension catalogue and runs\n" +
		"calls against an emulated machine-mode runtime, for developing and\n" +
		"debugging firmware built on go-sbi",
	PersistentPreRunE: setup,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}

var logger *slog.Logger

func setup(cmd *cobra.Command, _ []string) error {
	level, err := util.ParseLevel(viper.GetString(flagLogLevel))
	if err != nil {
		return fmt.Errorf("parsing log level: %w", err)
	}

	logOpts := &slog.HandlerOptions{
		Level: level,
	}

	logger = slog.New(slog.NewTextHandler(os.Stderr, logOpts)).With("command", cmd.Name())

	return nil
}

// newEmulator builds the emulated runtime and a client over it from the
// persistent flags.
func newEmulator() (*sbi.Client, *sbitest.Firmware, error) {
	harts := viper.GetInt(flagHarts)
	if harts < 1 || harts > sbi.MaxHarts {
		return nil, nil, fmt.Errorf("hart count %d out of range (1-%d)", harts, sbi.MaxHarts)
	}

	current := viper.GetUint64(flagCurrentHart)
	if current >= uint64(harts) {
		return nil, nil, fmt.Errorf("current hart %d is not known to a %d-hart platform", current, harts)
	}

	fw := sbitest.New(harts)
	fw.SetCurrentHart(current)

	if viper.GetBool(flagHypervisor) {
		for h := range harts {
			fw.SetHypervisor(uint64(h))
		}
	}

	return sbi.NewClient(fw, logger.With("module", "sbi")), fw, nil
}

func init() {
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(`-`, `_`))
	viper.SetEnvPrefix("sbictl")

	pf := rootCmd.PersistentFlags()
	pf.String(flagLogLevel, "info", "log level (error, warning, info, debug, trace)")
	pf.Int(flagHarts, 4, fmt.Sprintf("number of harts the emulated platform knows (1-%d)", sbi.MaxHarts))
	pf.Uint64(flagCurrentHart, 0, "hart id the emulated calls are issued from")
	pf.Bool(flagHypervisor, false, "give every emulated hart the hypervisor extension")

	if err := viper.BindPFlags(pf); err != nil {
		panic(err)
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		panic(err)
	}
}
