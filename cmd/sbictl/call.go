// SPDX-FileCopyrightText: Copyright (c) 2024 Siderolabs
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/siderolabs/go-sbi/internal/util"
	"github.com/siderolabs/go-sbi/pkg/sbi"
)

var callCmd = &cobra.Command{
	Use:   "call <operation> [arg]...",
	Short: "run one SBI call against the emulated runtime",
	Long: "call builds the register frame for the named operation (see 'sbictl ext'),\n" +
		"dispatches it into the emulated runtime and prints the (error, value) pair",
	Args: cobra.MinimumNArgs(1),
	RunE: call,
}

func call(_ *cobra.Command, args []string) error {
	op, ok := findOperation(args[0])
	if !ok {
		return fmt.Errorf("unknown operation %q", args[0])
	}

	if len(args)-1 != len(op.args) {
		return fmt.Errorf("%s takes %d argument(s): %v", op.name, len(op.args), op.args)
	}

	var frame [6]uint64

	for i, arg := range args[1:] {
		word, err := parseWord(arg)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", op.args[i], err)
		}

		frame[i] = word
	}

	_, fw, err := newEmulator()
	if err != nil {
		return err
	}

	util.TraceLog(logger, "dispatching frame", "ext", fmt.Sprintf("%#x", op.ext), "fn", op.fn, "args", frame)

	ret := fw.Ecall(op.ext, op.fn, frame)

	style := okStyle
	if ret.Error != 0 {
		style = errStyle
	}

	fmt.Printf("a7=%#x a6=%d a0..a5=%v\n", op.ext, op.fn, frame)
	fmt.Printf("error: %s\n", style.Render(statusName(ret.Error)))
	fmt.Printf("value: %#x\n", ret.Value)

	if op.ext == sbi.ExtHSM && op.fn == sbi.HSMHartGetStatus && ret.Error == 0 {
		fmt.Printf("state: %s\n", sbi.HartState(ret.Value))
	}

	return nil
}

func init() {
	rootCmd.AddCommand(callCmd)
}
