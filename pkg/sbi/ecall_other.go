// SPDX-FileCopyrightText: Copyright (c) 2024 Siderolabs
// SPDX-License-Identifier: Apache-2.0

//go:build !riscv64

package sbi

type machineInvoker struct{}

func (machineInvoker) Ecall(ext, fn uint64, args [6]uint64) Ret {
	panic("sbi: ECALL is only available on riscv64")
}

// Machine returns the Invoker backed by the real ECALL instruction. On
// non-riscv64 builds the returned invoker panics when used; it exists so
// the package compiles everywhere and tests can run against pkg/sbitest.
func Machine() Invoker {
	return machineInvoker{}
}
