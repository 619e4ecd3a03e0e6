// SPDX-FileCopyrightText: Copyright (c) 2024 Siderolabs
// SPDX-License-Identifier: Apache-2.0

package sbi

// the register frame itself is loaded and read back in ecall_riscv64.s

func sbiEcall(ext, fn, a0, a1, a2, a3, a4, a5 uint64) (reterr int64, retval uint64)

type machineInvoker struct{}

// Ecall issues the trap on the current hart.
func (machineInvoker) Ecall(ext, fn uint64, args [6]uint64) Ret {
	err, val := sbiEcall(ext, fn, args[0], args[1], args[2], args[3], args[4], args[5])

	return Ret{Error: err, Value: val}
}

// Machine returns the Invoker backed by the real ECALL instruction.
func Machine() Invoker {
	return machineInvoker{}
}
