// SPDX-FileCopyrightText: Copyright (c) 2024 Siderolabs
// SPDX-License-Identifier: Apache-2.0

// Package sbi implements the supervisor side of the RISC-V Supervisor
// Binary Interface calling convention. It has been put together from:
//
// - https://github.com/riscv-non-isa/riscv-sbi-doc
// - https://github.com/riscv-software-src/opensbi
// - https://github.com/tianocore/edk2-platforms (RiscVEdk2SbiLib)
//
// The SBI runtime lives in machine mode and is reachable through a single
// ECALL instruction. Extension id and function id go into a7 and a6, up to
// six machine-word arguments into a0-a5, and the runtime hands back an
// (error, value) pair in a0 and a1. Everything in this package is a typed
// facade over that one register frame.
package sbi
