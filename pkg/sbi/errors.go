// SPDX-FileCopyrightText: Copyright (c) 2024 Siderolabs
// SPDX-License-Identifier: Apache-2.0

package sbi

import (
	"errors"
	"fmt"
)

// Status codes as they appear in a0 after the trap.
const (
	statusSuccess          int64 = 0
	statusFailed           int64 = -1
	statusNotSupported     int64 = -2
	statusInvalidParam     int64 = -3
	statusDenied           int64 = -4
	statusInvalidAddress   int64 = -5
	statusAlreadyAvailable int64 = -6
)

var (
	// ErrFailed is returned when the SBI call failed for an unspecified reason.
	ErrFailed = errors.New("sbi call failed")

	// ErrNotSupported is returned when the extension or function is not
	// implemented by the runtime or by one of the targeted harts.
	ErrNotSupported = errors.New("sbi call not supported")

	// ErrInvalidParam is returned when a parameter, usually a hart id or a
	// hart mask, is not valid.
	ErrInvalidParam = errors.New("sbi call invalid parameter")

	// ErrDenied is returned when the runtime refused the call.
	ErrDenied = errors.New("sbi call denied")

	// ErrInvalidAddress is returned when an address argument is not a valid
	// physical address or is prohibited by PMP.
	ErrInvalidAddress = errors.New("sbi call invalid address")

	// ErrAlreadyAvailable is returned when the requested resource is
	// already in the requested state, e.g. starting a started hart.
	ErrAlreadyAvailable = errors.New("sbi call already available")
)

// translateError maps a wire status code to its sentinel error, nil for
// success. The code set is closed: anything else means the runtime speaks a
// newer contract than we do, and coercing it to a known code could turn a
// real failure into a success. That is not recoverable.
func translateError(status int64) error {
	switch status {
	case statusSuccess:
		return nil
	case statusFailed:
		return ErrFailed
	case statusNotSupported:
		return ErrNotSupported
	case statusInvalidParam:
		return ErrInvalidParam
	case statusDenied:
		return ErrDenied
	case statusInvalidAddress:
		return ErrInvalidAddress
	case statusAlreadyAvailable:
		return ErrAlreadyAvailable
	default:
		panic(fmt.Sprintf("sbi: runtime returned unknown status code %d", status))
	}
}

// StatusError maps a wire status code to the matching error, nil for
// success. It panics on codes outside the defined set.
func StatusError(status int64) error {
	return translateError(status)
}
