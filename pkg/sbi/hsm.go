// SPDX-FileCopyrightText: Copyright (c) 2024 Siderolabs
// SPDX-License-Identifier: Apache-2.0

package sbi

// HartState is the lifecycle state of a hart as reported by the hart state
// management extension.
type HartState uint64

// Hart state wire values.
const (
	HartStarted HartState = iota
	HartStopped
	HartStartPending
	HartStopPending
)

// String returns the state name.
func (s HartState) String() string {
	switch s {
	case HartStarted:
		return "started"
	case HartStopped:
		return "stopped"
	case HartStartPending:
		return "start-pending"
	case HartStopPending:
		return "stop-pending"
	}

	return "unknown"
}

// HartStart asks the runtime to start the given stopped hart at startAddr,
// a physical address, with priv in a1 when it comes up. The call may return
// before the hart actually runs; the runtime only guarantees that it will.
// The target hart must configure PMP and enter S-mode before jumping to
// startAddr.
//
// Errors: ErrInvalidAddress when startAddr is not a valid or permitted
// physical address, ErrInvalidParam when hart is not a known hart id,
// ErrAlreadyAvailable when the hart is already running.
func (c *Client) HartStart(hart, startAddr, priv uint64) error {
	ret := c.call(ExtHSM, HSMHartStart, hart, startAddr, priv)

	return translateError(ret.Error)
}

// HartStop returns execution of the calling hart to the runtime. It must be
// called with supervisor interrupts disabled and does not return on
// success; a return is always a failure, never success-by-absence.
func (c *Client) HartStop() error {
	ret := c.call(ExtHSM, HSMHartStop)

	if err := translateError(ret.Error); err != nil {
		return err
	}

	// The runtime came back claiming success from a call defined not to
	// return. Report a failure rather than let the caller run on.
	return ErrFailed
}

// HartGetStatus returns the current state of the given hart. The value is a
// point-in-time snapshot: harts transition concurrently, so two reads in
// quick succession may legitimately disagree. Re-poll instead of assuming
// stability.
func (c *Client) HartGetStatus(hart uint64) (HartState, error) {
	ret := c.call(ExtHSM, HSMHartGetStatus, hart)
	if err := translateError(ret.Error); err != nil {
		return 0, err
	}

	return HartState(ret.Value), nil
}
