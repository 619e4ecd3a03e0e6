// SPDX-FileCopyrightText: Copyright (c) 2024 Siderolabs
// SPDX-License-Identifier: Apache-2.0

package sbi

import "math"

// TimerInfinite is a deadline that will practically never arrive; passing
// it to SetTimer clears a pending timer event without scheduling another.
const TimerInfinite = uint64(math.MaxUint64)

// SetTimer clears the pending timer interrupt bit and arms the one-shot
// timer for the next event after stime. Delivery of the interrupt itself is
// the runtime's business. To disarm, pass TimerInfinite or mask the timer
// interrupt via sie.STIE.
func (c *Client) SetTimer(stime uint64) error {
	ret := c.call(ExtTimer, TimerSetTimer, stime)

	return translateError(ret.Error)
}
