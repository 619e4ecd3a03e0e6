// SPDX-FileCopyrightText: Copyright (c) 2024 Siderolabs
// SPDX-License-Identifier: Apache-2.0

package fwcontext

// Convenience accessors for the calling hart's own firmware context. Both
// swallow failures of the underlying scratch lookup: absence of a context
// is not treated as an error here, matching the contract upper firmware
// phases were written against. The ok return is the only signal that the
// lookup actually happened; do not assume the context was read or written
// merely because the call came back. Callers that need the failure should
// go through Registry.Discover or Client.Mscratch instead.

// Context returns the firmware context pointer of the calling hart. ok is
// false when the scratch lookup failed and the returned value is
// meaningless.
func (r *Registry) Context() (ctx uintptr, ok bool) {
	scratch, err := r.client.Mscratch(r.fwExt)
	if err != nil {
		r.logger.Debug("scratch lookup failed, context left unset", "err", err)

		return 0, false
	}

	return r.platform.FirmwareContext(scratch), true
}

// SetContext overwrites the firmware context pointer of the calling hart.
// ok is false when the scratch lookup failed and nothing was written.
func (r *Registry) SetContext(ctx uintptr) (ok bool) {
	scratch, err := r.client.Mscratch(r.fwExt)
	if err != nil {
		r.logger.Debug("scratch lookup failed, context not written", "err", err)

		return false
	}

	r.platform.SetFirmwareContext(scratch, ctx)

	return true
}
