// SPDX-License-Identifier: MIT

// Package matrix: numeric policy defaults.
//
// Notes:
//   - validateNaNInf controls whether Set()/Apply()/ingestion reject NaN/Inf.
//   - The policy is a per-instance flag, preserved by Clone; there is no
//     global mutable switch.
package matrix

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultValidateNaNInf toggles strict finite-value validation on ingestion and Set.
	DefaultValidateNaNInf = true
)
