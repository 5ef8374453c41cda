// SPDX-License-Identifier: MIT

// Package matrix provides the flat, row-major numeric container that backs
// arc score matrices.
//
// The matrix package provides:
//
//   - Dense: a cache-friendly r×c buffer addressed as data[i*cols+j], with
//     bounds-checked At/Set that return sentinel errors instead of panicking.
//   - A per-instance numeric policy (reject NaN/±Inf on Set/Apply) that can be
//     relaxed for containers whose unused cells may legitimately hold anything.
//   - Deterministic row-major visitors (Do, Apply) used for copying, shifting
//     and perturbing score matrices without nested slices.
//   - Central validators (nil, square, finite) returning plain sentinels.
//
// Complexity quicksheet:
//   - NewDense: O(r*c) zero-init; At/Set: O(1); Clone/Do/Apply: O(r*c).
//
// See example_test.go in this package for usage patterns.
package matrix
