// Package arbor decodes dependency trees from arc score matrices and computes
// the structured losses used to train the scorers that produce them.
//
// 🚀 What is arbor?
//
//	A small, deterministic, pure-Go toolkit for graph-based dependency parsing:
//		• Score matrices: dense (n+1)×(n+1) head→modifier tables with a virtual root
//		• Decoding: Chu-Liu-Edmonds maximum spanning arborescence
//		• Losses: margin-rescaled structured hinge (plain, regularized, perturbed)
//		• Local loss: per-token softmax negative log-likelihood
//		• Batches: order-preserving worker pools with context and slog
//
// ✨ Why choose arbor?
//
//   - Deterministic: ties break on the smallest head, randomness is explicit
//   - Iterative: contraction frames live on a stack, never on the call stack
//   - Observable: contraction hooks and DFS walk hooks for tests and diagnostics
//   - Pure Go: no cgo
//
// Packages:
//
//	matrix/  : flat row-major dense matrix and validators
//	arc/     : ScoreMatrix, construction from square or modifier-column layouts
//	tree/    : Heads, validation, scoring, top-down walks
//	edmonds/ : Decode, Greedy, DecodeBatch
//	loss/    : StructuredMargin, RegularizedMargin, PerturbedMargin, LocalNLL, Batch
//
// Quick ASCII example, "She reads books":
//
//	    ROOT
//	     │
//	   reads
//	   ┌─┴─┐
//	 She   books
//
// is the head assignment [2 0 2]: tokens 1 and 3 attach to token 2, which
// attaches to the root.
//
//	go get github.com/katalvlaran/arbor
package arbor
