// Package loss computes training signals for a graph-based dependency parser
// from an arc score matrix and a gold tree.
//
// Structured margin losses decode the score matrix augmented by a margin of 1
// on every non-gold arc and penalize the augmented tree for beating gold:
//
//	StructuredMargin:  max(0, S'(pred) − S(gold) + HingeOffset)
//	RegularizedMargin: the above + α·Σ S[gold]²
//	PerturbedMargin:   the above on S + N(0, σ²) noise
//
// LocalNLL is the decoder-free alternative: a softmax over candidate heads
// per token, averaged over tokens.
//
// Options follow the DefaultOptions()/With* pattern. Compute dispatches on
// Options.Kind; Evaluate returns the full Result breakdown; Batch spreads a
// set of sentences over worker goroutines.
//
// Randomness is explicit: the perturbed loss reads Options.Rand or a stream
// seeded by Options.Seed, never the global source.
package loss
