// Package edmonds decodes the maximum spanning arborescence of an arc score
// matrix with the Chu-Liu-Edmonds algorithm.
//
// Given S[h][m], the score of attaching token m to head h, Decode returns the
// head assignment rooted at the virtual token 0 whose total score is maximal
// among all spanning arborescences. Every token receives exactly one head,
// the root receives none, and there are no cycles.
//
// Algorithm:
//
//  1. Greedy: pick the best incoming arc of every token. Ties go to the
//     smallest head index.
//  2. If the greedy arcs form no cycle they are the answer.
//  3. Otherwise contract the lowest cycle C into a single node. An arc h→m
//     entering C is re-weighted to S[h][m] − S[g(m)][m] + κ(C); an arc
//     leaving C keeps the best score over its members.
//  4. Solve the smaller problem, then expand: the chosen entering arc breaks
//     the cycle at its member, every other member keeps its greedy head.
//
// Contractions are pushed on an explicit frame stack and expanded in reverse
// order, so recursion depth never depends on the sentence.
//
// Complexity:
//
//   - O(n²) per level, O(n³) in the worst case (n−1 contractions of size 2).
//   - Memory O(n²) per live frame.
//
// Concurrency:
//
//   - Decode only reads its input and owns every buffer, so one ScoreMatrix
//     may be decoded from several goroutines at once.
//   - DecodeBatch fans sentences out to a bounded pool of workers.
//
// Errors:
//
//   - arc.ErrMalformedScoreMatrix for inputs that fail arc.ScoreMatrix.Validate.
//   - ErrDecodeInvariantViolation is raised through panic only.
package edmonds
