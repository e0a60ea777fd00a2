package mwe

import "math"

// llrEpsilon guards the log term against zero expected cells.
const llrEpsilon = 1e-20

// LogLikelihood computes the log-likelihood-ratio statistic for an adjacent
// token pair from its corpus counts.
//
//	LLR = 2 * Σ obs * ln(obs / (exp + ε) + ε)
//
// summed over the 2x2 contingency table
//
//	n11 = cxy          n12 = cx - cxy
//	n21 = cy - cxy     n22 = n - cx - cy + cxy
//
// with expected cell values derived from the marginal products. Cells with
// a non-positive observed count contribute zero, which keeps the score
// finite for single-occurrence tokens, for cxy equal to cx or cy, and for
// same-token chains where n22 can go negative. A zero corpus or a zero
// pair count scores zero.
func LogLikelihood(cxy, cx, cy, n int64) float64 {
	if n <= 0 || cxy <= 0 {
		return 0
	}

	obs := [4]float64{
		float64(cxy),
		float64(cx - cxy),
		float64(cy - cxy),
		float64(n - cx - cy + cxy),
	}
	total := float64(n)

	var sum float64
	for i := range obs {
		if obs[i] <= 0 {
			continue
		}
		// Cell i shares a row with cell i^1 and a column with cell i^2.
		expected := (obs[i] + obs[i^1]) * (obs[i] + obs[i^2]) / total
		sum += obs[i] * math.Log(obs[i]/(expected+llrEpsilon)+llrEpsilon)
	}

	return 2 * sum
}

// ScoreAll maps every observed bigram to its log-likelihood-ratio score.
// Scores depend only on the accumulated counts, so identical corpora
// produce identical scores regardless of processing order.
func (c *Counter) ScoreAll() map[Bigram]float64 {
	scores := make(map[Bigram]float64, len(c.pairs))
	for pair, cxy := range c.pairs {
		scores[pair] = LogLikelihood(cxy, c.words[pair.Left], c.words[pair.Right], c.total)
	}
	return scores
}
