// TalentGraph - Workforce Analytics and Career Mobility Engine
// Copyright 2026 AtlasHR Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/atlashr/talentgraph

package embedding

import (
	"context"
	"math"
	"math/rand"
)

const (
	// negativeTableSize is the size of the pre-drawn negative sampling table.
	negativeTableSize = 1 << 20
	// unigramPower flattens the unigram distribution for negative sampling.
	unigramPower = 0.75
	// minLearningRateFactor floors the linear learning-rate decay.
	minLearningRateFactor = 1e-4
)

// skipGram trains node vectors over a walk corpus with stochastic
// gradient descent and negative sampling. Input vectors become the
// published embeddings; output vectors exist only during training.
type skipGram struct {
	cfg Config

	vocab   []string
	index   map[string]int
	counts  []int
	in, out [][]float64

	negTable []int
}

// newSkipGram builds the vocabulary and negative-sampling table from the
// walk corpus and initializes the weight matrices from the seed. Input
// vectors start with small uniform noise, output vectors at zero, the
// usual word2vec arrangement.
func newSkipGram(walks [][]string, cfg Config) *skipGram {
	sg := &skipGram{
		cfg:   cfg,
		index: make(map[string]int),
	}

	for _, walk := range walks {
		for _, node := range walk {
			idx, ok := sg.index[node]
			if !ok {
				idx = len(sg.vocab)
				sg.index[node] = idx
				sg.vocab = append(sg.vocab, node)
				sg.counts = append(sg.counts, 0)
			}
			sg.counts[idx]++
		}
	}

	rng := rand.New(rand.NewSource(cfg.Seed)) //nolint:gosec // reproducibility matters, not cryptographic strength
	sg.in = make([][]float64, len(sg.vocab))
	sg.out = make([][]float64, len(sg.vocab))
	for i := range sg.vocab {
		sg.in[i] = make([]float64, cfg.Dimensions)
		sg.out[i] = make([]float64, cfg.Dimensions)
		for d := 0; d < cfg.Dimensions; d++ {
			sg.in[i][d] = (rng.Float64() - 0.5) / float64(cfg.Dimensions)
		}
	}

	sg.buildNegativeTable()
	return sg
}

// buildNegativeTable pre-draws negative samples proportionally to the
// smoothed unigram distribution.
func (sg *skipGram) buildNegativeTable() {
	total := 0.0
	powered := make([]float64, len(sg.counts))
	for i, c := range sg.counts {
		powered[i] = math.Pow(float64(c), unigramPower)
		total += powered[i]
	}

	sg.negTable = make([]int, negativeTableSize)
	idx := 0
	cumulative := powered[0] / total
	for i := range sg.negTable {
		sg.negTable[i] = idx
		if float64(i)/negativeTableSize > cumulative && idx < len(sg.vocab)-1 {
			idx++
			cumulative += powered[idx] / total
		}
	}
}

// train runs SGD over the walk corpus for the configured epochs. The
// learning rate decays linearly over total processed positions. Walks
// are shuffled each epoch.
func (sg *skipGram) train(ctx context.Context, walks [][]string) error {
	rng := rand.New(rand.NewSource(sg.cfg.Seed + 1)) //nolint:gosec // reproducibility matters, not cryptographic strength

	totalPositions := 0
	for _, walk := range walks {
		totalPositions += len(walk)
	}
	totalPositions *= sg.cfg.Epochs
	processed := 0

	order := make([]int, len(walks))
	for i := range order {
		order[i] = i
	}

	for epoch := 0; epoch < sg.cfg.Epochs; epoch++ {
		rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })

		for _, wi := range order {
			if err := ctx.Err(); err != nil {
				return err
			}
			walk := walks[wi]

			for pos, node := range walk {
				progress := float64(processed) / float64(totalPositions)
				lr := sg.cfg.LearningRate * (1.0 - progress)
				if lr < sg.cfg.LearningRate*minLearningRateFactor {
					lr = sg.cfg.LearningRate * minLearningRateFactor
				}
				processed++

				center := sg.index[node]
				lo := pos - sg.cfg.WindowSize
				if lo < 0 {
					lo = 0
				}
				hi := pos + sg.cfg.WindowSize
				if hi >= len(walk) {
					hi = len(walk) - 1
				}

				for c := lo; c <= hi; c++ {
					if c == pos {
						continue
					}
					sg.trainPair(center, sg.index[walk[c]], lr, rng)
				}
			}
		}
	}

	return nil
}

// trainPair applies one positive update and NegativeSamples negative
// updates for a (center, context) pair.
func (sg *skipGram) trainPair(center, contextIdx int, lr float64, rng *rand.Rand) {
	dim := sg.cfg.Dimensions
	grad := make([]float64, dim)
	inVec := sg.in[center]

	// Positive sample plus negatives; label 1 for the true context.
	for s := 0; s <= sg.cfg.NegativeSamples; s++ {
		var target int
		var label float64
		if s == 0 {
			target = contextIdx
			label = 1
		} else {
			target = sg.negTable[rng.Intn(negativeTableSize)]
			if target == contextIdx {
				continue
			}
			label = 0
		}

		outVec := sg.out[target]
		dot := 0.0
		for d := 0; d < dim; d++ {
			dot += inVec[d] * outVec[d]
		}
		g := (label - sigmoid(dot)) * lr

		for d := 0; d < dim; d++ {
			grad[d] += g * outVec[d]
			outVec[d] += g * inVec[d]
		}
	}

	for d := 0; d < dim; d++ {
		inVec[d] += grad[d]
	}
}

// vectors returns the trained input vectors keyed by node ID.
func (sg *skipGram) vectors() map[string][]float64 {
	result := make(map[string][]float64, len(sg.vocab))
	for i, node := range sg.vocab {
		result[node] = sg.in[i]
	}
	return result
}

// sigmoid with input clamping so extreme dot products don't overflow.
func sigmoid(x float64) float64 {
	if x > 6 {
		return 1
	}
	if x < -6 {
		return 0
	}
	return 1.0 / (1.0 + math.Exp(-x))
}
