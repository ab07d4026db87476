// TalentGraph - Workforce Analytics and Career Mobility Engine
// Copyright 2026 AtlasHR Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/atlashr/talentgraph

// Package embedding learns dense vector representations of graph nodes.
// Second-order biased random walks turn graph structure into node
// sequences, and a skip-gram model with negative sampling turns the
// sequences into embeddings. Nodes sharing structural context end up
// close in the embedding space.
package embedding

import "runtime"

// Config holds the walk and skip-gram hyperparameters.
type Config struct {
	// Dimensions is the embedding vector size.
	Dimensions int
	// WalkLength is the number of nodes per random walk.
	WalkLength int
	// NumWalks is the number of walks started from each node.
	NumWalks int
	// WindowSize is the skip-gram context window radius.
	WindowSize int
	// NegativeSamples is the number of negative samples per positive pair.
	NegativeSamples int
	// Epochs is the number of passes over the walk corpus.
	Epochs int
	// LearningRate is the initial SGD learning rate, decayed linearly.
	LearningRate float64
	// ReturnParam (p) penalizes immediately revisiting the previous node.
	// Values above 1 discourage backtracking.
	ReturnParam float64
	// InOutParam (q) biases walks inward (q > 1) or outward (q < 1).
	InOutParam float64
	// Workers bounds walk-generation parallelism. 0 means GOMAXPROCS.
	Workers int
	// Seed makes walk generation and weight init reproducible.
	Seed int64
}

// DefaultConfig returns the standard hyperparameters. Both bias
// parameters default to 1.0, which reduces the walk to a first-order
// weighted walk.
func DefaultConfig() Config {
	return Config{
		Dimensions:      128,
		WalkLength:      80,
		NumWalks:        10,
		WindowSize:      10,
		NegativeSamples: 5,
		Epochs:          5,
		LearningRate:    0.025,
		ReturnParam:     1.0,
		InOutParam:      1.0,
		Workers:         0,
		Seed:            42,
	}
}

// withDefaults clamps zero or nonsensical values to the defaults so a
// partially populated config never degenerates training.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Dimensions <= 0 {
		c.Dimensions = d.Dimensions
	}
	if c.WalkLength <= 1 {
		c.WalkLength = d.WalkLength
	}
	if c.NumWalks <= 0 {
		c.NumWalks = d.NumWalks
	}
	if c.WindowSize <= 0 {
		c.WindowSize = d.WindowSize
	}
	if c.NegativeSamples <= 0 {
		c.NegativeSamples = d.NegativeSamples
	}
	if c.Epochs <= 0 {
		c.Epochs = d.Epochs
	}
	if c.LearningRate <= 0 {
		c.LearningRate = d.LearningRate
	}
	if c.ReturnParam <= 0 {
		c.ReturnParam = d.ReturnParam
	}
	if c.InOutParam <= 0 {
		c.InOutParam = d.InOutParam
	}
	if c.Workers <= 0 {
		c.Workers = runtime.GOMAXPROCS(0)
	}
	return c
}
