package world

import (
	"hash/fnv"
	"math/rand"
	"strconv"
	"time"
)

// RNG stream labels used during construction
const (
	streamScatter = "scatter"
	streamPalette = "palette"
)

// SeedValue derives a stable int64 seed for one construction stream
func SeedValue(rootSeed, label string) int64 {
	hasher := fnv.New64a()
	hasher.Write([]byte(rootSeed))
	hasher.Write([]byte{0})
	hasher.Write([]byte(label))
	sum := hasher.Sum64()
	if sum == 0 {
		sum = 1
	}
	return int64(sum)
}

// NewStreamRNG returns an RNG for the labelled stream of a root seed
func NewStreamRNG(rootSeed, label string) *rand.Rand {
	return rand.New(rand.NewSource(SeedValue(rootSeed, label)))
}

// resolveSeed returns the configured seed, or a clock-derived one when empty
func resolveSeed(seed string) string {
	if seed != "" {
		return seed
	}
	return strconv.FormatInt(time.Now().UnixNano(), 36)
}
