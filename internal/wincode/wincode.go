// Package wincode issues the short redemption codes winners present at the
// venue to claim a physical prize.
package wincode

import "math/rand/v2"

// Alphabet excludes visually ambiguous characters (0/O, 1/I) so a code read
// off a phone screen survives being typed back by a human.
const Alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// CodeLength is the fixed redemption code length.
const CodeLength = 6

// Generator produces redemption codes. No uniqueness check against
// previously issued codes: at 32^6 combinations collisions are accepted,
// not mitigated.
type Generator struct {
	rng func(int) int // Injectable for testing
}

// NewGenerator creates a generator with the default randomness source.
func NewGenerator() *Generator {
	return &Generator{rng: rand.IntN}
}

// NewGeneratorWithRNG creates a generator with an injected randomness source.
func NewGeneratorWithRNG(rng func(int) int) *Generator {
	return &Generator{rng: rng}
}

// Generate returns a fresh 6-character code, each character drawn
// independently and uniformly from Alphabet.
func (g *Generator) Generate() string {
	code := make([]byte, CodeLength)
	for i := range code {
		code[i] = Alphabet[g.rng(len(Alphabet))]
	}
	return string(code)
}
