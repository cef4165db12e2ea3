package wincode

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateLengthAndAlphabet(t *testing.T) {
	gen := NewGenerator()

	for i := 0; i < 1000; i++ {
		code := gen.Generate()
		assert.Len(t, code, CodeLength)

		for _, c := range code {
			assert.Containsf(t, Alphabet, string(c), "code %q contains %q", code, c)
		}

		// Never the ambiguous glyphs.
		assert.NotContains(t, code, "0")
		assert.NotContains(t, code, "O")
		assert.NotContains(t, code, "1")
		assert.NotContains(t, code, "I")
	}
}

func TestGenerateCoversWholeAlphabet(t *testing.T) {
	gen := NewGenerator()

	seen := make(map[rune]bool)
	for i := 0; i < 5000; i++ {
		for _, c := range gen.Generate() {
			seen[c] = true
		}
	}
	assert.Len(t, seen, len(Alphabet))
}

func TestGenerateWithStubRNG(t *testing.T) {
	gen := NewGeneratorWithRNG(func(int) int { return 0 })
	assert.Equal(t, strings.Repeat("A", CodeLength), gen.Generate())
}
