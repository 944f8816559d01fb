package providers

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"math"
	"strings"
	"unicode"
)

// TokenHashProvider is the deterministic stand-in embedding backend.
// Each lowercased token is hashed into a handful of fixed vector slots
// (feature hashing), so texts sharing terms land near each other under
// cosine similarity without any model call.
type TokenHashProvider struct {
	dim int
}

func NewTokenHashProvider(dim int) *TokenHashProvider {
	if dim <= 0 {
		dim = 256
	}
	return &TokenHashProvider{dim: dim}
}

func (p *TokenHashProvider) Embed(ctx context.Context, req EmbedRequest) ([][]float32, ProviderInfo, error) {
	_ = ctx
	dim := req.Dimension
	if dim <= 0 {
		dim = p.dim
	}
	vectors := make([][]float32, 0, len(req.Inputs))
	for _, input := range req.Inputs {
		vectors = append(vectors, hashedVector(input, dim))
	}
	return vectors, ProviderInfo{Name: "tokenhash", Model: fmt.Sprintf("tokenhash-%d", dim), Key: "none"}, nil
}

func hashedVector(input string, dim int) []float32 {
	vec := make([]float32, dim)
	for _, tok := range tokenize(input) {
		h := sha256.Sum256([]byte(tok))
		// Spread each token over a few slots with signed weights.
		for i := 0; i < 4; i++ {
			slot := binary.BigEndian.Uint32(h[i*8:i*8+4]) % uint32(dim)
			sign := float32(1)
			if h[i*8+4]&1 == 1 {
				sign = -1
			}
			vec[slot] += sign
		}
	}
	return normalize(vec)
}

func tokenize(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func normalize(v []float32) []float32 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	if sum == 0 {
		return v
	}
	inv := float32(1.0 / math.Sqrt(sum))
	for i := range v {
		v[i] *= inv
	}
	return v
}
