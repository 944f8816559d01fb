package providers

import (
	"fmt"
	"strings"
)

type ProviderRef struct {
	Raw      string
	Name     string
	KeyAlias string
}

// ParseProviderList splits a "name|name:keyalias" env value into refs,
// defaulting to the deterministic stand-in when empty.
func ParseProviderList(raw string) []ProviderRef {
	parts := strings.Split(raw, "|")
	out := make([]ProviderRef, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		ref := ProviderRef{Raw: p}
		if strings.Contains(p, ":") {
			x := strings.SplitN(p, ":", 2)
			ref.Name = strings.TrimSpace(x[0])
			ref.KeyAlias = strings.TrimSpace(x[1])
		} else {
			ref.Name = p
		}
		out = append(out, ref)
	}
	if len(out) == 0 {
		out = append(out, ProviderRef{Raw: "tokenhash", Name: "tokenhash"})
	}
	return out
}

// FromList builds the first provider named in the list.
func FromList(raw string, dim int) (EmbeddingProvider, error) {
	refs := ParseProviderList(raw)
	ref := refs[0]
	switch strings.ToLower(ref.Name) {
	case "tokenhash", "mock":
		return NewTokenHashProvider(dim), nil
	case "openai":
		return NewOpenAIProvider(ref.KeyAlias), nil
	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", ref.Name)
	}
}
