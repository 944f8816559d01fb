// Package rules holds the fixed compliance rule corpus and its
// similarity-based retriever. The corpus is built once at startup and is
// read-only afterwards, so unsynchronized concurrent reads are safe.
package rules

import (
	"context"
	_ "embed"
	"fmt"
	"os"

	"getgsa/internal/models"
	"getgsa/internal/providers"

	"gopkg.in/yaml.v3"
)

//go:embed rules.yaml
var embeddedPack []byte

type PackRule struct {
	ID       string            `yaml:"id"`
	Title    string            `yaml:"title"`
	Text     string            `yaml:"text"`
	Mappings map[string]string `yaml:"mappings,omitempty"`
}

type Pack struct {
	Rules []PackRule `yaml:"rules"`
}

// LoadPack parses the rule pack. An empty path loads the embedded
// reference pack; tests and operators can point at a substitute file.
func LoadPack(path string) (Pack, error) {
	data := embeddedPack
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return Pack{}, fmt.Errorf("read rule pack %s: %w", path, err)
		}
	}
	var pack Pack
	if err := yaml.Unmarshal(data, &pack); err != nil {
		return Pack{}, fmt.Errorf("parse rule pack: %w", err)
	}
	if len(pack.Rules) == 0 {
		return Pack{}, fmt.Errorf("rule pack is empty")
	}
	for _, r := range pack.Rules {
		if r.ID == "" || r.Text == "" {
			return Pack{}, fmt.Errorf("rule pack entry missing id or text")
		}
	}
	return pack, nil
}

// Corpus is the immutable in-memory rule set with precomputed embeddings.
type Corpus struct {
	rules  []models.Rule
	byID   map[string]int
	sinMap map[string]string
}

// NewCorpus embeds every rule's searchable text with the given provider.
// Insertion order is preserved; retrieval tie-breaks rely on it.
func NewCorpus(ctx context.Context, pack Pack, embedder providers.EmbeddingProvider, dim int) (*Corpus, error) {
	inputs := make([]string, 0, len(pack.Rules))
	for _, r := range pack.Rules {
		inputs = append(inputs, searchableText(r))
	}
	vectors, _, err := embedder.Embed(ctx, providers.EmbedRequest{
		Operation: "rule_corpus_embed",
		Inputs:    inputs,
		Dimension: dim,
	})
	if err != nil {
		return nil, fmt.Errorf("embed rule corpus: %w", err)
	}
	if len(vectors) != len(pack.Rules) {
		return nil, fmt.Errorf("embed rule corpus: got %d vectors for %d rules", len(vectors), len(pack.Rules))
	}

	c := &Corpus{
		byID:   make(map[string]int, len(pack.Rules)),
		sinMap: make(map[string]string),
	}
	for i, r := range pack.Rules {
		c.rules = append(c.rules, models.Rule{
			ID:        r.ID,
			Title:     r.Title,
			Text:      searchableText(r),
			Embedding: vectors[i],
		})
		c.byID[r.ID] = i
		for code, sin := range r.Mappings {
			c.sinMap[code] = sin
		}
	}
	return c, nil
}

func searchableText(r PackRule) string {
	return r.Title + ": " + r.Text
}

func (c *Corpus) Size() int {
	return len(c.rules)
}

func (c *Corpus) Rules() []models.Rule {
	return c.rules
}

func (c *Corpus) RuleByID(id string) (models.Rule, bool) {
	i, ok := c.byID[id]
	if !ok {
		return models.Rule{}, false
	}
	return c.rules[i], true
}

// SINFor returns the catalog category mapped to a NAICS code by the pack.
func (c *Corpus) SINFor(code string) (string, bool) {
	sin, ok := c.sinMap[code]
	return sin, ok
}
