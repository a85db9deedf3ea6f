// Package catalog holds the list of tools offered by the service, grouped by
// category. The built-in list is embedded; a YAML file with the same shape
// can replace it at runtime.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

var ErrEmptyCatalog = errors.New("catalog has no categories")

type Tool struct {
	Name         string   `yaml:"name" json:"name"`
	Slug         string   `yaml:"slug" json:"slug"`
	Category     string   `yaml:"-" json:"category"`
	CategorySlug string   `yaml:"-" json:"category_slug"`
	Description  string   `yaml:"description,omitempty" json:"description"`
	Features     []string `yaml:"features,omitempty" json:"features"`
	Available    bool     `yaml:"available,omitempty" json:"available"`
}

type Category struct {
	Name  string `yaml:"name" json:"name"`
	Slug  string `yaml:"slug" json:"slug"`
	Tools []Tool `yaml:"tools" json:"tools"`
}

type document struct {
	Categories []Category `yaml:"categories"`
}

// Catalog is safe for concurrent use. Replace swaps the whole content at once.
type Catalog struct {
	mu         sync.RWMutex
	categories []Category
	bySlug     map[string]Tool
}

// Parse reads a catalog document. Tools inherit their category and tools
// without a description are filled in as coming soon.
func Parse(data []byte) ([]Category, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if len(doc.Categories) == 0 {
		return nil, ErrEmptyCatalog
	}

	seen := make(map[string]bool)
	for ci := range doc.Categories {
		cat := &doc.Categories[ci]
		if cat.Slug == "" {
			return nil, fmt.Errorf("category %q has no slug", cat.Name)
		}
		for ti := range cat.Tools {
			tool := &cat.Tools[ti]
			if tool.Slug == "" {
				return nil, fmt.Errorf("tool %q in %s has no slug", tool.Name, cat.Slug)
			}
			if seen[tool.Slug] {
				return nil, fmt.Errorf("duplicate tool slug %q", tool.Slug)
			}
			seen[tool.Slug] = true

			if tool.Name == "" {
				tool.Name = TitleFromSlug(tool.Slug)
			}
			tool.Category = cat.Name
			tool.CategorySlug = cat.Slug
			if tool.Description == "" {
				fillPlaceholder(tool)
			}
		}
	}
	return doc.Categories, nil
}

func New(categories []Category) *Catalog {
	c := &Catalog{}
	c.Replace(categories)
	return c
}

// Default returns the embedded catalog.
func Default() *Catalog {
	categories, err := Parse(defaultCatalog)
	if err != nil {
		panic(fmt.Sprintf("embedded catalog is invalid: %v", err))
	}
	return New(categories)
}

func LoadFile(path string) ([]Category, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	return Parse(data)
}

func (c *Catalog) Replace(categories []Category) {
	bySlug := make(map[string]Tool)
	for _, cat := range categories {
		for _, tool := range cat.Tools {
			bySlug[tool.Slug] = tool
		}
	}

	c.mu.Lock()
	c.categories = categories
	c.bySlug = bySlug
	c.mu.Unlock()
}

func (c *Catalog) Categories() []Category {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Category, len(c.categories))
	copy(out, c.categories)
	return out
}

// Lookup resolves a slug. Unknown slugs yield a coming-soon placeholder and
// false.
func (c *Catalog) Lookup(slug string) (Tool, bool) {
	c.mu.RLock()
	tool, ok := c.bySlug[slug]
	c.mu.RUnlock()
	if ok {
		return tool, true
	}

	tool = Tool{Slug: slug, Name: TitleFromSlug(slug)}
	fillPlaceholder(&tool)
	return tool, false
}

// Search returns tools whose name or category name contains query,
// ignoring case. A non-empty category restricts results to that category
// slug.
func (c *Catalog) Search(query, category string) []Tool {
	q := strings.ToLower(strings.TrimSpace(query))

	c.mu.RLock()
	defer c.mu.RUnlock()

	results := make([]Tool, 0)
	for _, cat := range c.categories {
		if category != "" && cat.Slug != category {
			continue
		}
		catMatch := strings.Contains(strings.ToLower(cat.Name), q)
		for _, tool := range cat.Tools {
			if catMatch || strings.Contains(strings.ToLower(tool.Name), q) {
				results = append(results, tool)
			}
		}
	}
	return results
}

// TitleFromSlug upper-cases the first letter of every dash separated word.
func TitleFromSlug(slug string) string {
	words := strings.Split(slug, "-")
	for i, w := range words {
		if w == "" {
			continue
		}
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}

func fillPlaceholder(tool *Tool) {
	tool.Available = false
	tool.Description = tool.Name + " - Coming Soon! This tool is currently under development."
	tool.Features = []string{
		"Feature 1 - Coming Soon",
		"Feature 2 - Coming Soon",
		"Feature 3 - Coming Soon",
	}
}
