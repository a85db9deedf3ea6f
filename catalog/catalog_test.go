package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const smallCatalog = `
categories:
  - name: Text Tools
    slug: text-tools
    tools:
      - name: Word Counter
        slug: word-counter
        available: true
        description: Count words.
        features: [Counting]
      - name: Case Converter
        slug: case-converter
  - name: Calculators
    slug: calculators
    tools:
      - name: BMI Calculator
        slug: bmi-calculator
        available: true
        description: Body mass index.
`

func TestDefault(t *testing.T) {
	c := Default()

	categories := c.Categories()
	require.Len(t, categories, 6)
	for _, cat := range categories {
		assert.Len(t, cat.Tools, 10, cat.Name)
	}

	for _, slug := range []string{
		"word-counter", "image-to-png", "image-to-jpg", "image-resizer",
		"percentage-calculator", "bmi-calculator", "calories-calculator", "age-calculator",
	} {
		tool, ok := c.Lookup(slug)
		assert.True(t, ok, slug)
		assert.True(t, tool.Available, slug)
		assert.NotEmpty(t, tool.Features, slug)
	}
}

func TestParse_FillsCategoryAndPlaceholders(t *testing.T) {
	categories, err := Parse([]byte(smallCatalog))
	require.NoError(t, err)

	caseConv := categories[0].Tools[1]
	assert.Equal(t, "Text Tools", caseConv.Category)
	assert.Equal(t, "text-tools", caseConv.CategorySlug)
	assert.False(t, caseConv.Available)
	assert.Equal(t, "Case Converter - Coming Soon! This tool is currently under development.", caseConv.Description)
	assert.Len(t, caseConv.Features, 3)
}

func TestParse_Errors(t *testing.T) {
	_, err := Parse([]byte("categories: []"))
	assert.ErrorIs(t, err, ErrEmptyCatalog)

	_, err = Parse([]byte("categories: [{name: A, slug: a, tools: [{slug: x}, {slug: x}]}]"))
	assert.ErrorContains(t, err, "duplicate tool slug")

	_, err = Parse([]byte("categories: ["))
	assert.Error(t, err)
}

func TestLookup_UnknownSlug(t *testing.T) {
	c := Default()

	tool, ok := c.Lookup("loan-emi-planner")
	assert.False(t, ok)
	assert.Equal(t, "Loan Emi Planner", tool.Name)
	assert.Equal(t, "Loan Emi Planner - Coming Soon! This tool is currently under development.", tool.Description)
	assert.Equal(t, []string{
		"Feature 1 - Coming Soon",
		"Feature 2 - Coming Soon",
		"Feature 3 - Coming Soon",
	}, tool.Features)
}

func TestSearch(t *testing.T) {
	categories, err := Parse([]byte(smallCatalog))
	require.NoError(t, err)
	c := New(categories)

	assert.Len(t, c.Search("", ""), 3)

	results := c.Search("WORD", "")
	require.Len(t, results, 1)
	assert.Equal(t, "word-counter", results[0].Slug)

	// a category name match returns every tool in it
	assert.Len(t, c.Search("text", ""), 2)

	assert.Empty(t, c.Search("bmi", "text-tools"))
	assert.Len(t, c.Search("", "calculators"), 1)
	assert.Empty(t, c.Search("nothing like this", ""))
}

func TestTitleFromSlug(t *testing.T) {
	tests := map[string]string{
		"word-counter":    "Word Counter",
		"json-formatter":  "Json Formatter",
		"a":               "A",
		"double--dash":    "Double  Dash",
		"already-Capital": "Already Capital",
		"élan-über":       "Élan Über",
		"ümlaut":          "Ümlaut",
	}
	for slug, want := range tests {
		assert.Equal(t, want, TitleFromSlug(slug), slug)
	}
}

func TestWatch_ReloadsOnChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(smallCatalog), 0o644))

	categories, err := LoadFile(path)
	require.NoError(t, err)
	c := New(categories)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, Watch(ctx, c, path, zap.NewNop()))

	updated := smallCatalog + `
  - name: Unit Converters
    slug: unit-converters
    tools:
      - name: Length Converter
        slug: length-converter
`
	require.NoError(t, os.WriteFile(path, []byte(updated), 0o644))

	assert.Eventually(t, func() bool {
		_, ok := c.Lookup("length-converter")
		return ok
	}, 5*time.Second, 50*time.Millisecond)
}

func TestWatch_KeepsCatalogOnBadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(smallCatalog), 0o644))

	categories, err := LoadFile(path)
	require.NoError(t, err)
	c := New(categories)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, Watch(ctx, c, path, zap.NewNop()))

	require.NoError(t, os.WriteFile(path, []byte("categories: []"), 0o644))
	time.Sleep(2 * reloadDebounce)

	_, ok := c.Lookup("word-counter")
	assert.True(t, ok)
}
