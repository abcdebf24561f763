// Package catalog loads the read-only catalog of preset grocery lists.
package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"regexp"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/vyrodovalexey/grocerylist/internal/model"
)

// Storage keys.
const (
	DefaultStorageKey = "grocery-items"
	presetKeyPrefix   = "grocery-list-"
)

//go:embed presets.yaml
var defaultPresets []byte

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// Entry is a preset paired with its slug.
type Entry struct {
	Slug   string           `json:"slug"`
	Preset model.PresetList `json:"preset"`
}

// Group is a set of entries sharing a grouping label.
type Group struct {
	Label   string  `json:"label"`
	Entries []Entry `json:"entries"`
}

// Catalog is an immutable slug to preset mapping.
type Catalog struct {
	presets map[string]model.PresetList
	slugs   []string
	skipped []string
}

// Default returns the catalog compiled into the binary.
func Default() (*Catalog, error) {
	return Parse(bytes.NewReader(defaultPresets))
}

// LoadFile reads a catalog from a YAML file.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening preset catalog: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

// Parse reads a YAML mapping of slug to preset. Malformed entries are
// skipped and reported by Skipped.
func Parse(r io.Reader) (*Catalog, error) {
	raw := make(map[string]model.PresetList)
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decoding preset catalog: %w", err)
	}

	c := &Catalog{presets: make(map[string]model.PresetList, len(raw))}
	for slug, preset := range raw {
		cleaned, ok := clean(slug, preset)
		if !ok {
			c.skipped = append(c.skipped, slug)
			continue
		}
		c.presets[slug] = cleaned
		c.slugs = append(c.slugs, slug)
	}

	sort.Strings(c.slugs)
	sort.Strings(c.skipped)

	return c, nil
}

// clean trims a preset and reports whether it is usable.
func clean(slug string, p model.PresetList) (model.PresetList, bool) {
	if !slugPattern.MatchString(slug) {
		return p, false
	}

	p.Name = strings.TrimSpace(p.Name)
	p.Description = strings.TrimSpace(p.Description)
	p.Category = strings.TrimSpace(p.Category)
	if p.Name == "" {
		return p, false
	}

	items := make([]string, 0, len(p.Items))
	for _, item := range p.Items {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return p, false
	}
	p.Items = items

	return p, true
}

// Len returns the number of usable presets.
func (c *Catalog) Len() int {
	return len(c.slugs)
}

// Skipped returns the slugs of malformed entries dropped at load.
func (c *Catalog) Skipped() []string {
	return append([]string(nil), c.skipped...)
}

// Slugs returns all slugs in sorted order.
func (c *Catalog) Slugs() []string {
	return append([]string(nil), c.slugs...)
}

// Get returns the preset for slug.
func (c *Catalog) Get(slug string) (model.PresetList, bool) {
	p, ok := c.presets[slug]
	if !ok {
		return model.PresetList{}, false
	}
	p.Items = append([]string(nil), p.Items...)
	return p, true
}

// Search returns entries whose name, description or grouping label contains
// query, ignoring case. An empty query matches everything.
func (c *Catalog) Search(query string) []Entry {
	query = strings.ToLower(strings.TrimSpace(query))

	out := make([]Entry, 0, len(c.slugs))
	for _, slug := range c.slugs {
		p := c.presets[slug]
		if query == "" ||
			strings.Contains(strings.ToLower(p.Name), query) ||
			strings.Contains(strings.ToLower(p.Description), query) ||
			strings.Contains(strings.ToLower(p.Category), query) {
			out = append(out, c.entry(slug))
		}
	}
	return out
}

// Random returns up to n distinct entries, excluding the exclude slug.
func (c *Catalog) Random(n int, exclude string, rng *rand.Rand) []Entry {
	if n <= 0 {
		return []Entry{}
	}

	candidates := make([]string, 0, len(c.slugs))
	for _, slug := range c.slugs {
		if slug != exclude {
			candidates = append(candidates, slug)
		}
	}

	rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	if n > len(candidates) {
		n = len(candidates)
	}

	out := make([]Entry, n)
	for i, slug := range candidates[:n] {
		out[i] = c.entry(slug)
	}
	return out
}

func (c *Catalog) entry(slug string) Entry {
	p, _ := c.Get(slug)
	return Entry{Slug: slug, Preset: p}
}

// GroupByLabel groups entries by their grouping label, in order of first
// appearance.
func GroupByLabel(entries []Entry) []Group {
	index := make(map[string]int)
	groups := make([]Group, 0)

	for _, e := range entries {
		i, ok := index[e.Preset.Category]
		if !ok {
			i = len(groups)
			index[e.Preset.Category] = i
			groups = append(groups, Group{Label: e.Preset.Category})
		}
		groups[i].Entries = append(groups[i].Entries, e)
	}
	return groups
}

// StorageKey returns the storage key of the list seeded from slug.
func StorageKey(slug string) string {
	return presetKeyPrefix + slug
}

// SlugToTitle turns "bbq-party" into "Bbq Party".
func SlugToTitle(slug string) string {
	// Casers are stateful; one per call.
	caser := cases.Title(language.Und, cases.NoLower)
	words := strings.Split(slug, "-")
	for i, w := range words {
		words[i] = caser.String(w)
	}
	return strings.Join(words, " ")
}
