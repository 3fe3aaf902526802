package reference

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"

	contractx "github.com/kritsw/attendant/agent/contract"
)

// Item is one catalog record.
type Item struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
}

// Concept is one tutoring record.
type Concept struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	Summary        string `json:"summary"`
	SampleQuestion string `json:"sample_question"`
}

// Store holds reference data loaded once at startup. It is read-only after
// load and safe to share across sessions.
type Store struct {
	items    []Item
	concepts []Concept
}

// Config points the store at its external sources. Empty paths load the
// built-in defaults directly.
type Config struct {
	CatalogPath string `envconfig:"CATALOG_PATH" split_words:"true"`
	ConceptPath string `envconfig:"CONCEPT_PATH" split_words:"true"`
}

// Load builds a Store from the configured sources. A missing or corrupt
// source degrades to the built-in default dataset with a warning; Load never
// fails startup.
func Load(cfg Config) *Store {
	return &Store{
		items:    loadItems(cfg.CatalogPath),
		concepts: loadConcepts(cfg.ConceptPath),
	}
}

func loadItems(path string) []Item {
	var raw []Item
	if !readJSON(path, "catalog", &raw) {
		return defaultItems()
	}
	items := make([]Item, 0, len(raw))
	for i, it := range raw {
		if strings.TrimSpace(it.ID) == "" || strings.TrimSpace(it.Name) == "" || it.Price < 0 {
			log.Warn().Str("path", path).Int("index", i).Msg("rejecting malformed catalog entry")
			continue
		}
		items = append(items, it)
	}
	if len(items) == 0 {
		log.Warn().Str("path", path).Msg("catalog source has no usable entries, using defaults")
		return defaultItems()
	}
	return items
}

func loadConcepts(path string) []Concept {
	var raw []Concept
	if !readJSON(path, "concepts", &raw) {
		return defaultConcepts()
	}
	concepts := make([]Concept, 0, len(raw))
	for i, c := range raw {
		if strings.TrimSpace(c.ID) == "" || strings.TrimSpace(c.Title) == "" || strings.TrimSpace(c.Summary) == "" {
			log.Warn().Str("path", path).Int("index", i).Msg("rejecting malformed concept entry")
			continue
		}
		concepts = append(concepts, c)
	}
	if len(concepts) == 0 {
		log.Warn().Str("path", path).Msg("concept source has no usable entries, using defaults")
		return defaultConcepts()
	}
	return concepts
}

func readJSON(path, kind string, out any) bool {
	if strings.TrimSpace(path) == "" {
		return false
	}
	data, err := os.ReadFile(path)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msgf("%s source unreadable, using defaults", kind)
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		log.Warn().Err(err).Str("path", path).Msgf("%s source corrupt, using defaults", kind)
		return false
	}
	return true
}

// Items returns all catalog records in load order.
func (s *Store) Items() []Item {
	return s.items
}

// ItemsByCategory filters the catalog by exact case-insensitive category.
func (s *Store) ItemsByCategory(category string) []Item {
	var out []Item
	for _, it := range s.items {
		if strings.EqualFold(it.Category, category) {
			out = append(out, it)
		}
	}
	return out
}

// FindItem resolves a query against the catalog. Case-insensitive exact match
// on name or id wins; otherwise the first record in load order whose name
// contains the query (or is contained by it) is returned.
func (s *Store) FindItem(query string) (Item, error) {
	idx := match(query, len(s.items), func(i int) []string {
		return []string{s.items[i].Name, s.items[i].ID}
	})
	if idx < 0 {
		return Item{}, fmt.Errorf("%w: catalog item %q", contractx.ErrNotFound, query)
	}
	return s.items[idx], nil
}

// Concepts returns all tutoring records in load order.
func (s *Store) Concepts() []Concept {
	return s.concepts
}

// FindConcept resolves a query against the concept list with the same
// precedence rules as FindItem.
func (s *Store) FindConcept(query string) (Concept, error) {
	idx := match(query, len(s.concepts), func(i int) []string {
		return []string{s.concepts[i].Title, s.concepts[i].ID}
	})
	if idx < 0 {
		return Concept{}, fmt.Errorf("%w: concept %q", contractx.ErrNotFound, query)
	}
	return s.concepts[idx], nil
}

// match runs the two lookup passes over n records: exact first, then
// substring containment in either direction. Returns -1 when both miss.
func match(query string, n int, keys func(int) []string) int {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return -1
	}
	for i := 0; i < n; i++ {
		for _, key := range keys(i) {
			if strings.ToLower(key) == q {
				return i
			}
		}
	}
	for i := 0; i < n; i++ {
		for _, key := range keys(i) {
			k := strings.ToLower(key)
			if k == "" {
				continue
			}
			if strings.Contains(k, q) || strings.Contains(q, k) {
				return i
			}
		}
	}
	return -1
}
