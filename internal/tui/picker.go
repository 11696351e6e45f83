package tui

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/budgetdash/budgetdash/internal/api"
)

// categoryPicker is the type-to-filter category selector embedded in the
// transaction and budget forms.
type categoryPicker struct {
	all     []api.Category
	query   string
	matches []api.Category
	cursor  int
}

func newCategoryPicker(cats []api.Category) categoryPicker {
	p := categoryPicker{all: cats}
	p.matches = rankCategories(cats, "")
	return p
}

func (p *categoryPicker) setQuery(q string) {
	p.query = q
	p.matches = rankCategories(p.all, q)
	p.cursor = 0
}

func (p *categoryPicker) move(delta int) {
	p.cursor += delta
	if p.cursor < 0 {
		p.cursor = 0
	}
	if p.cursor > len(p.matches)-1 {
		p.cursor = len(p.matches) - 1
	}
}

// current returns the highlighted category, nil when nothing matches.
func (p *categoryPicker) current() *api.Category {
	if p.cursor < 0 || p.cursor >= len(p.matches) {
		return nil
	}
	c := p.matches[p.cursor]
	return &c
}

// selectID positions the cursor on the category with the given id; used
// when initializing an edit form from an existing entity.
func (p *categoryPicker) selectID(id int) {
	for i, c := range p.matches {
		if c.ID == id {
			p.cursor = i
			return
		}
	}
}

// rankCategories orders categories by match quality against the query:
// prefix matches, then substring matches, then near misses by edit
// distance. An empty query keeps the service's order.
func rankCategories(cats []api.Category, query string) []api.Category {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		out := make([]api.Category, len(cats))
		copy(out, cats)
		return out
	}

	type scored struct {
		cat   api.Category
		score int
	}
	var ranked []scored
	for _, c := range cats {
		name := strings.ToLower(c.Name)
		var score int
		switch {
		case strings.HasPrefix(name, query):
			score = 0
		case strings.Contains(name, query):
			score = 1
		default:
			dist := levenshtein.ComputeDistance(name, query)
			if dist > len(query) {
				continue
			}
			score = 1 + dist
		}
		ranked = append(ranked, scored{cat: c, score: score})
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score < ranked[j].score })

	out := make([]api.Category, len(ranked))
	for i, r := range ranked {
		out[i] = r.cat
	}
	return out
}
