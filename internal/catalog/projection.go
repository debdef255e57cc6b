package catalog

import "strings"

// Project derives a filtered view of the catalog in stored order. A non-empty
// brandFilter keeps exact (case-sensitive) brand matches; a non-empty
// searchTerm keeps entries whose brand or model contains the term
// case-insensitively. Both filters compose as a logical AND. The catalog is
// never mutated, so calling on every keystroke is safe.
func Project(m *Model, brandFilter, searchTerm string) []Product {
	term := strings.ToLower(searchTerm)

	view := make([]Product, 0, len(m.products))
	for _, p := range m.products {
		if brandFilter != "" && p.Brand != brandFilter {
			continue
		}
		if term != "" && !matchesTerm(p, term) {
			continue
		}
		view = append(view, p)
	}
	return view
}

func matchesTerm(p Product, lowerTerm string) bool {
	return strings.Contains(strings.ToLower(p.Brand), lowerTerm) ||
		strings.Contains(strings.ToLower(p.Model), lowerTerm)
}
