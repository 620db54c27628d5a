package movie

import "strings"

// Filter narrows a movie search. A nil or empty Genres slice and an empty
// Query both mean "no restriction".
type Filter struct {
	Genres []string
	Query  string
}

// ParseGenreNames splits a comma-delimited list of genre names.
// Blank terms and case-insensitive duplicates are dropped.
func ParseGenreNames(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	return cleanGenreNames(strings.Split(raw, ","))
}

func cleanGenreNames(names []string) []string {
	var out []string
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, name)
	}
	return out
}

func (f Filter) Normalize() Filter {
	return Filter{
		Genres: cleanGenreNames(f.Genres),
		Query:  strings.TrimSpace(f.Query),
	}
}

func (f Filter) IsEmpty() bool {
	n := f.Normalize()
	return len(n.Genres) == 0 && n.Query == ""
}

// Match reports whether m satisfies the filter: at least one genre named in
// the filter (case-insensitive) and a title containing the query
// (case-insensitive). m.Genres must be populated for the genre check.
func (f Filter) Match(m Movie) bool {
	n := f.Normalize()

	if len(n.Genres) > 0 && !hasAnyGenre(m, n.Genres) {
		return false
	}
	if n.Query != "" && !strings.Contains(strings.ToLower(m.Title), strings.ToLower(n.Query)) {
		return false
	}
	return true
}

func hasAnyGenre(m Movie, names []string) bool {
	for _, g := range m.Genres {
		for _, name := range names {
			if strings.EqualFold(g.Name, name) {
				return true
			}
		}
	}
	return false
}
