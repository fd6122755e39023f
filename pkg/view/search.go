package view

import (
	"slices"
	"strings"
)

// Query syntax: the text splits on the first '=' into a name part and a
// value part.
//
//	name        rows whose name contains "name"
//	name=text   AND: name matches and the value text contains "text"
//	name=*      AND: name matches and the row has any non-empty value
//	=text       rows whose value text contains "text", names ignored
//	name=       matches nothing: '=' demands a value and none can match
//
// A '.' in the name part scopes it: the part before the last '.' must
// appear in the row's breadcrumb, the part after it in the row's name.
// All comparisons are case-insensitive substring tests. Container rows
// never match by value.
type searchState struct {
	query         string
	matches       []int // IDs of matching rows, ascending
	deferred      bool
	liveThreshold int
}

type searchQuery struct {
	scope    string
	name     string
	value    string
	hasName  bool // name part non-empty
	hasValue bool // an '=' was present
}

func parseSearchQuery(raw string) searchQuery {
	q := searchQuery{}
	namePart := raw
	if i := strings.Index(raw, "="); i >= 0 {
		namePart = raw[:i]
		q.value = strings.ToLower(raw[i+1:])
		q.hasValue = true
	}
	q.hasName = namePart != ""
	q.name = namePart
	if i := strings.LastIndex(namePart, "."); i >= 0 {
		q.scope = strings.ToLower(namePart[:i])
		q.name = namePart[i+1:]
	}
	q.name = strings.ToLower(q.name)
	return q
}

// match evaluates the query against one row and returns the name/value
// flag pair. With both parts present the flags are only ever set together.
func (q searchQuery) match(r *Row) (nameHit, valueHit bool) {
	nameOK := q.matchName(r)
	if !q.hasValue {
		return nameOK, false
	}
	valueOK := q.matchValue(r)
	if !q.hasName {
		return false, valueOK
	}
	return nameOK && valueOK, nameOK && valueOK
}

func (q searchQuery) matchName(r *Row) bool {
	if q.name == "" || !r.HasName {
		return false
	}
	if !strings.Contains(strings.ToLower(r.Name), q.name) {
		return false
	}
	if q.scope != "" && !strings.Contains(strings.ToLower(r.Breadcrumb), q.scope) {
		return false
	}
	return true
}

func (q searchQuery) matchValue(r *Row) bool {
	if !r.Kind.IsScalar() {
		return false
	}
	switch q.value {
	case "":
		return false
	case "*":
		return r.ValueText != ""
	default:
		return strings.Contains(strings.ToLower(r.ValueText), q.value)
	}
}

// UpdateSearch recomputes the match flags of every row for the given query
// and rebuilds the ordered match set. An empty query matches nothing.
func (s *State) UpdateSearch(raw string) {
	s.search.query = raw
	s.search.deferred = false
	q := parseSearchQuery(raw)

	s.search.matches = s.search.matches[:0]
	for i := range s.rows {
		row := &s.rows[i]
		row.NameMatch, row.ValueMatch = q.match(row)
		if row.IsMatch() {
			s.search.matches = append(s.search.matches, i)
		}
	}
}

// UpdateSearchLive recomputes results while the query is still being
// typed. Above the live threshold the recompute is skipped and deferred to
// submit, keeping keystroke latency flat on huge documents.
func (s *State) UpdateSearchLive(raw string) {
	if len(s.rows) > s.search.liveThreshold {
		s.search.query = raw
		s.search.deferred = true
		return
	}
	s.UpdateSearch(raw)
}

// ClearSearch drops the query, the match set and every match flag.
func (s *State) ClearSearch() {
	s.search.query = ""
	s.search.matches = s.search.matches[:0]
	s.search.deferred = false
	for i := range s.rows {
		s.rows[i].NameMatch = false
		s.rows[i].ValueMatch = false
	}
}

// SetLiveSearchThreshold overrides the deferred-recompute row threshold.
func (s *State) SetLiveSearchThreshold(n int) {
	if n > 0 {
		s.search.liveThreshold = n
	}
}

// SearchQuery returns the current query text.
func (s *State) SearchQuery() string { return s.search.query }

// SearchDeferred reports whether live recompute is currently suspended.
func (s *State) SearchDeferred() bool { return s.search.deferred }

// MatchCount returns the size of the match set.
func (s *State) MatchCount() int { return len(s.search.matches) }

// MatchPosition returns the selection's 1-based position in the match set,
// or 0 when the selection is not a match.
func (s *State) MatchPosition() int {
	idx, ok := slices.BinarySearch(s.search.matches, s.selected)
	if !ok {
		return 0
	}
	return idx + 1
}

// NextMatch selects the first match after the selection, wrapping to the
// first match overall. Collapsed ancestors of the target are expanded.
func (s *State) NextMatch() {
	m := s.search.matches
	if len(m) == 0 {
		return
	}
	idx, _ := slices.BinarySearch(m, s.selected+1)
	if idx == len(m) {
		idx = 0
	}
	s.SelectID(m[idx])
}

// PrevMatch selects the last match before the selection, wrapping to the
// last match overall.
func (s *State) PrevMatch() {
	m := s.search.matches
	if len(m) == 0 {
		return
	}
	idx, _ := slices.BinarySearch(m, s.selected)
	idx--
	if idx < 0 {
		idx = len(m) - 1
	}
	s.SelectID(m[idx])
}
