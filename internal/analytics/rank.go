package analytics

import "sort"

// TopN is how many entries each ranking keeps.
const TopN = 5

// Ranked is an entry in a top-N rollup.
type Ranked struct {
	Label   string  `json:"label"`
	Count   float64 `json:"count"`
	Revenue float64 `json:"revenue"`
}

// tally accumulates per-key counts and revenue, remembering the first
// display label and the encounter order of keys.
type tally struct {
	order   []string
	entries map[string]*Ranked
}

func newTally() *tally {
	return &tally{entries: make(map[string]*Ranked)}
}

func (t *tally) add(key, label string, count, revenue float64) {
	e, ok := t.entries[key]
	if !ok {
		e = &Ranked{Label: label}
		t.entries[key] = e
		t.order = append(t.order, key)
	}
	e.Count += count
	e.Revenue += revenue
}

func (t *tally) list() []Ranked {
	out := make([]Ranked, 0, len(t.order))
	for _, key := range t.order {
		out = append(out, *t.entries[key])
	}
	return out
}

// top sorts a copy of entries by key descending, keeping encounter order
// among ties, and truncates to n.
func top(entries []Ranked, n int, key func(Ranked) float64) []Ranked {
	sorted := make([]Ranked, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return key(sorted[i]) > key(sorted[j])
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

func byCount(r Ranked) float64   { return r.Count }
func byRevenue(r Ranked) float64 { return r.Revenue }
