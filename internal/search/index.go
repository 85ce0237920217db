// Package search ranks stored ideas by word overlap with a free-text query.
//
// An index is built from a snapshot of ideas and never mutated afterwards,
// so it is safe for concurrent use. Terms are Unicode-case-folded runs of
// letters and digits that start with a letter. Scoring is the Jaccard
// similarity of the query and idea term sets: |Q ∩ D| / |Q ∪ D|.
package search

import (
	"cmp"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
)

// defaultK applies when TopK is called with k <= 0.
const defaultK = 3

// Doc is one idea to index.
type Doc struct {
	ID   string
	Text string
}

// Result is a ranked idea. Snippet is the idea text with whitespace folded.
type Result struct {
	ID      string
	Snippet string
	Score   float64
}

// Index answers similarity queries over a fixed set of ideas.
type Index interface {
	TopK(query string, k int) []Result
	Len() int
}

// DefaultStopwords are English function words that carry no signal when
// comparing idea descriptions.
var DefaultStopwords = []string{
	"a", "an", "and", "are", "as", "at", "be", "by", "for", "from", "in",
	"into", "is", "it", "of", "on", "or", "that", "the", "their", "to",
	"with", "who", "your",
}

type settings struct {
	minRunes int
	maxDocs  int
	stop     termSet
}

// Option tunes NewIndex.
type Option func(*settings)

// WithMinRunes skips ideas shorter than n runes. Negative n is ignored.
func WithMinRunes(n int) Option {
	return func(s *settings) {
		if n >= 0 {
			s.minRunes = n
		}
	}
}

// WithStopwords drops the given words from both ideas and queries.
func WithStopwords(words []string) Option {
	return func(s *settings) {
		set := termSet{}
		for _, w := range words {
			if w = fold(strings.TrimSpace(w)); w != "" {
				set[w] = struct{}{}
			}
		}
		if len(set) > 0 {
			s.stop = set
		}
	}
}

// WithMaxDocs stops indexing once n ideas have been accepted.
func WithMaxDocs(n int) Option {
	return func(s *settings) {
		if n > 0 {
			s.maxDocs = n
		}
	}
}

type termSet map[string]struct{}

// shared counts the terms present in both sets.
func (t termSet) shared(o termSet) int {
	if len(t) > len(o) {
		t, o = o, t
	}
	n := 0
	for w := range t {
		if _, ok := o[w]; ok {
			n++
		}
	}
	return n
}

type entry struct {
	id    string
	text  string
	runes int
	terms termSet
}

type jaccardIndex struct {
	stop    termSet
	entries []entry
}

// NewIndex indexes docs in order. Ideas that are blank, shorter than the
// WithMinRunes floor, or left with no terms after stop-word removal are
// skipped and do not count towards WithMaxDocs.
func NewIndex(docs []Doc, opts ...Option) Index {
	var s settings
	for _, o := range opts {
		o(&s)
	}

	idx := &jaccardIndex{stop: s.stop, entries: make([]entry, 0, len(docs))}
	for _, d := range docs {
		if s.maxDocs > 0 && len(idx.entries) == s.maxDocs {
			break
		}
		text := strings.Join(strings.Fields(d.Text), " ")
		runes := utf8.RuneCountInString(text)
		if runes == 0 || runes < s.minRunes {
			continue
		}
		terms := extractTerms(text, s.stop)
		if len(terms) == 0 {
			continue
		}
		idx.entries = append(idx.entries, entry{id: d.ID, text: text, runes: runes, terms: terms})
	}
	return idx
}

// Len reports how many ideas were accepted.
func (x *jaccardIndex) Len() int { return len(x.entries) }

// TopK returns up to k ideas sharing at least one term with query, best
// first. Equal scores prefer shorter text, then text order, then id. A nil
// slice means nothing matched.
func (x *jaccardIndex) TopK(query string, k int) []Result {
	q := extractTerms(query, x.stop)
	if len(q) == 0 || len(x.entries) == 0 {
		return nil
	}
	if k <= 0 {
		k = defaultK
	}

	type hit struct {
		*entry
		score float64
	}
	var hits []hit
	for i := range x.entries {
		e := &x.entries[i]
		n := q.shared(e.terms)
		if n == 0 {
			continue
		}
		hits = append(hits, hit{entry: e, score: float64(n) / float64(len(q)+len(e.terms)-n)})
	}
	if len(hits) == 0 {
		return nil
	}

	slices.SortFunc(hits, func(a, b hit) int {
		return cmp.Or(
			cmp.Compare(b.score, a.score),
			cmp.Compare(a.runes, b.runes),
			strings.Compare(a.text, b.text),
			strings.Compare(a.id, b.id),
		)
	})

	out := make([]Result, 0, min(k, len(hits)))
	for _, h := range hits[:cap(out)] {
		out = append(out, Result{ID: h.id, Snippet: h.text, Score: h.score})
	}
	return out
}

// extractTerms splits s into folded letter/digit runs, keeping those that
// start with a letter and are not stop words. It returns nil when nothing
// survives.
func extractTerms(s string, stop termSet) termSet {
	words := strings.FieldsFunc(fold(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	var out termSet
	for _, w := range words {
		if r, _ := utf8.DecodeRuneInString(w); !unicode.IsLetter(r) {
			continue
		}
		if _, skip := stop[w]; skip {
			continue
		}
		if out == nil {
			out = termSet{}
		}
		out[w] = struct{}{}
	}
	return out
}

// folder is stateless and safe for concurrent use.
var folder = cases.Fold()

func fold(s string) string { return folder.String(s) }
