// Package category assigns a category to an event from its title and notes.
package category

import "strings"

// Category is the closed set of event categories.
type Category string

// The three categories an event can carry.
const (
	Work     Category = "Work"
	Personal Category = "Personal"
	Other    Category = "Other"
)

// Valid reports whether c is one of the three known categories.
func (c Category) Valid() bool {
	switch c {
	case Work, Personal, Other:
		return true
	}
	return false
}

func (c Category) String() string { return string(c) }

// Default keyword lists. Order matters: lists are scanned front to back and
// the first substring hit wins, with the work list checked before the
// personal list.
var (
	defaultWorkKeywords = []string{
		"meeting", "project", "client", "deadline", "report",
		"presentation", "sprint", "scrum", "business",
	}
	defaultPersonalKeywords = []string{
		"birthday", "family", "friends", "anniversary", "party",
		"vacation", "holiday", "dinner", "lunch",
	}
)

// Option applies a configuration option to the Categorizer.
type Option func(*Categorizer)

// WithWorkKeywords overrides the ordered work keyword list. Keywords are
// lowercased on the way in; empty entries are dropped.
func WithWorkKeywords(keywords []string) Option {
	return func(c *Categorizer) {
		if kw := normalizeKeywords(keywords); len(kw) > 0 {
			c.workKeywords = kw
		}
	}
}

// WithPersonalKeywords overrides the ordered personal keyword list.
func WithPersonalKeywords(keywords []string) Option {
	return func(c *Categorizer) {
		if kw := normalizeKeywords(keywords); len(kw) > 0 {
			c.personalKeywords = kw
		}
	}
}

func normalizeKeywords(keywords []string) []string {
	out := make([]string, 0, len(keywords))
	for _, k := range keywords {
		k = strings.ToLower(strings.TrimSpace(k))
		if k != "" {
			out = append(out, k)
		}
	}
	return out
}

// Categorizer maps free text to a Category by naive substring matching.
// It is pure and safe for concurrent use; the keyword lists are fixed at
// construction time.
type Categorizer struct {
	workKeywords     []string
	personalKeywords []string
}

// New creates a Categorizer with the default keyword lists, then applies
// options.
func New(opts ...Option) *Categorizer {
	c := &Categorizer{
		workKeywords:     defaultWorkKeywords,
		personalKeywords: defaultPersonalKeywords,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Categorize returns the category for an event with the given title and
// notes. The title and notes are joined, lowercased, and scanned against the
// work list first, then the personal list; the scan short-circuits on the
// first substring match. Matching is containment, not whole-word: "business"
// matches inside "businesslike".
func (c *Categorizer) Categorize(title, notes string) Category {
	text := strings.ToLower(title + " " + notes)

	for _, keyword := range c.workKeywords {
		if strings.Contains(text, keyword) {
			return Work
		}
	}

	for _, keyword := range c.personalKeywords {
		if strings.Contains(text, keyword) {
			return Personal
		}
	}

	return Other
}

// WorkKeywords returns a copy of the ordered work keyword list.
func (c *Categorizer) WorkKeywords() []string {
	return append([]string(nil), c.workKeywords...)
}

// PersonalKeywords returns a copy of the ordered personal keyword list.
func (c *Categorizer) PersonalKeywords() []string {
	return append([]string(nil), c.personalKeywords...)
}
