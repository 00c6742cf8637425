package domain

import (
	"strconv"
	"strings"
	"unicode"
)

// fallbackSlug is used when a title contains no alphanumeric characters.
const fallbackSlug = "untitled"

// IDSet is a set of identifiers already in use.
// Callers grow it as they assign identifiers across a batch.
type IDSet map[DocumentID]struct{}

// NewIDSet creates a set seeded with ids.
func NewIDSet(ids ...DocumentID) IDSet {
	s := make(IDSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Has reports whether id is in the set.
func (s IDSet) Has(id DocumentID) bool {
	_, ok := s[id]
	return ok
}

// Add inserts id into the set.
func (s IDSet) Add(id DocumentID) {
	s[id] = struct{}{}
}

// Slugify converts text into a lower-case, hyphen-separated, URL-safe slug.
// Every run of non-alphanumeric characters collapses to a single hyphen and
// leading or trailing hyphens are dropped.
func Slugify(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	pendingHyphen := false
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}
	return b.String()
}

// AssignID derives an identifier for title that is not in existing.
// The bare slug is used when free; otherwise -1, -2, ... are tried in order.
// The returned id is added to existing so siblings in the same batch get
// distinct, order-dependent suffixes.
func AssignID(title string, existing IDSet) DocumentID {
	base := Slugify(title)
	if base == "" {
		base = fallbackSlug
	}

	id := DocumentID(base)
	for n := 1; existing.Has(id); n++ {
		id = DocumentID(base + "-" + strconv.Itoa(n))
	}

	if existing != nil {
		existing.Add(id)
	}
	return id
}
