// Package pointset keeps the ordered list of points a driver feeds into the
// index, together with the identity of each point.
package pointset

import (
	"sync"

	"github.com/google/uuid"

	"github.com/go-sod/quadtree/internal/geom"
)

type Entry struct {
	ID    uuid.UUID  `json:"id"`
	Point geom.Point `json:"point"`
	Fed   bool       `json:"fed"`
}

// Checker reports which of the given points are indexed.
type Checker interface {
	ContainsAll(points []geom.Point) []bool
}

type Coverage struct {
	Total   int     `json:"total"`
	Fed     int     `json:"fed"`
	Indexed int     `json:"indexed"`
	Percent float64 `json:"percent"`
}

func New(points ...geom.Point) *Set {
	s := &Set{}
	s.Append(points...)
	return s
}

type Set struct {
	mtx     sync.RWMutex
	entries []Entry
	next    int
}

func (s *Set) Append(points ...geom.Point) {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	for _, p := range points {
		s.entries = append(s.entries, Entry{ID: uuid.New(), Point: p})
	}
}

// Next returns the first entry that has not been fed yet and marks it fed.
// The second result is false once every entry was handed out.
func (s *Set) Next() (Entry, bool) {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	if s.next >= len(s.entries) {
		return Entry{}, false
	}
	s.entries[s.next].Fed = true
	e := s.entries[s.next]
	s.next += 1
	return e, true
}

func (s *Set) Len() int {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	return len(s.entries)
}

func (s *Set) Remaining() int {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	return len(s.entries) - s.next
}

func (s *Set) Entries() []Entry {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	return append([]Entry(nil), s.entries...)
}

// Coverage classifies every entry as indexed or not, using the exact
// coordinates the entry was created with.
func (s *Set) Coverage(c Checker) Coverage {
	s.mtx.RLock()
	points := make([]geom.Point, len(s.entries))
	for i := range s.entries {
		points[i] = s.entries[i].Point
	}
	cov := Coverage{Total: len(s.entries), Fed: s.next}
	s.mtx.RUnlock()

	for _, found := range c.ContainsAll(points) {
		if found {
			cov.Indexed += 1
		}
	}
	if cov.Total > 0 {
		cov.Percent = 100 * float64(cov.Indexed) / float64(cov.Total)
	}
	return cov
}
