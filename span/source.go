package span

import (
	"io"
	"sort"
)

// Source yields decoded spans one page at a time, in ascending page
// order. Implementations return io.EOF once every page has been served.
// A Source is consumed exactly once; it is not required to be rewindable.
type Source interface {
	// NextPage returns the spans of the next page. The returned slice is
	// owned by the caller. io.EOF signals a cleanly exhausted source.
	NextPage() ([]TextSpan, error)
}

// Collect drains a source into a single flat span slice.
func Collect(src Source) ([]TextSpan, error) {
	var all []TextSpan
	for {
		page, err := src.NextPage()
		if err == io.EOF {
			return all, nil
		}
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
	}
}

// SliceSource serves an in-memory span slice page by page. Useful for
// tests and for decoders that materialize whole documents anyway.
type SliceSource struct {
	pages [][]TextSpan
	next  int
}

// NewSliceSource groups spans by page and returns a Source serving the
// pages in ascending order. The input slice is not modified.
func NewSliceSource(spans []TextSpan) *SliceSource {
	byPage := make(map[int][]TextSpan)
	for _, s := range spans {
		byPage[s.Page] = append(byPage[s.Page], s)
	}

	pageNumbers := make([]int, 0, len(byPage))
	for p := range byPage {
		pageNumbers = append(pageNumbers, p)
	}
	sort.Ints(pageNumbers)

	pages := make([][]TextSpan, 0, len(pageNumbers))
	for _, p := range pageNumbers {
		pages = append(pages, byPage[p])
	}

	return &SliceSource{pages: pages}
}

// NextPage implements Source.
func (s *SliceSource) NextPage() ([]TextSpan, error) {
	if s.next >= len(s.pages) {
		return nil, io.EOF
	}
	page := s.pages[s.next]
	s.next++
	return page, nil
}
