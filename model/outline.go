package model

import "fmt"

// DocumentLevelPage is the reserved page sentinel for headings that apply
// to the whole document rather than a fixed page (archetype overrides).
const DocumentLevelPage = 0

// HeadingLevel represents the hierarchy depth of an outline heading.
type HeadingLevel int

const (
	// H1 is a top-level heading.
	H1 HeadingLevel = iota + 1
	// H2 is a second-level heading.
	H2
	// H3 is a third-level heading.
	H3
	// H4 is a fourth-level heading.
	H4
)

// String returns the conventional label for the level ("H1".."H4").
func (l HeadingLevel) String() string {
	switch l {
	case H1:
		return "H1"
	case H2:
		return "H2"
	case H3:
		return "H3"
	case H4:
		return "H4"
	default:
		return fmt.Sprintf("H?(%d)", int(l))
	}
}

// Rank returns the sort rank of the level; H1 sorts before H4.
func (l HeadingLevel) Rank() int {
	return int(l)
}

// IsValid reports whether the level is one of H1..H4.
func (l HeadingLevel) IsValid() bool {
	return l >= H1 && l <= H4
}

// MarshalJSON encodes the level as its string label.
func (l HeadingLevel) MarshalJSON() ([]byte, error) {
	if !l.IsValid() {
		return nil, fmt.Errorf("invalid heading level %d", int(l))
	}
	return []byte(`"` + l.String() + `"`), nil
}

// UnmarshalJSON decodes a string label ("H1".."H4") into a level.
func (l *HeadingLevel) UnmarshalJSON(data []byte) error {
	parsed, err := ParseHeadingLevel(string(data))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// ParseHeadingLevel converts a label such as "H2" (quoted or bare)
// into a HeadingLevel.
func ParseHeadingLevel(s string) (HeadingLevel, error) {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	switch s {
	case "H1":
		return H1, nil
	case "H2":
		return H2, nil
	case "H3":
		return H3, nil
	case "H4":
		return H4, nil
	default:
		return 0, fmt.Errorf("unknown heading level %q", s)
	}
}

// Heading is one entry of a document outline.
type Heading struct {
	Level HeadingLevel `json:"level"`
	Text  string       `json:"text"`
	Page  int          `json:"page"` // DocumentLevelPage means no fixed page
}

// Result is the full output of outline extraction for one document.
type Result struct {
	Title   string    `json:"title"`
	Outline []Heading `json:"outline"`
}

// HeadingCount returns the number of outline entries. Safe on nil.
func (r *Result) HeadingCount() int {
	if r == nil {
		return 0
	}
	return len(r.Outline)
}

// HeadingsAtLevel returns the outline entries with the given level,
// in outline order. Safe on nil.
func (r *Result) HeadingsAtLevel(level HeadingLevel) []Heading {
	if r == nil {
		return nil
	}
	var out []Heading
	for _, h := range r.Outline {
		if h.Level == level {
			out = append(out, h)
		}
	}
	return out
}
