package doctree

// Fragment is one visually contiguous line of extracted text, in reading order.
type Fragment struct {
	X0     float64 // Left edge of the line
	Height float64 // Line height as reported by the layout extractor
	Text   string
}

// Block is a merged paragraph or continuation run.
type Block struct {
	X0     float64
	Height float64 // Mean height of the merged lines
	Text   string
	Page   string // Label of the page the block starts on
	// Heading is the heading level given by the source markup (1 for the
	// outermost), or 0 when the block carries no markup and its role is
	// inferred from its numbering.
	Heading int
}

// CoverLabel marks the unnumbered cover page.
const CoverLabel = "O"

// Page is the content of one labelled page.
type Page struct {
	Label     string
	Fragments []Fragment
}

// PageSet is an insertion-ordered label → page mapping.
type PageSet struct {
	pages []Page
	index map[string]int
}

// NewPageSet returns an empty page set.
func NewPageSet() *PageSet {
	return &PageSet{index: make(map[string]int)}
}

// Set stores fragments under label. An existing label keeps its position and
// has its content replaced.
func (s *PageSet) Set(label string, fragments []Fragment) {
	if s.index == nil {
		s.index = make(map[string]int)
	}
	if i, ok := s.index[label]; ok {
		s.pages[i].Fragments = fragments
		return
	}
	s.index[label] = len(s.pages)
	s.pages = append(s.pages, Page{Label: label, Fragments: fragments})
}

// Get returns the fragments stored under label.
func (s *PageSet) Get(label string) ([]Fragment, bool) {
	i, ok := s.index[label]
	if !ok {
		return nil, false
	}
	return s.pages[i].Fragments, true
}

// Len returns the number of pages.
func (s *PageSet) Len() int {
	return len(s.pages)
}

// Pages returns the pages in insertion order. The slice must not be modified.
func (s *PageSet) Pages() []Page {
	return s.pages
}

// Labels returns the page labels in insertion order.
func (s *PageSet) Labels() []string {
	out := make([]string, len(s.pages))
	for i, p := range s.pages {
		out[i] = p.Label
	}
	return out
}
