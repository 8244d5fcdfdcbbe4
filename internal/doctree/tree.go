package doctree

// NoParent is the parent index of the root node.
const NoParent = -1

// Node is one section of the outline. Children and Parent are indices into
// the owning Tree.
type Node struct {
	Title      string   // Heading text (document name for the root)
	Paragraphs []string // Body text in document order
	Children   []int
	Parent     int
	Page       string // Label of the page the heading appears on
}

// Tree is an arena-backed outline. Node 0 is the root.
type Tree struct {
	Nodes []Node
}

// NewTree returns a tree holding only a root titled title.
func NewTree(title string) *Tree {
	return &Tree{Nodes: []Node{{Title: title, Parent: NoParent}}}
}

// Root returns the index of the root node.
func (t *Tree) Root() int { return 0 }

// Node returns the node at index i.
func (t *Tree) Node(i int) *Node {
	return &t.Nodes[i]
}

// Title returns the document name.
func (t *Tree) Title() string {
	if len(t.Nodes) == 0 {
		return ""
	}
	return t.Nodes[0].Title
}

// AddChild appends a new node under parent and returns its index.
func (t *Tree) AddChild(parent int, title, page string) int {
	idx := len(t.Nodes)
	t.Nodes = append(t.Nodes, Node{Title: title, Parent: parent, Page: page})
	t.Nodes[parent].Children = append(t.Nodes[parent].Children, idx)
	return idx
}

// AddParagraph appends text to the paragraphs of node i.
func (t *Tree) AddParagraph(i int, text string) {
	t.Nodes[i].Paragraphs = append(t.Nodes[i].Paragraphs, text)
}

// Child returns the index of the n-th (0-based) child of node i.
func (t *Tree) Child(i, n int) (int, bool) {
	children := t.Nodes[i].Children
	if n < 0 || n >= len(children) {
		return 0, false
	}
	return children[n], true
}

// PathTo returns the child positions leading from the root to node i.
func (t *Tree) PathTo(i int) []int {
	var rev []int
	for i != t.Root() {
		parent := t.Nodes[i].Parent
		for pos, c := range t.Nodes[parent].Children {
			if c == i {
				rev = append(rev, pos)
				break
			}
		}
		i = parent
	}
	out := make([]int, len(rev))
	for k := range rev {
		out[k] = rev[len(rev)-1-k]
	}
	return out
}

// Walk visits every node depth-first in document order. fn receives the
// node index and the titles of its ancestors below the root.
func (t *Tree) Walk(fn func(i int, breadcrumb []string)) {
	if len(t.Nodes) == 0 {
		return
	}
	t.walk(t.Root(), nil, fn)
}

func (t *Tree) walk(i int, breadcrumb []string, fn func(int, []string)) {
	fn(i, copyBreadcrumb(breadcrumb))

	var bc []string
	bc = append(bc, breadcrumb...)
	if i != t.Root() {
		bc = append(bc, t.Nodes[i].Title)
	}
	for _, c := range t.Nodes[i].Children {
		t.walk(c, bc, fn)
	}
}

func copyBreadcrumb(bc []string) []string {
	if len(bc) == 0 {
		return nil
	}
	out := make([]string, len(bc))
	copy(out, bc)
	return out
}
