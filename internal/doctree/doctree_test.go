package doctree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageSet_InsertionOrder(t *testing.T) {
	s := NewPageSet()
	s.Set("O", []Fragment{{Text: "封面"}})
	s.Set("2", []Fragment{{Text: "b"}})
	s.Set("1", []Fragment{{Text: "a"}})
	s.Set("2", []Fragment{{Text: "b2"}})

	assert.Equal(t, []string{"O", "2", "1"}, s.Labels())
	assert.Equal(t, 3, s.Len())

	got, ok := s.Get("2")
	require.True(t, ok)
	assert.Equal(t, "b2", got[0].Text)

	_, ok = s.Get("9")
	assert.False(t, ok)
}

func TestPageSet_ZeroValue(t *testing.T) {
	var s PageSet
	s.Set("1", nil)
	assert.Equal(t, []string{"1"}, s.Labels())
}

func sampleTree() *Tree {
	tr := NewTree("Report")
	a := tr.AddChild(tr.Root(), "Part 1", "1")
	b := tr.AddChild(a, "Section 1.1", "1")
	tr.AddParagraph(b, "body")
	tr.AddChild(a, "Section 1.2", "2")
	tr.AddChild(tr.Root(), "Part 2", "3")
	return tr
}

func TestTree_Navigation(t *testing.T) {
	tr := sampleTree()

	assert.Equal(t, "Report", tr.Title())
	assert.Equal(t, NoParent, tr.Node(tr.Root()).Parent)

	a, ok := tr.Child(tr.Root(), 0)
	require.True(t, ok)
	b, ok := tr.Child(a, 1)
	require.True(t, ok)
	assert.Equal(t, "Section 1.2", tr.Node(b).Title)
	assert.Equal(t, []int{0, 1}, tr.PathTo(b))
	assert.Empty(t, tr.PathTo(tr.Root()))

	_, ok = tr.Child(a, 2)
	assert.False(t, ok)
	_, ok = tr.Child(a, -1)
	assert.False(t, ok)
}

func TestTree_Walk(t *testing.T) {
	tr := sampleTree()

	var titles []string
	crumbs := map[string][]string{}
	tr.Walk(func(i int, bc []string) {
		n := tr.Node(i)
		titles = append(titles, n.Title)
		crumbs[n.Title] = bc
	})

	assert.Equal(t, []string{"Report", "Part 1", "Section 1.1", "Section 1.2", "Part 2"}, titles)
	assert.Nil(t, crumbs["Report"])
	assert.Nil(t, crumbs["Part 1"])
	assert.Equal(t, []string{"Part 1"}, crumbs["Section 1.1"])
	assert.Equal(t, []string{"Part 1"}, crumbs["Section 1.2"])
}

func TestTree_WalkEmpty(t *testing.T) {
	called := false
	(&Tree{}).Walk(func(int, []string) { called = true })
	assert.False(t, called)
}
