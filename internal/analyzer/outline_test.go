package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dgallion1/reportdiff/internal/doctree"
)

func blocksOf(lines ...string) []doctree.Block {
	out := make([]doctree.Block, len(lines))
	for i, l := range lines {
		out[i] = doctree.Block{Text: l, Page: "1"}
	}
	return out
}

func TestClassify(t *testing.T) {
	cases := []struct {
		in   string
		want Level
	}{
		{"第一部分 货币信贷概况", LevelA},
		{"第十二部分", LevelA},
		{"一、银行体系流动性", LevelB},
		{"十一.其他", LevelB},
		{"（一）稳健的货币政策", LevelC},
		{"(3)数量型工具", LevelC},
		{"1.公开市场操作", LevelD},
		{"1 2、 带空格", LevelD},
		{"今年以来，人民银行", LevelNone},
		{"", LevelNone},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Classify(c.in), "Classify(%q)", c.in)
	}
	assert.Equal(t, "C", LevelC.String())
}

func TestBuild_SiblingAtSameLevel(t *testing.T) {
	tree := OutlineBuilder{TitleMaxLength: 30}.Build("报告", blocksOf("一、A", "（一）B", "二、A2"))

	require.Len(t, tree.Nodes, 4)
	assert.Equal(t, "报告", tree.Title())
	assert.Equal(t, []int{1, 3}, tree.Node(0).Children)
	assert.Equal(t, "一、A", tree.Node(1).Title)
	assert.Equal(t, []int{2}, tree.Node(1).Children)
	assert.Equal(t, "（一）B", tree.Node(2).Title)
	assert.Equal(t, "二、A2", tree.Node(3).Title)
	assert.Equal(t, 0, tree.Node(3).Parent)
}

func TestBuild_ParagraphsAndNesting(t *testing.T) {
	long := "一、这是一个非常长的句子它的长度超过了三十个字符所以应当被视为正文段落而不是标题"
	tree := OutlineBuilder{}.Build("报告", blocksOf(
		"前言段落。",
		"第一部分 概况",
		"一、小节",
		"段落 内容",
		"1.细目",
		"（一）子节",
		"二、第二小节",
		long,
	))

	require.Len(t, tree.Nodes, 6)
	assert.Equal(t, []string{"前言段落。"}, tree.Node(0).Paragraphs)
	assert.Equal(t, []int{1}, tree.Node(0).Children)
	assert.Equal(t, "第一部分 概况", tree.Node(1).Title, "headings keep their spaces")
	assert.Equal(t, []int{2, 5}, tree.Node(1).Children)
	assert.Equal(t, []string{"段落内容"}, tree.Node(2).Paragraphs, "paragraphs drop spaces")
	assert.Equal(t, []int{3}, tree.Node(2).Children)
	// An unseen level nests under whatever is open.
	assert.Equal(t, []int{4}, tree.Node(3).Children)
	assert.Equal(t, []string{long}, tree.Node(5).Paragraphs)

	assert.Equal(t, []int{0, 0, 0, 0}, tree.PathTo(4))
	assert.Equal(t, []int{0, 1}, tree.PathTo(5))
}

func TestBuild_Empty(t *testing.T) {
	tree := OutlineBuilder{}.Build("空", nil)
	require.Len(t, tree.Nodes, 1)
	assert.Empty(t, tree.Node(0).Children)
	assert.Empty(t, tree.Node(0).Paragraphs)
}

func TestBuild_MarkupHeadings(t *testing.T) {
	blocks := []doctree.Block{
		{Text: "Overview", Heading: 1},
		{Text: "Intro text."},
		{Text: "Details", Heading: 2},
		{Text: "一、这是一个非常长的标题但它来自标记所以仍然是标题而不是正文段落内容", Heading: 2},
		{Text: "Next part", Heading: 1},
	}
	tree := OutlineBuilder{KeepSpaces: true}.Build("doc", blocks)

	require.Len(t, tree.Nodes, 5)
	assert.Equal(t, []int{1, 4}, tree.Node(0).Children)
	assert.Equal(t, []string{"Intro text."}, tree.Node(1).Paragraphs)
	assert.Equal(t, []int{2, 3}, tree.Node(1).Children)
	assert.Equal(t, 1, tree.Node(3).Parent)
}
