package typst

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/alnah/go-md2typst/internal/document"
)

func TestRender_Lists(t *testing.T) {
	t.Parallel()

	r := NewRenderer(Options{})

	t.Run("bullet list", func(t *testing.T) {
		t.Parallel()
		l := &document.List{Container: document.Of(item(para(text("a"))), item(para(text("b"))))}
		assert.Equal(t, "- a\n- b\n\n", r.RenderBlock(l, 0))
	})

	t.Run("ordered list starts at declared start", func(t *testing.T) {
		t.Parallel()
		l := &document.List{Ordered: true, Start: 3, Container: document.Of(item(para(text("c"))), item(para(text("d"))))}
		assert.Equal(t, "3. c\n4. d\n\n", r.RenderBlock(l, 0))
	})

	t.Run("ordered list start clamps to one", func(t *testing.T) {
		t.Parallel()
		l := &document.List{Ordered: true, Start: 0, Container: document.Of(item(para(text("x"))), item(para(text("y"))))}
		assert.Equal(t, "1. x\n2. y\n\n", r.RenderBlock(l, 0))
	})

	t.Run("non-item children are skipped", func(t *testing.T) {
		t.Parallel()
		l := &document.List{Ordered: true, Container: document.Of(para(text("stray")), item(para(text("x"))))}
		assert.Equal(t, "1. x\n\n", r.RenderBlock(l, 0))
	})

	t.Run("task items", func(t *testing.T) {
		t.Parallel()
		l := &document.List{Container: document.Of(
			&document.TaskItem{Checked: true, Container: document.Of(para(text("done")))},
			&document.TaskItem{Container: document.Of(para(text("todo")))},
		)}
		assert.Equal(t, "- [x] done\n- [ ] todo\n\n", r.RenderBlock(l, 0))
	})

	t.Run("nested list is re-indented below the head", func(t *testing.T) {
		t.Parallel()
		inner := &document.List{Container: document.Of(item(para(text("child"))))}
		l := &document.List{Container: document.Of(item(para(text("parent")), inner), item(para(text("next"))))}
		assert.Equal(t, "- parent\n    - child\n- next\n\n", r.RenderBlock(l, 0))
	})

	t.Run("tail paragraphs keep blank lines unindented", func(t *testing.T) {
		t.Parallel()
		l := &document.List{Container: document.Of(item(para(text("head")), para(text("more")), para(text("last"))))}
		assert.Equal(t, "- head\n  more\n\n  last\n\n", r.RenderBlock(l, 0))
	})

	t.Run("item without paragraph has empty head", func(t *testing.T) {
		t.Parallel()
		l := &document.List{Container: document.Of(item(&document.CodeBlock{Literal: "x"}))}
		assert.Equal(t, "- \n  ```\n  x\n  ```\n\n", r.RenderBlock(l, 0))
	})
}

func TestIndentBlock(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "    a\n\n    b", indentBlock("a\n\nb\n\n", 2))
	assert.Equal(t, "", indentBlock("", 1))
}

func TestRender_DescriptionList(t *testing.T) {
	t.Parallel()

	r := NewRenderer(Options{})

	term := func(s string) *document.DescriptionTerm {
		return &document.DescriptionTerm{Container: document.Of(para(text(s)))}
	}
	details := func(paras ...document.Node) *document.DescriptionDetails {
		return &document.DescriptionDetails{Container: document.Of(paras...)}
	}
	descItem := func(children ...document.Node) *document.DescriptionItem {
		return &document.DescriptionItem{Container: document.Of(children...)}
	}

	l := &document.DescriptionList{Container: document.Of(
		descItem(term("Go"), details(para(text("A language.")), para(text("Compiled.")))),
		descItem(term("Alone")),
		descItem(details(para(text("no term")))),
		descItem(),
	)}

	want := "- *Go*: A language.  Compiled.\n" +
		"- *Alone*\n" +
		"- no term\n" +
		"\n"
	assert.Equal(t, want, r.RenderBlock(l, 0))
}
