package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsBlock(t *testing.T) {
	t.Parallel()

	assert.True(t, IsBlock(&Paragraph{}))
	assert.True(t, IsBlock(&OtherBlock{}))
	assert.False(t, IsBlock(&Text{Value: "x"}))
	assert.False(t, IsBlock(&OtherInline{}))
}

func TestChildrenOf(t *testing.T) {
	t.Parallel()

	text := &Text{Value: "a"}
	para := &Paragraph{Container: Of(text)}

	assert.Equal(t, []Node{text}, ChildrenOf(para))
	assert.Nil(t, ChildrenOf(text))
	assert.Nil(t, ChildrenOf(&CodeBlock{Literal: "x"}))
}

func TestWalk(t *testing.T) {
	t.Parallel()

	root := &Document{Container: Of(
		&Heading{Level: 1, Container: Of(&Text{Value: "T"})},
		&BlockQuote{Container: Of(
			&Paragraph{Container: Of(&Strong{Container: Of(&Text{Value: "b"})})},
		)},
	)}

	var texts []string
	Walk(root, func(n Node) bool {
		if tx, ok := n.(*Text); ok {
			texts = append(texts, tx.Value)
		}
		return true
	})
	assert.Equal(t, []string{"T", "b"}, texts)

	var visited int
	Walk(root, func(n Node) bool {
		visited++
		_, isQuote := n.(*BlockQuote)
		return !isQuote
	})
	assert.Equal(t, 4, visited, "children of the skipped quote must not be visited")
}

func TestAlertKind(t *testing.T) {
	t.Parallel()

	tests := []struct {
		marker string
		kind   AlertKind
		title  string
	}{
		{"NOTE", AlertNote, "Note"},
		{"tip", AlertTip, "Tip"},
		{"IMPORTANT", AlertImportant, "Important"},
		{"Warning", AlertWarning, "Warning"},
		{"CAUTION", AlertCaution, "Caution"},
	}

	for _, tt := range tests {
		t.Run(tt.marker, func(t *testing.T) {
			t.Parallel()

			kind, ok := ParseAlertKind(tt.marker)
			assert.True(t, ok)
			assert.Equal(t, tt.kind, kind)
			assert.Equal(t, tt.title, kind.DefaultTitle())
		})
	}

	_, ok := ParseAlertKind("DANGER")
	assert.False(t, ok)
}
