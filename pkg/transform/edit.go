// Package transform describes document edits: flat byte edits for source
// write-back, and position-mapped steps and transactions over mdast trees.
package transform

// Edit replaces the bytes [Start, End) of a source file with Text.
type Edit struct {
	// Start is the byte index where the edit begins (inclusive).
	Start int

	// End is the byte index where the edit ends (exclusive).
	End int

	// Text is the replacement text.
	Text string
}

// EditBuilder accumulates edits for one file.
type EditBuilder struct {
	Edits []Edit
}

// NewEditBuilder creates a new EditBuilder.
func NewEditBuilder() *EditBuilder {
	return &EditBuilder{
		Edits: make([]Edit, 0),
	}
}

// Replace adds an edit that replaces bytes [start, end) with text.
func (b *EditBuilder) Replace(start, end int, text string) {
	b.Edits = append(b.Edits, Edit{Start: start, End: end, Text: text})
}

// Insert adds an edit that inserts text at offset.
func (b *EditBuilder) Insert(offset int, text string) {
	b.Replace(offset, offset, text)
}

// Len returns the number of accumulated edits.
func (b *EditBuilder) Len() int {
	return len(b.Edits)
}
