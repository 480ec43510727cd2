package highlight

import (
	"slices"
	"strconv"

	"github.com/yaklabco/gomdhl/pkg/mdast"
)

// BlockPos is the key of a highlighted block: either an offset in the
// document or the whole document.
type BlockPos struct {
	offset int
	whole  bool
}

// WholeDocument is the position of the document root when it is itself
// highlighted.
var WholeDocument = BlockPos{whole: true}

// At returns the position of a block starting at offset.
func At(offset int) BlockPos {
	return BlockPos{offset: offset}
}

// Offset returns the block offset. ok is false for WholeDocument.
func (p BlockPos) Offset() (offset int, ok bool) {
	return p.offset, !p.whole
}

// IsWholeDocument reports whether p is WholeDocument.
func (p BlockPos) IsWholeDocument() bool {
	return p.whole
}

// anchor is the position the renderer starts from; content begins one
// position later. The whole document renders in text offsets, which
// Compute then maps through a TextMap.
func (p BlockPos) anchor() int {
	if p.whole {
		return -1
	}
	return p.offset
}

func (p BlockPos) String() string {
	if p.whole {
		return "document"
	}
	return strconv.Itoa(p.offset)
}

func compareBlockPos(a, b BlockPos) int {
	return a.anchor() - b.anchor()
}

// Block is a node eligible for highlighting and its position.
type Block struct {
	Node *mdast.Node
	Pos  BlockPos
}

// Locate returns the blocks of doc whose kind is listed in nodeTypes, in
// document order. Matched blocks are not searched for nested blocks. When
// nodeTypes lists the document kind itself, the whole document is the only
// block.
func Locate(doc *mdast.Node, nodeTypes []string) []Block {
	if doc == nil || len(nodeTypes) == 0 {
		return nil
	}
	if slices.Contains(nodeTypes, doc.Kind.String()) {
		return []Block{{Node: doc, Pos: WholeDocument}}
	}

	var blocks []Block
	doc.Descendants(func(n *mdast.Node, pos int) bool {
		if n.IsBlock() && slices.Contains(nodeTypes, n.Kind.String()) {
			blocks = append(blocks, Block{Node: n, Pos: At(pos)})
			return false
		}
		return true
	})
	return blocks
}
