package lexer

import "sort"

// Position is a 1-based line/column pair. Column counts bytes, Go style.
type Position struct {
	Line   int
	Column int
}

// LineIndex maps byte offsets to line/column positions and back over one
// immutable source snapshot. It is the default position resolver for model
// extraction; editor layers may substitute their own.
type LineIndex struct {
	starts []int // byte offset of each line start, starts[0] == 0
	length int
}

// NewLineIndex builds the line table for src.
func NewLineIndex(src []byte) *LineIndex {
	starts := []int{0}
	for i, ch := range src {
		if ch == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &LineIndex{starts: starts, length: len(src)}
}

// PositionAt returns the position of a byte offset. Offsets outside
// [0, len(src)] are clamped.
func (ix *LineIndex) PositionAt(offset int) Position {
	if offset < 0 {
		offset = 0
	}
	if offset > ix.length {
		offset = ix.length
	}

	// First line whose start is past the offset, minus one
	line := sort.SearchInts(ix.starts, offset+1) - 1
	return Position{
		Line:   line + 1,
		Column: offset - ix.starts[line] + 1,
	}
}

// OffsetAt returns the byte offset of a position. Out-of-range lines and
// columns are clamped to the snapshot.
func (ix *LineIndex) OffsetAt(pos Position) int {
	if pos.Line < 1 {
		return 0
	}
	if pos.Line > len(ix.starts) {
		return ix.length
	}

	offset := ix.starts[pos.Line-1] + pos.Column - 1

	lineEnd := ix.length
	if pos.Line < len(ix.starts) {
		lineEnd = ix.starts[pos.Line] - 1 // before the newline
	}
	if offset > lineEnd {
		offset = lineEnd
	}
	if offset < 0 {
		offset = 0
	}
	return offset
}
