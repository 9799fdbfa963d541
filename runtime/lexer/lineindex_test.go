package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPositionAt(t *testing.T) {
	src := []byte("(define\n  (domain d)\n)")
	ix := NewLineIndex(src)

	tests := []struct {
		name   string
		offset int
		want   Position
	}{
		{"start of file", 0, Position{Line: 1, Column: 1}},
		{"mid first line", 3, Position{Line: 1, Column: 4}},
		{"newline byte", 7, Position{Line: 1, Column: 8}},
		{"start of second line", 8, Position{Line: 2, Column: 1}},
		{"mid second line", 12, Position{Line: 2, Column: 5}},
		{"start of third line", 21, Position{Line: 3, Column: 1}},
		{"end of file", 22, Position{Line: 3, Column: 2}},
		{"negative clamps to start", -5, Position{Line: 1, Column: 1}},
		{"past end clamps to end", 999, Position{Line: 3, Column: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ix.PositionAt(tt.offset))
		})
	}
}

func TestOffsetAt(t *testing.T) {
	src := []byte("abc\ndefgh\n")
	ix := NewLineIndex(src)

	tests := []struct {
		name string
		pos  Position
		want int
	}{
		{"first line first column", Position{Line: 1, Column: 1}, 0},
		{"second line", Position{Line: 2, Column: 3}, 6},
		{"column past line end clamps", Position{Line: 1, Column: 99}, 3},
		{"line before start clamps", Position{Line: 0, Column: 5}, 0},
		{"line past end clamps", Position{Line: 99, Column: 1}, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ix.OffsetAt(tt.pos))
		})
	}
}

// PositionAt and OffsetAt are inverses for every valid offset.
func TestPositionOffsetRoundTrip(t *testing.T) {
	src := []byte("(:types a b - c)\n(:constants\n  x - a)\n")
	ix := NewLineIndex(src)

	for offset := 0; offset <= len(src); offset++ {
		assert.Equal(t, offset, ix.OffsetAt(ix.PositionAt(offset)), "offset %d", offset)
	}
}
