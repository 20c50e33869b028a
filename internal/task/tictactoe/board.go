package tictactoe

import (
	"fmt"
	"strings"
)

// Mark is a player symbol. X always moves first.
type Mark byte

const (
	Empty Mark = 0
	MarkX Mark = 'X'
	MarkO Mark = 'O'
)

func (m Mark) String() string {
	switch m {
	case MarkX:
		return "X"
	case MarkO:
		return "O"
	default:
		return "."
	}
}

var winLines = [8][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8}, // rows
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8}, // columns
	{0, 4, 8}, {2, 4, 6}, // diagonals
}

// Board holds game state. Positions are 1..9, numbered left-to-right,
// top-to-bottom, matching the numbering the model is prompted with.
type Board struct {
	cells [9]Mark
	turn  Mark
}

func NewBoard() *Board {
	return &Board{turn: MarkX}
}

// Turn is the mark to move next.
func (b *Board) Turn() Mark {
	if b == nil {
		return Empty
	}
	return b.turn
}

// Moves lists the free positions.
func (b *Board) Moves() []int {
	if b == nil {
		return nil
	}
	out := make([]int, 0, 9)
	for i, c := range b.cells {
		if c == Empty {
			out = append(out, i+1)
		}
	}
	return out
}

// Play places the current mark at pos and passes the turn.
func (b *Board) Play(pos int) error {
	if b == nil {
		return fmt.Errorf("tictactoe: nil board")
	}
	if pos < 1 || pos > 9 {
		return fmt.Errorf("tictactoe: position %d out of range", pos)
	}
	if b.cells[pos-1] != Empty {
		return fmt.Errorf("tictactoe: position %d already taken", pos)
	}
	b.cells[pos-1] = b.turn
	if b.turn == MarkX {
		b.turn = MarkO
	} else {
		b.turn = MarkX
	}
	return nil
}

// Winner returns the mark with three in a row, or Empty.
func (b *Board) Winner() Mark {
	if b == nil {
		return Empty
	}
	for _, line := range winLines {
		m := b.cells[line[0]]
		if m != Empty && m == b.cells[line[1]] && m == b.cells[line[2]] {
			return m
		}
	}
	return Empty
}

func (b *Board) Full() bool {
	if b == nil {
		return true
	}
	for _, c := range b.cells {
		if c == Empty {
			return false
		}
	}
	return true
}

func (b *Board) IsOver() bool {
	return b.Winner() != Empty || b.Full()
}

// Render produces the board text shown to the model, matching the few-shot
// examples in the preamble.
func (b *Board) Render() string {
	var sb strings.Builder
	sb.WriteString("Game Board:\n")
	for row := 0; row < 3; row++ {
		cells := make([]string, 3)
		for col := 0; col < 3; col++ {
			cells[col] = b.cells[3*row+col].String()
		}
		sb.WriteString(strings.Join(cells, " "))
		sb.WriteByte('\n')
	}
	fmt.Fprintf(&sb, "'%s' to play:", b.turn)
	return sb.String()
}

// BestMove returns an optimal move for the side to play via full-depth
// negamax. The game tree is tiny, so no pruning or depth bound is needed.
func (b *Board) BestMove() int {
	best := -1
	bestScore := -2
	for _, move := range b.Moves() {
		child := *b
		_ = child.Play(move)
		score := -negamax(&child)
		if score > bestScore {
			bestScore = score
			best = move
		}
	}
	return best
}

// negamax scores the position for the side to move: 1 winning, 0 drawn,
// -1 losing with perfect play.
func negamax(b *Board) int {
	if w := b.Winner(); w != Empty {
		// Only the side that just moved can have completed a line.
		return -1
	}
	if b.Full() {
		return 0
	}

	best := -2
	for _, move := range b.Moves() {
		child := *b
		_ = child.Play(move)
		if score := -negamax(&child); score > best {
			best = score
		}
	}
	return best
}
