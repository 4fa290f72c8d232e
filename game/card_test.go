package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validCard() []int {
	return cardWithRows(
		[]int{1, 12, 25, 37, 48},
		[]int{2, 13, 26, 38, 49},
		[]int{3, 14, 27, 39, 41},
	)
}

// cardWithRows in evaluator_test lays rows out left to right, so the
// column ranges above line up with the loto layout (col 1: 1-9, col 2:
// 10-19, ...).

func TestValidateCells(t *testing.T) {
	assert.NoError(t, ValidateCells(validCard()))
}

func TestValidateCellsRejects(t *testing.T) {
	t.Run("wrong length", func(t *testing.T) {
		assert.Error(t, ValidateCells(make([]int, 26)))
	})

	t.Run("row with wrong number count", func(t *testing.T) {
		cells := validCard()
		cells[4] = 0 // row 1 drops to 4 numbers
		assert.Error(t, ValidateCells(cells))
	})

	t.Run("value out of range", func(t *testing.T) {
		cells := validCard()
		cells[0] = 91
		assert.Error(t, ValidateCells(cells))
	})

	t.Run("value outside its column", func(t *testing.T) {
		cells := validCard()
		cells[0] = 50 // column 1 only holds 1-9
		assert.Error(t, ValidateCells(cells))
	})

	t.Run("duplicate number", func(t *testing.T) {
		cells := validCard()
		cells[9] = 1 // already present at row 1 col 1
		assert.Error(t, ValidateCells(cells))
	})
}
