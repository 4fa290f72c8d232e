package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cardWithRows builds a flat 27-cell card from three rows of numbers laid
// out left to right. Remaining cells stay empty.
func cardWithRows(rows ...[]int) []int {
	cells := make([]int, 27)
	for i, row := range rows {
		for j, n := range row {
			cells[i*9+j] = n
		}
	}
	return cells
}

func TestLineStatus(t *testing.T) {
	cells := cardWithRows(
		[]int{1, 2, 3, 4, 5},
		[]int{10, 11, 12, 13, 14},
		[]int{20, 21, 22}, // malformed: only 3 numbers
	)

	rows := LineStatus(cells, []int{1, 2, 10, 20, 21, 22})

	assert.Equal(t, RowStatus{Total: 5, Drawn: 2, Missing: 3}, rows[0])
	assert.Equal(t, RowStatus{Total: 5, Drawn: 1, Missing: 4}, rows[1])
	assert.Equal(t, 99, rows[2].Missing, "row without exactly 5 numbers is unreachable")
	assert.False(t, rows[2].Complete())
}

func TestIsWinnerOneLineScenario(t *testing.T) {
	// Room "123456", OneLine, row 1 = [1,2,3,4,5].
	cells := cardWithRows([]int{1, 2, 3, 4, 5})

	drawn := []int{1, 2, 3, 4}
	assert.False(t, IsWinner(cells, drawn, OneLine))
	assert.Equal(t, 1, ProgressMetric(cells, drawn, OneLine))

	drawn = append(drawn, 5)
	assert.True(t, IsWinner(cells, drawn, OneLine))
	assert.Equal(t, 0, ProgressMetric(cells, drawn, OneLine))
}

func TestIsWinnerVariants(t *testing.T) {
	cells := cardWithRows(
		[]int{1, 2, 3, 4, 5},
		[]int{10, 11, 12, 13, 14},
		[]int{20, 21, 22, 23, 24},
	)

	oneRow := []int{1, 2, 3, 4, 5}
	twoRows := append(append([]int{}, oneRow...), 10, 11, 12, 13, 14)
	threeRows := append(append([]int{}, twoRows...), 20, 21, 22, 23, 24)

	assert.True(t, IsWinner(cells, oneRow, OneLine))
	assert.False(t, IsWinner(cells, oneRow, TwoLines))
	assert.False(t, IsWinner(cells, oneRow, FullCard))

	assert.True(t, IsWinner(cells, twoRows, TwoLines))
	assert.False(t, IsWinner(cells, twoRows, FullCard))

	assert.True(t, IsWinner(cells, threeRows, FullCard))
}

func TestProgressMetricTwoLines(t *testing.T) {
	// Row missing counts 1, 2 and 4, no row complete: the two best rows
	// sum to 3.
	cells := cardWithRows(
		[]int{1, 2, 3, 4, 5},
		[]int{10, 11, 12, 13, 14},
		[]int{20, 21, 22, 23, 24},
	)
	drawn := []int{1, 2, 3, 4, 10, 11, 12, 20}

	assert.Equal(t, 3, ProgressMetric(cells, drawn, TwoLines))

	// One row complete: minimum missing among the others.
	drawn = append(drawn, 5)
	assert.Equal(t, 2, ProgressMetric(cells, drawn, TwoLines))

	// Two rows complete: winning.
	drawn = append(drawn, 13, 14)
	assert.Equal(t, 0, ProgressMetric(cells, drawn, TwoLines))
	assert.True(t, IsWinner(cells, drawn, TwoLines))
}

func TestProgressMetricFullCard(t *testing.T) {
	cells := cardWithRows(
		[]int{1, 2, 3, 4, 5},
		[]int{10, 11, 12, 13, 14},
		[]int{20, 21, 22, 23, 24},
	)
	drawn := []int{1, 2, 3, 4, 10, 11, 12, 20}
	// Missing 1 + 2 + 4.
	assert.Equal(t, 7, ProgressMetric(cells, drawn, FullCard))
}

func TestProgressZeroIffWinner(t *testing.T) {
	cells := cardWithRows(
		[]int{1, 2, 3, 4, 5},
		[]int{10, 11, 12, 13, 14},
		[]int{20, 21, 22, 23, 24},
	)
	all := []int{1, 2, 3, 4, 5, 10, 11, 12, 13, 14, 20, 21, 22, 23, 24}

	for _, variant := range []Variant{OneLine, TwoLines, FullCard} {
		for cut := 0; cut <= len(all); cut++ {
			drawn := all[:cut]
			winner := IsWinner(cells, drawn, variant)
			metric := ProgressMetric(cells, drawn, variant)
			assert.Equal(t, winner, metric == 0,
				"variant %s with %d drawn: winner=%v metric=%d", variant, cut, winner, metric)
		}
	}
}

func TestWinMonotonicUnderGrowth(t *testing.T) {
	cells := cardWithRows([]int{1, 2, 3, 4, 5})
	drawn := []int{1, 2, 3, 4, 5}
	require.True(t, IsWinner(cells, drawn, OneLine))

	// Supersets keep winning.
	for n := 6; n <= 90; n++ {
		drawn = append(drawn, n)
		assert.True(t, IsWinner(cells, drawn, OneLine))
	}
}

func TestRemovingNumberCanUnwin(t *testing.T) {
	cells := cardWithRows([]int{1, 2, 3, 4, 5})
	drawn := []int{1, 2, 3, 4, 5}
	require.True(t, IsWinner(cells, drawn, OneLine))

	after, added := ToggleNumber(drawn, 3)
	require.False(t, added)
	assert.False(t, IsWinner(cells, after, OneLine))
}

func TestDetectWinners(t *testing.T) {
	winning := cardWithRows([]int{1, 2, 3, 4, 5})
	losing := cardWithRows([]int{80, 81, 82, 83, 84})
	alsoWinning := cardWithRows([]int{1, 2, 3, 4, 5}, []int{10, 11, 12, 13, 14})

	cards := []CardView{
		{ID: "c1", UserID: "alice", Cells: winning},
		{ID: "c2", UserID: "bob", Cells: losing},
		{ID: "c3", UserID: "alice", Cells: alsoWinning},
	}

	winners := DetectWinners(cards, []int{1, 2, 3, 4, 5}, OneLine)
	require.Len(t, winners, 2, "one record per card, not per player")
	assert.Equal(t, "c1", winners[0].CardID)
	assert.Equal(t, []int{0}, winners[0].CompletedRows)
	assert.Equal(t, "c3", winners[1].CardID)

	assert.Empty(t, DetectWinners(cards, []int{1, 2}, OneLine))
}
