package game

import "sort"

const (
	cardCells    = 27
	cardRows     = 3
	cardCols     = 9
	rowNumbers   = 5
	// invalidRowMissing marks a row that does not carry exactly 5 numbers.
	// Treated as unreachable so a malformed row can never complete.
	invalidRowMissing = 99
)

// RowStatus describes one card row against the drawn set.
type RowStatus struct {
	Total   int // non-empty cells in the row
	Drawn   int // of those, how many are drawn
	Missing int // 5 - Drawn when Total == 5, else 99
}

// Complete reports whether the row is fully drawn.
func (r RowStatus) Complete() bool {
	return r.Missing == 0
}

// LineStatus evaluates each of the three rows of a flat 27-cell card
// against the drawn numbers. Cell value 0 means empty.
func LineStatus(cells []int, drawn []int) [cardRows]RowStatus {
	drawnSet := make(map[int]bool, len(drawn))
	for _, n := range drawn {
		drawnSet[n] = true
	}

	var rows [cardRows]RowStatus
	for row := 0; row < cardRows; row++ {
		var st RowStatus
		for col := 0; col < cardCols; col++ {
			idx := row*cardCols + col
			if idx >= len(cells) {
				break
			}
			n := cells[idx]
			if n <= 0 {
				continue
			}
			st.Total++
			if drawnSet[n] {
				st.Drawn++
			}
		}
		if st.Total == rowNumbers {
			st.Missing = rowNumbers - st.Drawn
		} else {
			st.Missing = invalidRowMissing
		}
		rows[row] = st
	}
	return rows
}

// completedRows returns the indexes of fully drawn rows.
func completedRows(rows [cardRows]RowStatus) []int {
	var out []int
	for i, r := range rows {
		if r.Complete() {
			out = append(out, i)
		}
	}
	return out
}

// IsWinner reports whether a card wins under the given variant.
func IsWinner(cells []int, drawn []int, variant Variant) bool {
	n := len(completedRows(LineStatus(cells, drawn)))
	switch variant {
	case OneLine:
		return n >= 1
	case TwoLines:
		return n >= 2
	case FullCard:
		return n == cardRows
	}
	return false
}

// ProgressMetric is the "numbers remaining to win" ranking heuristic.
// Lower is closer; 0 means the card is already winning. It is display-only
// and never used to declare a winner.
func ProgressMetric(cells []int, drawn []int, variant Variant) int {
	rows := LineStatus(cells, drawn)

	switch variant {
	case OneLine:
		minMissing := rows[0].Missing
		for _, r := range rows[1:] {
			if r.Missing < minMissing {
				minMissing = r.Missing
			}
		}
		return minMissing

	case TwoLines:
		completed := 0
		for _, r := range rows {
			if r.Complete() {
				completed++
			}
		}
		if completed >= 2 {
			return 0
		}
		if completed == 1 {
			minMissing := invalidRowMissing
			for _, r := range rows {
				if r.Missing > 0 && r.Missing < minMissing {
					minMissing = r.Missing
				}
			}
			return minMissing
		}
		// No row complete: sum of the two smallest.
		missing := []int{rows[0].Missing, rows[1].Missing, rows[2].Missing}
		sort.Ints(missing)
		return missing[0] + missing[1]

	case FullCard:
		total := 0
		for _, r := range rows {
			total += r.Missing
		}
		return total
	}
	return invalidRowMissing
}

// WinnerRecord identifies one winning card. A player holding several
// winning cards produces several records.
type WinnerRecord struct {
	CardID        string `json:"cardId"`
	UserID        string `json:"userId"`
	CompletedRows []int  `json:"completedRows"`
}

// CardView is the minimal card shape the evaluator needs.
type CardView struct {
	ID     string
	UserID string
	Cells  []int
}

// DetectWinners evaluates every card and returns a record per winning card.
func DetectWinners(cards []CardView, drawn []int, variant Variant) []WinnerRecord {
	var winners []WinnerRecord
	for _, c := range cards {
		rows := LineStatus(c.Cells, drawn)
		done := completedRows(rows)
		won := false
		switch variant {
		case OneLine:
			won = len(done) >= 1
		case TwoLines:
			won = len(done) >= 2
		case FullCard:
			won = len(done) == cardRows
		}
		if won {
			winners = append(winners, WinnerRecord{
				CardID:        c.ID,
				UserID:        c.UserID,
				CompletedRows: done,
			})
		}
	}
	return winners
}
