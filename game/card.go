package game

import "fmt"

// ValidateCells checks the structural invariants of a loto card before it
// is stored: 27 cells, exactly 5 numbers per row, values 1..90 each in
// their column's range, no duplicates.
func ValidateCells(cells []int) error {
	if len(cells) != cardCells {
		return fmt.Errorf("un carton doit contenir %d cases, reçu %d", cardCells, len(cells))
	}

	seen := make(map[int]bool)
	for row := 0; row < cardRows; row++ {
		count := 0
		for col := 0; col < cardCols; col++ {
			n := cells[row*cardCols+col]
			if n == 0 {
				continue
			}
			if n < 1 || n > 90 {
				return fmt.Errorf("numéro %d hors limites (1-90)", n)
			}
			if !inColumnRange(n, col) {
				return fmt.Errorf("numéro %d invalide pour la colonne %d", n, col+1)
			}
			if seen[n] {
				return fmt.Errorf("numéro %d en double", n)
			}
			seen[n] = true
			count++
		}
		if count != rowNumbers {
			return fmt.Errorf("la ligne %d doit contenir %d numéros, reçu %d", row+1, rowNumbers, count)
		}
	}
	return nil
}

// inColumnRange applies the loto column layout: column 1 holds 1-9,
// columns 2-8 hold their decade, column 9 holds 80-90.
func inColumnRange(n, col int) bool {
	switch col {
	case 0:
		return n >= 1 && n <= 9
	case cardCols - 1:
		return n >= 80 && n <= 90
	default:
		return n >= col*10 && n <= col*10+9
	}
}
