package game

// Variant is the win condition for a party. The wire values match what
// clients have always sent.
type Variant string

const (
	OneLine  Variant = "1Ligne"
	TwoLines Variant = "2Lignes"
	FullCard Variant = "CartonPlein"
)

// Valid reports whether v is a known variant.
func (v Variant) Valid() bool {
	switch v {
	case OneLine, TwoLines, FullCard:
		return true
	}
	return false
}

// Next returns the variant the following party starts with when a round
// ends: OneLine -> TwoLines -> FullCard -> OneLine.
func (v Variant) Next() Variant {
	switch v {
	case OneLine:
		return TwoLines
	case TwoLines:
		return FullCard
	default:
		return OneLine
	}
}

// ToggleNumber applies the draw-toggle rule to an ordered number list:
// a number not in the list is appended; a number already present is removed
// without reordering the remainder. Returns the new list and whether the
// number was added.
func ToggleNumber(numbers []int, n int) ([]int, bool) {
	for i, v := range numbers {
		if v == n {
			out := make([]int, 0, len(numbers)-1)
			out = append(out, numbers[:i]...)
			out = append(out, numbers[i+1:]...)
			return out, false
		}
	}
	out := make([]int, 0, len(numbers)+1)
	out = append(out, numbers...)
	out = append(out, n)
	return out, true
}

// CurrentNumber is the last drawn number, or 0 when nothing is drawn.
func CurrentNumber(numbers []int) int {
	if len(numbers) == 0 {
		return 0
	}
	return numbers[len(numbers)-1]
}
