package bot

// CenterOutOrder visits the center column first and then alternates
// outwards, left before right: 3 2 4 1 5 0 6 for seven columns.
func CenterOutOrder(columns int) []int {
	order := make([]int, columns)
	for i := 0; i < columns; i++ {
		var offset int
		if i%2 == 0 {
			offset = i / 2
		} else {
			offset = columns - (i+1)/2
		}
		order[i] = (columns/2 + offset) % columns
	}
	return order
}

// NaturalOrder visits columns left to right.
func NaturalOrder(columns int) []int {
	order := make([]int, columns)
	for i := range order {
		order[i] = i
	}
	return order
}
