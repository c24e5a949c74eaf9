package richtext

// Position converts a rune offset into a zero-based row and column.
func Position(text string, offset int) (row, col int) {
	r := []rune(text)
	offset = clamp(offset, 0, len(r))
	for _, c := range r[:offset] {
		if c == '\n' {
			row++
			col = 0
			continue
		}
		col++
	}
	return row, col
}

// Offset converts a row and column into a rune offset, clamping both to the text.
func Offset(text string, row, col int) int {
	r := []rune(text)
	offset := 0
	for row > 0 && offset < len(r) {
		if r[offset] == '\n' {
			row--
		}
		offset++
	}
	for col > 0 && offset < len(r) && r[offset] != '\n' {
		offset++
		col--
	}
	return offset
}
