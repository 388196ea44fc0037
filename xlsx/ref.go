package xlsx

import (
	"fmt"
	"strconv"
	"strings"
)

// Worksheet limits (XFD1048576).
const (
	maxColumns = 16384
	maxRows    = 1048576
)

// ParseCellRef parses an A1-style reference such as "B3" or "$AA$100" into
// 0-indexed column and row.
func ParseCellRef(ref string) (col, row int, err error) {
	plain := strings.ReplaceAll(ref, "$", "")
	digits := strings.IndexFunc(plain, func(r rune) bool { return r >= '0' && r <= '9' })
	if digits <= 0 {
		return 0, 0, fmt.Errorf("invalid cell reference %q", ref)
	}

	col = ColumnToIndex(plain[:digits])
	n, err := strconv.Atoi(plain[digits:])
	if col < 0 || err != nil || n < 1 || n > maxRows {
		return 0, 0, fmt.Errorf("invalid cell reference %q", ref)
	}
	return col, n - 1, nil
}

// ColumnToIndex converts column letters to a 0-indexed column (A=0, Z=25,
// AA=26). It returns -1 for anything that is not a column name.
func ColumnToIndex(letters string) int {
	if letters == "" {
		return -1
	}
	n := 0
	for _, c := range strings.ToUpper(letters) {
		if c < 'A' || c > 'Z' {
			return -1
		}
		n = n*26 + int(c-'A') + 1
		if n > maxColumns {
			return -1
		}
	}
	return n - 1
}

// ParseRangeRef parses a range such as "A1:D10" into its corners, top-left
// first. A single reference is a one-cell range.
func ParseRangeRef(ref string) (startCol, startRow, endCol, endRow int, err error) {
	from, to, ok := strings.Cut(ref, ":")
	if !ok {
		to = from
	}
	if startCol, startRow, err = ParseCellRef(from); err != nil {
		return 0, 0, 0, 0, fmt.Errorf("range %q: %w", ref, err)
	}
	if endCol, endRow, err = ParseCellRef(to); err != nil {
		return 0, 0, 0, 0, fmt.Errorf("range %q: %w", ref, err)
	}
	if endCol < startCol {
		startCol, endCol = endCol, startCol
	}
	if endRow < startRow {
		startRow, endRow = endRow, startRow
	}
	return startCol, startRow, endCol, endRow, nil
}
