package xlsx

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// dateKind classifies a number format.
type dateKind int

const (
	notDate dateKind = iota
	dateOnly
	timeOnly
	dateTime
)

// Built-in number formats that render as dates or times.
var builtinDateFormats = map[int]dateKind{
	14: dateOnly, 15: dateOnly, 16: dateOnly, 17: dateOnly,
	18: timeOnly, 19: timeOnly, 20: timeOnly, 21: timeOnly,
	22: dateTime,
	45: timeOnly, 46: timeOnly, 47: timeOnly,
}

var (
	epoch1900 = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)
	epoch1904 = time.Date(1904, time.January, 1, 0, 0, 0, 0, time.UTC)
)

// classifyFormat inspects a custom format code. Quoted literals, escaped
// characters and bracketed sections ([Red], [$-409]) are ignored. "m" alone is
// ambiguous between months and minutes and does not decide anything.
func classifyFormat(code string) dateKind {
	var b strings.Builder
	inQuote, inBracket := false, false
	for i := 0; i < len(code); i++ {
		c := code[i]
		switch {
		case inQuote:
			if c == '"' {
				inQuote = false
			}
		case inBracket:
			if c == ']' {
				inBracket = false
			}
		case c == '"':
			inQuote = true
		case c == '[':
			inBracket = true
		case c == '\\':
			i++
		default:
			b.WriteByte(c)
		}
	}
	plain := strings.ToLower(b.String())
	// Only the first section (positive numbers) matters.
	if i := strings.IndexByte(plain, ';'); i >= 0 {
		plain = plain[:i]
	}

	hasDate := strings.ContainsAny(plain, "yd")
	hasTime := strings.ContainsAny(plain, "hs")
	switch {
	case hasDate && hasTime:
		return dateTime
	case hasDate:
		return dateOnly
	case hasTime:
		return timeOnly
	default:
		return notDate
	}
}

// serialToTime converts a spreadsheet serial date. Serials below 61 in the
// 1900 system are off by one because of the fictitious 1900-02-29.
func serialToTime(serial float64, date1904 bool) time.Time {
	base := epoch1900
	if date1904 {
		base = epoch1904
	} else if serial < 61 {
		serial++
	}
	days := math.Floor(serial)
	secs := math.Round((serial - days) * 86400)
	return base.AddDate(0, 0, int(days)).Add(time.Duration(secs) * time.Second)
}

// formatDate renders raw as a date when kind says so. The second return is
// false when raw is not a number.
func formatDate(raw string, kind dateKind, date1904 bool) (string, bool) {
	serial, err := strconv.ParseFloat(raw, 64)
	if err != nil || serial < 0 {
		return "", false
	}
	t := serialToTime(serial, date1904)
	switch kind {
	case dateOnly:
		return t.Format("2006-01-02"), true
	case timeOnly:
		return t.Format("15:04:05"), true
	default:
		return t.Format("2006-01-02 15:04:05"), true
	}
}
