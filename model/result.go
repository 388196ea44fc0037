package model

import (
	"fmt"
	"strings"
)

// Strategy records how the text of a unit was obtained.
type Strategy string

const (
	// Direct means the text came from the content source's own text layer.
	Direct Strategy = "direct"
	// Recognized means the unit was rendered and run through text recognition.
	Recognized Strategy = "recognized"
	// Table means the unit was assembled as a Markdown table.
	Table Strategy = "table"
	// None means the unit produced no text.
	None Strategy = "none"
)

// Strategies lists every strategy in reporting order.
var Strategies = []Strategy{Direct, Recognized, Table, None}

// Result is the outcome of extracting one unit.
type Result struct {
	Text     string
	Strategy Strategy
	// Err is the failure that was contained while extracting the unit. A
	// result with a non-nil Err always has Strategy None and empty Text.
	Err error
}

// Failed returns the degraded result for a unit whose extraction failed.
func Failed(err error) Result {
	return Result{Strategy: None, Err: err}
}

// Tally counts units per strategy.
type Tally map[Strategy]int

// Add increments the count for s.
func (t Tally) Add(s Strategy) {
	t[s]++
}

// Total returns the number of units counted.
func (t Tally) Total() int {
	n := 0
	for _, c := range t {
		n += c
	}
	return n
}

// String renders the counts in a stable order, e.g.
// "direct: 2, recognized: 1, table: 0, none: 0".
func (t Tally) String() string {
	parts := make([]string, 0, len(Strategies))
	for _, s := range Strategies {
		parts = append(parts, fmt.Sprintf("%s: %d", s, t[s]))
	}
	return strings.Join(parts, ", ")
}
