package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNumberedUnits(t *testing.T) {
	units := NumberedUnits("Page", 3)

	assert.Equal(t, []Unit{
		{Ordinal: 1, Label: "Page 1"},
		{Ordinal: 2, Label: "Page 2"},
		{Ordinal: 3, Label: "Page 3"},
	}, units)
	assert.Equal(t, 2, units[2].Index())
}

func TestNamedUnits(t *testing.T) {
	units := NamedUnits("Sheet", []string{"Summary", "", "Data"})

	assert.Equal(t, []Unit{
		{Ordinal: 1, Label: "Summary"},
		{Ordinal: 2, Label: "Sheet 2"},
		{Ordinal: 3, Label: "Data"},
	}, units)
}

func TestTally(t *testing.T) {
	tally := Tally{}
	tally.Add(Direct)
	tally.Add(Direct)
	tally.Add(None)

	assert.Equal(t, 3, tally.Total())
	assert.Equal(t, "direct: 2, recognized: 0, table: 0, none: 1", tally.String())
}

func TestFailed(t *testing.T) {
	boom := errors.New("boom")
	r := Failed(boom)

	assert.Equal(t, None, r.Strategy)
	assert.Empty(t, r.Text)
	assert.ErrorIs(t, r.Err, boom)
}
