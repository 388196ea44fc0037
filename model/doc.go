// Package model defines the values that flow through a conversion.
//
// A document is an ordered list of [Unit] values (pages, slides or worksheets)
// plus its [Metadata]. Extracting a unit yields a [Result] tagged with the
// [Strategy] that produced its text, and a conversion accumulates those tags
// in a [Tally].
package model
