// Package agegroup classifies swimmer ages into named competition buckets.
package agegroup

import "fmt"

// Youth is the bucket for swimmers under 18.
const Youth = "Youth"

// Masters is the open-ended bucket for swimmers 70 and older.
const Masters = "70+"

// Bucket boundaries for five-year adult groups. The first adult band is
// wider (18-24); everything from 25 up follows a strict five-year grid.
const (
	adultMin     = 18
	firstBandMax = 24
	gridMin      = 25
	gridMax      = 69
	bandWidth    = 5
)

// Classify maps an age to its competition age group. It is pure and total
// over non-negative integers; callers validate negative ages upstream.
func Classify(age int) string {
	switch {
	case age < adultMin:
		return Youth
	case age <= firstBandMax:
		return fmt.Sprintf("%d-%d", adultMin, firstBandMax)
	case age > gridMax:
		return Masters
	default:
		lo := gridMin + (age-gridMin)/bandWidth*bandWidth
		return fmt.Sprintf("%d-%d", lo, lo+bandWidth-1)
	}
}
