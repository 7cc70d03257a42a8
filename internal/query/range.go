// Package query implements the range-matching and cascading-filter
// engine. All functions are pure: they never mutate their inputs, never
// error on data quality, and are safe for concurrent use.
package query

import (
	"regexp"
	"strconv"

	"github.com/vpetrenko/specsheet/internal/model"
)

// numberPattern matches maximal runs of digits and decimal points.
// No sign and no exponent: ranges describe physical quantities and the
// historical data never carried negative bounds.
var numberPattern = regexp.MustCompile(`[0-9.]+`)

// ParseRange extracts an inclusive numeric interval from a free-text
// range description. Accepted forms include "0-100", "0 – 100" and
// "0 to 100": any text containing exactly two numeric substrings parses,
// with the first taken as Min and the second as Max in textual order.
// Any other count of numeric substrings, or a substring that is not a
// valid number (e.g., "1.2.3"), yields ok == false.
func ParseRange(text string) (model.Interval, bool) {
	nums := numberPattern.FindAllString(text, -1)
	if len(nums) != 2 {
		return model.Interval{}, false
	}

	lo, err := strconv.ParseFloat(nums[0], 64)
	if err != nil {
		return model.Interval{}, false
	}
	hi, err := strconv.ParseFloat(nums[1], 64)
	if err != nil {
		return model.Interval{}, false
	}

	return model.Interval{Min: lo, Max: hi}, true
}
