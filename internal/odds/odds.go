package odds

import (
	"encoding/json"
	"strconv"
)

// Placeholder is shown for undefined odds.
const Placeholder = "-"

// MinOdds is the floor applied to defined odds.
const MinOdds = 1.0

// Odds is either a defined payout multiplier or undefined.
type Odds struct {
	value   float64
	defined bool
}

// Defined returns odds with the given value.
func Defined(v float64) Odds {
	return Odds{value: v, defined: true}
}

// Undefined returns odds for a group nobody mentioned.
func Undefined() Odds {
	return Odds{}
}

// Value returns the multiplier and whether it is defined.
func (o Odds) Value() (float64, bool) {
	return o.value, o.defined
}

// IsDefined reports whether the odds have a value.
func (o Odds) IsDefined() bool {
	return o.defined
}

// String formats defined odds with two decimals and undefined odds as
// Placeholder.
func (o Odds) String() string {
	if !o.defined {
		return Placeholder
	}
	return strconv.FormatFloat(o.value, 'f', 2, 64)
}

// MarshalJSON encodes defined odds as a number and undefined odds as null.
func (o Odds) MarshalJSON() ([]byte, error) {
	if !o.defined {
		return []byte("null"), nil
	}
	return json.Marshal(o.value)
}

// compare orders a before b when it is the shorter price. Undefined odds
// sort after every defined value.
func compare(a, b Odds) int {
	switch {
	case a.defined && !b.defined:
		return -1
	case !a.defined && b.defined:
		return 1
	case !a.defined:
		return 0
	case a.value < b.value:
		return -1
	case a.value > b.value:
		return 1
	default:
		return 0
	}
}
