package api

import (
	"encoding/json"
	"fmt"
	"math"
)

// maxExactFloat is the largest integer a float64 holds without rounding.
const maxExactFloat = 1 << 53

// WholeNumber is an integer field that also accepts whole-valued JSON
// numbers such as 3.0. Fractional values are rejected.
type WholeNumber int

func (n *WholeNumber) UnmarshalJSON(data []byte) error {
	var i int64
	if err := json.Unmarshal(data, &i); err == nil {
		*n = WholeNumber(i)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("expected an integer, got %s", data)
	}
	if f != math.Trunc(f) || math.Abs(f) > maxExactFloat {
		return fmt.Errorf("expected a whole number, got %s", data)
	}
	*n = WholeNumber(f)
	return nil
}

func (n *WholeNumber) intPtr() *int {
	if n == nil {
		return nil
	}
	v := int(*n)
	return &v
}
