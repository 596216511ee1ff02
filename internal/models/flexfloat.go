package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// FlexFloat accepts a JSON number or a numeric string. Deal forms submit
// sizes and revenues as text, so "1200", 1200 and "" (zero) all decode.
type FlexFloat float64

func (f *FlexFloat) UnmarshalJSON(b []byte) error {
	var n float64
	if err := json.Unmarshal(b, &n); err == nil {
		*f = FlexFloat(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("flexfloat: %s is neither number nor string", string(b))
	}
	s = strings.TrimSpace(s)
	if s == "" {
		*f = 0
		return nil
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("flexfloat: %q is not numeric", s)
	}
	*f = FlexFloat(n)
	return nil
}

func (f FlexFloat) Float64() float64 { return float64(f) }
