package sctview

import (
	"fmt"
	"strconv"
	"strings"
)

// FloatArrayFlags collects a float flag that may be given several times.
// The first Set call replaces any default values.
type FloatArrayFlags struct {
	Array   []float64
	beenSet bool
}

func (f *FloatArrayFlags) Set(valueStr string) error {
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return err
	}

	if !f.beenSet {
		f.beenSet = true
		f.Array = nil
	}

	f.Array = append(f.Array, value)
	return nil
}

func (f *FloatArrayFlags) String() string {
	return fmt.Sprint(f.Array)
}

// RangeFlag parses "lo,hi" axis limits. Set reports whether the flag was
// given on the command line.
type RangeFlag struct {
	Min, Max float64
	IsSet    bool
}

func (f *RangeFlag) Set(valueStr string) error {
	parts := strings.Split(valueStr, ",")
	if len(parts) != 2 {
		return fmt.Errorf("range %q: expected lo,hi", valueStr)
	}

	lo, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return err
	}
	hi, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return err
	}
	if hi <= lo {
		return fmt.Errorf("range %q: upper limit must exceed lower limit", valueStr)
	}

	f.Min, f.Max, f.IsSet = lo, hi, true
	return nil
}

func (f *RangeFlag) String() string {
	if !f.IsSet {
		return ""
	}
	return fmt.Sprintf("%g,%g", f.Min, f.Max)
}
