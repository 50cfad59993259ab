package sctview

import (
	"math"
	"strconv"

	"gonum.org/v1/plot"
)

var (
	_ plot.Ticker     = PreciseTicks{}
	_ plot.Ticker     = LogTicks{}
	_ plot.Normalizer = LogScale{}
)

// PreciseTicks places major ticks on round multiples of the axis span and
// fills the gaps with unlabeled minor ticks.
type PreciseTicks struct {
	NSuggestedTicks int
}

func (t PreciseTicks) Ticks(min, max float64) []plot.Tick {
	if t.NSuggestedTicks == 0 {
		t.NSuggestedTicks = 4
	}

	if max <= min {
		panic("illegal range")
	}

	majorMult, majorDelta := t.majorStep(min, max)

	var labels []float64
	val := math.Floor(min/majorDelta) * majorDelta
	for val <= max {
		if val >= min {
			labels = append(labels, val)
		}
		val += majorDelta
	}
	// Labels are multiples of majorDelta, so its magnitude alone fixes the
	// number of decimals, whatever the sign of the range.
	prec := 1 - int(math.Floor(math.Log10(majorDelta)))

	ticks := make([]plot.Tick, 0, len(labels))
	for _, v := range labels {
		vRounded := round(v, prec)
		ticks = append(ticks, plot.Tick{Value: vRounded, Label: formatFloatTick(vRounded, -1)})
	}
	return append(ticks, minorTicks(ticks, min, max, minorStep(majorMult, majorDelta))...)
}

func (t PreciseTicks) majorStep(min, max float64) (int, float64) {
	tens := math.Pow10(int(math.Floor(math.Log10(max - min))))
	n := (max - min) / tens
	for n < float64(t.NSuggestedTicks)-1 {
		tens /= 10
		n = (max - min) / tens
	}

	mult := int(n / float64(t.NSuggestedTicks-1))
	switch mult {
	case 7:
		mult = 6
	case 9:
		mult = 8
	}
	return mult, float64(mult) * tens
}

func minorStep(majorMult int, majorDelta float64) float64 {
	switch majorMult {
	case 3, 6:
		return majorDelta / 3
	case 5:
		return majorDelta / 5
	}
	return majorDelta / 2
}

func minorTicks(major []plot.Tick, min, max, delta float64) []plot.Tick {
	var ticks []plot.Tick
	for val := math.Floor(min/delta) * delta; val <= max; val += delta {
		if val < min || hasTick(major, val) {
			continue
		}
		ticks = append(ticks, plot.Tick{Value: val})
	}
	return ticks
}

func hasTick(ticks []plot.Tick, v float64) bool {
	for _, t := range ticks {
		if t.Value == v {
			return true
		}
	}
	return false
}

// LogTicks labels every power of ten in the range and adds unlabeled ticks
// at the integer multiples in between.
type LogTicks struct{}

func (LogTicks) Ticks(min, max float64) []plot.Tick {
	if min <= 0 {
		min = logFloor
	}
	if max <= min {
		panic("illegal range")
	}

	var ticks []plot.Tick
	for e := math.Floor(math.Log10(min)); e <= math.Ceil(math.Log10(max)); e++ {
		decade := math.Pow10(int(e))
		for m := 1.; m < 10; m++ {
			v := m * decade
			if v < min || v > max {
				continue
			}
			tick := plot.Tick{Value: v}
			if m == 1 {
				tick.Label = formatFloatTick(v, -1)
			}
			ticks = append(ticks, tick)
		}
	}
	return ticks
}

// logFloor replaces non-positive values on a log axis, so that empty
// histogram bins do not break normalization.
const logFloor = 1e-1

// LogScale is a logarithmic axis normalizer that tolerates non-positive
// bounds and values.
type LogScale struct{}

func (LogScale) Normalize(min, max, x float64) float64 {
	if min <= 0 {
		min = logFloor
	}
	if max <= min {
		max = min * 10
	}
	if x <= 0 {
		x = logFloor
	}
	logMin := math.Log(min)
	return (math.Log(x) - logMin) / (math.Log(max) - logMin)
}

func round(x float64, prec int) float64 {
	if x == 0 {
		// Make sure zero is returned
		// without the negative bit set.
		return 0
	}
	// Fast path for positive precision on integers.
	if prec >= 0 && x == math.Trunc(x) {
		return x
	}
	pow := math.Pow10(prec)
	intermed := x * pow
	if math.IsInf(intermed, 0) {
		return x
	}
	if x < 0 {
		x = math.Ceil(intermed - 0.5)
	} else {
		x = math.Floor(intermed + 0.5)
	}

	if x == 0 {
		return 0
	}

	return x / pow
}

func formatFloatTick(v float64, prec int) string {
	return strconv.FormatFloat(v, 'g', prec, 64)
}
