package backends

import (
	"github.com/gomlx/exceptions"
)

// PadMode selects how Pad fills the new border elements of one axis.
type PadMode int

//go:generate enumer -type=PadMode -trimprefix=Pad -transform=snake -output=padmode_enumer.go padding.go

const (
	// PadConstant fills with a constant value.
	PadConstant PadMode = iota
	// PadSymmetric reflects including the edge value: [1 2 3] width 2 on the
	// left gives [2 1 | 1 2 3].
	PadSymmetric
	// PadCircular wraps the tensor around periodically.
	PadCircular
	// PadReflect reflects excluding the edge value: [1 2 3] width 2 on the
	// left gives [3 2 | 1 2 3].
	PadReflect
	// PadReplicate repeats the edge value.
	PadReplicate
)

// AxisPad is the padding of a single axis: amounts before and after, the mode,
// and for PadConstant the fill value.
type AxisPad struct {
	Before, After int
	Mode          PadMode
	Value         float64
}

// PadSpec holds one AxisPad per tensor axis. Modes and constants may be mixed
// freely across axes.
type PadSpec []AxisPad

// ZeroPad returns an AxisPad that leaves the axis untouched.
func ZeroPad() AxisPad { return AxisPad{} }

// ConstPad returns a constant-mode AxisPad.
func ConstPad(before, after int, value float64) AxisPad {
	return AxisPad{Before: before, After: after, Mode: PadConstant, Value: value}
}

// ModePad returns an AxisPad with the given non-constant mode.
func ModePad(before, after int, mode PadMode) AxisPad {
	if mode == PadConstant {
		exceptions.Panicf("ModePad: use ConstPad for constant mode")
	}
	return AxisPad{Before: before, After: after, Mode: mode}
}

// IsZero reports whether the axis is not padded at all.
func (p AxisPad) IsZero() bool { return p.Before == 0 && p.After == 0 }

// IsZero reports whether no axis is padded.
func (spec PadSpec) IsZero() bool {
	for _, p := range spec {
		if !p.IsZero() {
			return false
		}
	}
	return true
}

// PadPass is a single-mode, single-constant padding over a subset of axes:
// Widths[axis] = {before, after}, zero for axes not in the pass.
type PadPass struct {
	Mode   PadMode
	Value  float64
	Widths [][2]int
}

// IsZero reports whether the pass pads no axis.
func (pass PadPass) IsZero() bool {
	for _, w := range pass.Widths {
		if w[0] != 0 || w[1] != 0 {
			return false
		}
	}
	return true
}

type padPassKey struct {
	mode  PadMode
	value float64
}

// Split decomposes a mixed per-axis spec into single-mode, single-constant
// passes, grouping axes that share (mode, constant). Applying the passes
// sequentially, in any order, yields the same result as a hypothetical single
// multi-mode operation, since padding is per-axis independent.
//
// Axes with zero pad widths are dropped. Passes are emitted in first-axis
// order, constant passes first, so the output is deterministic.
func (spec PadSpec) Split() []PadPass {
	rank := len(spec)
	byKey := make(map[padPassKey]*PadPass)
	var order []padPassKey
	for axis, p := range spec {
		if p.IsZero() {
			continue
		}
		value := p.Value
		if p.Mode != PadConstant {
			// The constant only distinguishes constant-mode passes.
			value = 0
		}
		key := padPassKey{mode: p.Mode, value: value}
		pass, found := byKey[key]
		if !found {
			pass = &PadPass{Mode: p.Mode, Value: value, Widths: make([][2]int, rank)}
			byKey[key] = pass
			order = append(order, key)
		}
		pass.Widths[axis] = [2]int{p.Before, p.After}
	}
	passes := make([]PadPass, 0, len(order))
	for _, key := range order {
		if key.mode == PadConstant {
			passes = append(passes, *byKey[key])
		}
	}
	for _, key := range order {
		if key.mode != PadConstant {
			passes = append(passes, *byKey[key])
		}
	}
	return passes
}
