/*
   Value: tagged runtime value for the Structured Text evaluator.

   Copyright (c) 2024, Richard Cornwell

   Permission is hereby granted, free of charge, to any person obtaining a
   copy of this software and associated documentation files (the "Software"),
   to deal in the Software without restriction, including without limitation
   the rights to use, copy, modify, merge, publish, distribute, sublicense,
   and/or sell copies of the Software, and to permit persons to whom the
   Software is furnished to do so, subject to the following conditions:

   The above copyright notice and this permission notice shall be included in
   all copies or substantial portions of the Software.

   THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
   IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
   FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT.  IN NO EVENT SHALL
   ROBERT M SUPNIK BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER
   IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN
   CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.

*/

// Package value implements the five-variant tagged Value used to carry
// expression results: BOOL, INT, REAL, TIME (milliseconds) and NULL.
package value

import (
	"fmt"
	"math"
	"strconv"
)

// Kind tags which field of a Value is meaningful.
type Kind uint8

const (
	Null Kind = iota
	Bool
	Int
	Real
	Time
)

func (k Kind) String() string {
	switch k {
	case Bool:
		return "BOOL"
	case Int:
		return "INT"
	case Real:
		return "REAL"
	case Time:
		return "TIME"
	default:
		return "NULL"
	}
}

// Value is a small tagged union. Only the field matching Kind is valid.
type Value struct {
	Kind Kind
	B    bool
	I    int64
	R    float64
	// T holds a TIME value in milliseconds.
	T int64
}

func MakeBool(b bool) Value { return Value{Kind: Bool, B: b} }
func MakeInt(i int64) Value { return Value{Kind: Int, I: i} }
func MakeReal(r float64) Value { return Value{Kind: Real, R: r} }
func MakeTime(ms int64) Value { return Value{Kind: Time, T: ms} }

// Zero returns the IEC default value for a declared Kind.
func Zero(k Kind) Value {
	switch k {
	case Bool:
		return MakeBool(false)
	case Int:
		return MakeInt(0)
	case Real:
		return MakeReal(0)
	case Time:
		return MakeTime(0)
	default:
		return Value{Kind: Null}
	}
}

// IsNumeric reports whether the value participates in arithmetic/comparison
// promotion (INT, REAL or TIME — TIME is stored as integer milliseconds and
// behaves numerically for comparisons).
func (v Value) IsNumeric() bool {
	switch v.Kind {
	case Int, Real, Time:
		return true
	default:
		return false
	}
}

// AsFloat widens any numeric value to float64. Non-numeric values yield 0.
func (v Value) AsFloat() float64 {
	switch v.Kind {
	case Int:
		return float64(v.I)
	case Real:
		return v.R
	case Time:
		return float64(v.T)
	default:
		return 0
	}
}

// AsInt narrows any numeric value to int64, flooring REAL per §4.2's
// int-assignment rule. Non-numeric values yield 0.
func (v Value) AsInt() int64 {
	switch v.Kind {
	case Int:
		return v.I
	case Real:
		return int64(math.Floor(v.R))
	case Time:
		return v.T
	default:
		return 0
	}
}

// AsBool returns the boolean value, or false for non-BOOL values.
func (v Value) AsBool() bool {
	return v.Kind == Bool && v.B
}

func (v Value) String() string {
	switch v.Kind {
	case Bool:
		return strconv.FormatBool(v.B)
	case Int:
		return strconv.FormatInt(v.I, 10)
	case Real:
		return strconv.FormatFloat(v.R, 'g', -1, 64)
	case Time:
		return fmt.Sprintf("T#%dms", v.T)
	default:
		return "NULL"
	}
}

// Equal compares two values numerically when both are numeric, else
// structurally (kind and stored fields must match) per §4.3's comparison
// semantics.
func Equal(a, b Value) bool {
	if a.IsNumeric() && b.IsNumeric() {
		return a.AsFloat() == b.AsFloat()
	}
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case Bool:
		return a.B == b.B
	case Null:
		return true
	default:
		return a.AsFloat() == b.AsFloat()
	}
}

// Compare returns -1, 0 or 1 for numeric values. Non-numeric values that are
// not equal compare as unordered and report 0 (callers must check Equal for
// the structural case first).
func Compare(a, b Value) int {
	af, bf := a.AsFloat(), b.AsFloat()
	switch {
	case af < bf:
		return -1
	case af > bf:
		return 1
	default:
		return 0
	}
}
