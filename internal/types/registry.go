/*
   Type registry: maps declared variable names to a coarse storage-lane tag.

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

package types

import "strings"

// DeclaredType is the coarse category a declared variable is classified
// into. Assignment routes through this tag to pick a storage lane; reads
// fall back to lane-by-lane lookup when the tag is Unknown.
type DeclaredType uint8

const (
	Unknown DeclaredType = iota
	Bool
	Int
	Real
	Time
	TimerFB
	CounterFB
	RTrigFB
	FTrigFB
	BistableFB
	UserFB
)

func (d DeclaredType) String() string {
	switch d {
	case Bool:
		return "BOOL"
	case Int:
		return "INT"
	case Real:
		return "REAL"
	case Time:
		return "TIME"
	case TimerFB:
		return "TIMER"
	case CounterFB:
		return "COUNTER"
	case RTrigFB:
		return "R_TRIG"
	case FTrigFB:
		return "F_TRIG"
	case BistableFB:
		return "BISTABLE"
	case UserFB:
		return "USER_FB"
	default:
		return "UNKNOWN"
	}
}

// intFamily collapses IEC integer sizes onto the single INT lane.
var intFamily = map[string]bool{
	"INT": true, "DINT": true, "SINT": true, "LINT": true,
	"UINT": true, "UDINT": true, "USINT": true, "ULINT": true,
}

// realFamily collapses IEC float sizes onto the single REAL lane.
var realFamily = map[string]bool{
	"REAL": true, "LREAL": true,
}

// TimerKind and CounterKind record which concrete standard FB flavor a
// TimerFB/CounterFB declaration names; the store lane is the same for all
// three timer flavors (and all three counter flavors) but the FB runtime
// needs to know which edge semantics to apply.
type TimerKind uint8

const (
	TON TimerKind = iota
	TOF
	TP
)

type CounterKind uint8

const (
	CTU CounterKind = iota
	CTD
	CTUD
)

// BistableKind distinguishes SR (set-dominant) from RS (reset-dominant).
type BistableKind uint8

const (
	SR BistableKind = iota
	RS
)

// Entry is one variable's classification.
type Entry struct {
	Type DeclaredType
	// FBName is the user-FB type name when Type == UserFB.
	FBName string
	// TimerKind / CounterKind / BistableKind are meaningful only for the
	// matching Type.
	TimerKind    TimerKind
	CounterKind  CounterKind
	BistableKind BistableKind
}

// Registry maps a declared variable name to its Entry. Built once at
// initialization from AST declarations and immutable thereafter (§5).
type Registry struct {
	entries map[string]Entry
}

func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]Entry)}
}

func (r *Registry) Set(name string, e Entry) {
	r.entries[name] = e
}

// Lookup returns the Entry for name and whether it was found.
func (r *Registry) Lookup(name string) (Entry, bool) {
	e, ok := r.entries[name]
	return e, ok
}

// Classify maps a raw IEC type name (case-insensitive) to a DeclaredType.
// Standard-FB and user-FB names are not handled here — the initializer
// decides those by looking the name up against the set of known FB kinds
// and, failing that, the set of user-declared FB type names.
func Classify(rawTypeName string) DeclaredType {
	up := strings.ToUpper(strings.TrimSpace(rawTypeName))
	switch {
	case up == "BOOL":
		return Bool
	case intFamily[up]:
		return Int
	case realFamily[up]:
		return Real
	case up == "TIME":
		return Time
	default:
		return Unknown
	}
}

// ClassifyTimerKind maps TON/TOF/TP (case-insensitive) to a TimerKind. ok is
// false for any other name.
func ClassifyTimerKind(rawTypeName string) (TimerKind, bool) {
	switch strings.ToUpper(strings.TrimSpace(rawTypeName)) {
	case "TON":
		return TON, true
	case "TOF":
		return TOF, true
	case "TP":
		return TP, true
	default:
		return 0, false
	}
}

// ClassifyCounterKind maps CTU/CTD/CTUD (case-insensitive) to a CounterKind.
func ClassifyCounterKind(rawTypeName string) (CounterKind, bool) {
	switch strings.ToUpper(strings.TrimSpace(rawTypeName)) {
	case "CTU":
		return CTU, true
	case "CTD":
		return CTD, true
	case "CTUD":
		return CTUD, true
	default:
		return 0, false
	}
}

// IsEdgeFB reports whether rawTypeName names R_TRIG/F_TRIG.
func IsEdgeFB(rawTypeName string) (DeclaredType, bool) {
	switch strings.ToUpper(strings.TrimSpace(rawTypeName)) {
	case "R_TRIG":
		return RTrigFB, true
	case "F_TRIG":
		return FTrigFB, true
	default:
		return Unknown, false
	}
}

// ClassifyBistableKind maps SR/RS (case-insensitive) to a BistableKind.
func ClassifyBistableKind(rawTypeName string) (BistableKind, bool) {
	switch strings.ToUpper(strings.TrimSpace(rawTypeName)) {
	case "SR":
		return SR, true
	case "RS":
		return RS, true
	default:
		return 0, false
	}
}
