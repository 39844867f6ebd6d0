/*
   Variable store: the process-local mutable state an engine instance owns.

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

// Package store holds every lane of runtime state an interpreter instance
// owns: four primitive value lanes, four standard function-block record
// lanes and a nested user-FB instance arena. Lane access never errors —
// unknown reads return the type default, matching the PLC convention that
// an unbound variable simply reads as its zero value.
package store

import (
	"github.com/scanloop/stvm/internal/types"
	"github.com/scanloop/stvm/internal/value"
)

// TimerRecord backs one TON/TOF/TP instance.
type TimerRecord struct {
	Kind    types.TimerKind
	IN      bool
	PrevIN  bool
	PT      int64
	ET      int64
	Q       bool
	Running bool
}

// CounterRecord backs one CTU/CTD/CTUD instance.
type CounterRecord struct {
	Kind types.CounterKind
	CU   bool
	CD   bool
	R    bool
	LD   bool
	PV   int64
	CV   int64
	QU   bool
	QD   bool
}

// EdgeRecord backs one R_TRIG/F_TRIG instance.
type EdgeRecord struct {
	Rising bool // true = R_TRIG, false = F_TRIG
	CLK    bool
	Q      bool
	M      bool
}

// BistableRecord backs one SR/RS instance.
type BistableRecord struct {
	Kind types.BistableKind
	Q1   bool
}

// Instance is a user-defined function-block instance: its own nested
// Store and Registry for VAR/VAR_INPUT/VAR_OUTPUT slots, plus the FB type
// name it was declared from (used to locate the FB body at call time).
type Instance struct {
	FBName   string
	Store    *Store
	Registry *types.Registry
}

// Store is one scope's worth of variable state: the top-level store, or
// one user-FB instance's private store. Every lane is a plain map; there
// is no bound on slot count beyond what the AST declares.
type Store struct {
	bools   map[string]bool
	ints    map[string]int64
	reals   map[string]float64
	times   map[string]int64
	timers  map[string]*TimerRecord
	counter map[string]*CounterRecord
	edges   map[string]*EdgeRecord
	bist    map[string]*BistableRecord
	fbs     map[string]*Instance

	// lastSeen tracks the previous scan's BOOL value for each
	// (instance, input) pair supplied to an edge-sensitive FB argument,
	// per spec.md §4.5 "Argument edge detection".
	lastSeen map[string]bool
}

// New returns an empty Store.
func New() *Store {
	return &Store{
		bools:    make(map[string]bool),
		ints:     make(map[string]int64),
		reals:    make(map[string]float64),
		times:    make(map[string]int64),
		timers:   make(map[string]*TimerRecord),
		counter:  make(map[string]*CounterRecord),
		edges:    make(map[string]*EdgeRecord),
		bist:     make(map[string]*BistableRecord),
		fbs:      make(map[string]*Instance),
		lastSeen: make(map[string]bool),
	}
}

// ClearAll resets every lane to empty, discarding all FB instance state.
func (s *Store) ClearAll() {
	s.bools = make(map[string]bool)
	s.ints = make(map[string]int64)
	s.reals = make(map[string]float64)
	s.times = make(map[string]int64)
	s.timers = make(map[string]*TimerRecord)
	s.counter = make(map[string]*CounterRecord)
	s.edges = make(map[string]*EdgeRecord)
	s.bist = make(map[string]*BistableRecord)
	s.fbs = make(map[string]*Instance)
	s.lastSeen = make(map[string]bool)
}

func (s *Store) GetBool(name string) bool { return s.bools[name] }
func (s *Store) SetBool(name string, v bool) {
	s.bools[name] = v
}

func (s *Store) GetInt(name string) int64 { return s.ints[name] }
func (s *Store) SetInt(name string, v int64) {
	s.ints[name] = v
}

func (s *Store) GetReal(name string) float64 { return s.reals[name] }
func (s *Store) SetReal(name string, v float64) {
	s.reals[name] = v
}

func (s *Store) GetTime(name string) int64 { return s.times[name] }
func (s *Store) SetTime(name string, v int64) {
	s.times[name] = v
}

// InitTimer creates a fresh TimerRecord for name if one is not already
// present. The actual PT is supplied later by the FB call, per spec.md §4.2.
func (s *Store) InitTimer(name string, pt int64, kind types.TimerKind) {
	if _, ok := s.timers[name]; ok {
		return
	}
	s.timers[name] = &TimerRecord{Kind: kind, PT: pt}
}

// GetTimer returns the TimerRecord for name, or nil if never initialized.
func (s *Store) GetTimer(name string) *TimerRecord { return s.timers[name] }

// SetTimerInput sets IN on the named timer ahead of an update_timer tick;
// no-op if the timer is not initialized.
func (s *Store) SetTimerInput(name string, in bool) {
	if t, ok := s.timers[name]; ok {
		t.IN = in
	}
}

// UpdateTimer advances the named timer by deltaMs of elapsed scan time,
// applying the TON/TOF/TP edge and ramp rules of spec.md §4.5.
func (s *Store) UpdateTimer(name string, deltaMs int64) {
	t, ok := s.timers[name]
	if !ok {
		return
	}
	switch t.Kind {
	case types.TON:
		updateTON(t, deltaMs)
	case types.TOF:
		updateTOF(t, deltaMs)
	case types.TP:
		updateTP(t, deltaMs)
	}
}

// InitCounter creates a fresh CounterRecord for name if not already present.
func (s *Store) InitCounter(name string, pv int64, kind types.CounterKind) {
	if _, ok := s.counter[name]; ok {
		return
	}
	s.counter[name] = &CounterRecord{Kind: kind, PV: pv}
}

func (s *Store) GetCounter(name string) *CounterRecord { return s.counter[name] }

// SetCounterInputs stages CU/CD/R/LD/PV ahead of an UpdateCounter tick.
func (s *Store) SetCounterInputs(name string, cu, cd, r, ld bool, pv int64) {
	c, ok := s.counter[name]
	if !ok {
		return
	}
	c.CU, c.CD, c.R, c.LD, c.PV = cu, cd, r, ld, pv
}

// UpdateCounter applies one scan's worth of CU/CD/R/LD transitions to the
// named counter, given the previous scan's CU/CD levels for edge detection.
func (s *Store) UpdateCounter(name string, prevCU, prevCD bool) {
	c, ok := s.counter[name]
	if !ok {
		return
	}
	updateCounter(c, prevCU, prevCD)
}

// InitEdge creates a fresh EdgeRecord for name if not already present.
func (s *Store) InitEdge(name string, rising bool) {
	if _, ok := s.edges[name]; ok {
		return
	}
	s.edges[name] = &EdgeRecord{Rising: rising}
}

func (s *Store) GetEdge(name string) *EdgeRecord { return s.edges[name] }

// UpdateEdge computes Q from clk against the stored mirror M, then
// advances M, per spec.md §4.1's update_rtrig/update_ftrig.
func (s *Store) UpdateEdge(name string, clk bool) {
	e, ok := s.edges[name]
	if !ok {
		return
	}
	e.CLK = clk
	if e.Rising {
		e.Q = clk && !e.M
	} else {
		e.Q = !clk && e.M
	}
	e.M = clk
}

// InitBistable creates a fresh BistableRecord for name if not already present.
func (s *Store) InitBistable(name string, kind types.BistableKind) {
	if _, ok := s.bist[name]; ok {
		return
	}
	s.bist[name] = &BistableRecord{Kind: kind}
}

func (s *Store) GetBistable(name string) *BistableRecord { return s.bist[name] }

// UpdateSR applies SR (set-dominant) semantics: if s then Q1 else if r.
func (s *Store) UpdateSR(name string, set, reset bool) {
	b, ok := s.bist[name]
	if !ok {
		return
	}
	if set {
		b.Q1 = true
	} else if reset {
		b.Q1 = false
	}
}

// UpdateRS applies RS (reset-dominant) semantics: if r then Q1 := FALSE
// else if s then Q1 := TRUE.
func (s *Store) UpdateRS(name string, set, reset bool) {
	b, ok := s.bist[name]
	if !ok {
		return
	}
	if reset {
		b.Q1 = false
	} else if set {
		b.Q1 = true
	}
}

// InitFB registers a user-FB instance under name, owning its own nested
// Store and Registry. Overwrites any existing instance of the same name
// (re-init on ClearAll rebuild).
func (s *Store) InitFB(name, fbName string) *Instance {
	inst := &Instance{FBName: fbName, Store: New(), Registry: types.NewRegistry()}
	s.fbs[name] = inst
	return inst
}

// GetFB returns the named user-FB instance, or nil if never initialized.
func (s *Store) GetFB(name string) *Instance { return s.fbs[name] }

// Instances returns every user-FB instance directly owned by s, for
// callers that must recurse into nested stores (e.g. the orchestrator's
// once-per-scan timer tick). Order is unspecified.
func (s *Store) Instances() []*Instance {
	out := make([]*Instance, 0, len(s.fbs))
	for _, inst := range s.fbs {
		out = append(out, inst)
	}
	return out
}

// LastSeen returns the previous scan's recorded level for key (an
// "instance.input" composite) and whether one was recorded.
func (s *Store) LastSeen(key string) (bool, bool) {
	v, ok := s.lastSeen[key]
	return v, ok
}

// SetLastSeen records this scan's level for key, for next scan's edge test.
func (s *Store) SetLastSeen(key string, v bool) {
	s.lastSeen[key] = v
}

// EdgeMirrors returns the live lastSeen map, for a caller carrying edge
// history across a rebuild (engine.ClearAll with PersistEdgeMirrors set).
func (s *Store) EdgeMirrors() map[string]bool {
	return s.lastSeen
}

// AdoptEdgeMirrors replaces s's lastSeen map with m, so a freshly built
// Store can resume the previous instance's edge history instead of
// treating every edge-sensitive argument as unseen.
func (s *Store) AdoptEdgeMirrors(m map[string]bool) {
	if m == nil {
		m = make(map[string]bool)
	}
	s.lastSeen = m
}

// RawLookup tries each primitive lane in turn for name, used as a
// fallback when no registry entry exists for it (spec.md §4.3 "else fall
// through lanes").
func (s *Store) RawLookup(name string) (value.Value, bool) {
	if v, ok := s.bools[name]; ok {
		return value.MakeBool(v), true
	}
	if v, ok := s.ints[name]; ok {
		return value.MakeInt(v), true
	}
	if v, ok := s.reals[name]; ok {
		return value.MakeReal(v), true
	}
	if v, ok := s.times[name]; ok {
		return value.MakeTime(v), true
	}
	return value.Value{}, false
}

// TimerNames returns every initialized timer's name, for the orchestrator's
// once-per-scan tick pass. Order is unspecified.
func (s *Store) TimerNames() []string {
	names := make([]string, 0, len(s.timers))
	for n := range s.timers {
		names = append(names, n)
	}
	return names
}
