/*
   Scan-cycle orchestrator.

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

// Package orchestrator drives one scan: run every PROGRAM POU in order,
// run the top-level statements, then tick every timer by the scan period.
// Advancing simulated time happens exactly once per scan, after all user
// code has run, so timing stays deterministic regardless of how long the
// scan itself took to compute (spec.md §4.6).
package orchestrator

import (
	"github.com/scanloop/stvm/internal/ast"
	"github.com/scanloop/stvm/internal/runtime"
	"github.com/scanloop/stvm/internal/store"
)

// Scan runs one full scan cycle against ctx and unit.
func Scan(ctx *runtime.Context, unit *ast.Unit) {
	for i := range unit.Programs {
		p := &unit.Programs[i]
		if p.ProgramType != ast.POUProgram {
			continue
		}
		ctx.RunStatements(ctx, p.Statements)
	}

	if len(unit.TopLevelStatements) > 0 {
		ctx.RunStatements(ctx, unit.TopLevelStatements)
	}

	tickTimers(ctx.Store, ctx.ScanMS)
}

// tickTimers advances every timer instance owned by st, then recurses into
// every user-FB instance's nested store — a timer declared inside a
// function block lives in that instance's private store and must be
// ticked exactly once per scan the same as a top-level one (spec.md §4.6).
func tickTimers(st *store.Store, scanMS int64) {
	for _, name := range st.TimerNames() {
		st.UpdateTimer(name, scanMS)
	}
	for _, inst := range st.Instances() {
		tickTimers(inst.Store, scanMS)
	}
}
