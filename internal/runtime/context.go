/*
   Runtime context: the execution-time bridge between the AST, the store
   and the type registry, shared by the evaluator, executor and FB runtime.

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

// Package runtime defines Context, the small bundle of state threaded
// through expression evaluation, statement execution and function-block
// calls. It intentionally knows nothing about how statements execute or
// how FB calls bind arguments — exec and fb supply those behaviors as
// function values at wiring time (internal/engine), avoiding an import
// cycle between exec and fb while letting eval/exec reach into either.
package runtime

import (
	"strings"

	"github.com/scanloop/stvm/internal/ast"
	"github.com/scanloop/stvm/internal/store"
	"github.com/scanloop/stvm/internal/types"
	"github.com/scanloop/stvm/internal/value"
)

// Flow is the non-local control signal threaded back out of statement
// execution in place of exceptions (spec.md §4.4).
type Flow uint8

const (
	Normal Flow = iota
	Break
	Continue
	Return
)

// Context bundles the state one statement-executor/evaluator call needs.
// A Context is created per program/FB-call invocation, rebased onto the
// relevant Store/Registry.
type Context struct {
	Store    *store.Store
	Registry *types.Registry
	Unit     *ast.Unit

	// ScanMS is the scan period in milliseconds, consulted only by the
	// orchestrator's once-per-scan timer tick, not by user code.
	ScanMS int64
	// IterCap bounds WHILE/REPEAT iterations (spec.md §4.4, default 10000).
	IterCap int

	// RunStatements executes a statement list and returns the Flow signal
	// it terminated with. Wired by internal/engine to exec.Run.
	RunStatements func(ctx *Context, stmts []ast.Stmt) Flow
	// CallFB invokes a function-block call (built-in or user-defined) and
	// returns a Value. Wired by internal/engine to fb.Call, which always
	// returns a NULL Value and does not invoke FUNCTION POUs.
	CallFB func(ctx *Context, call *ast.FbCall) value.Value
}

// Rebase returns a new Context sharing everything except Store/Registry,
// which point at inst instead — used when entering a user-FB call.
func (ctx *Context) Rebase(st *store.Store, reg *types.Registry) *Context {
	rebased := *ctx
	rebased.Store = st
	rebased.Registry = reg
	return &rebased
}

// ResolveRead resolves a simple identifier against ctx's Store/Registry.
func (ctx *Context) ResolveRead(name string) value.Value {
	return resolveReadIn(ctx.Store, ctx.Registry, name)
}

func resolveReadIn(st *store.Store, reg *types.Registry, name string) value.Value {
	if entry, ok := reg.Lookup(name); ok {
		switch entry.Type {
		case types.Bool:
			return value.MakeBool(st.GetBool(name))
		case types.Int:
			return value.MakeInt(st.GetInt(name))
		case types.Real:
			return value.MakeReal(st.GetReal(name))
		case types.Time:
			return value.MakeTime(st.GetTime(name))
		}
	}
	if v, ok := st.RawLookup(name); ok {
		return v
	}
	return value.Zero(value.Null)
}

// AssignSimple routes a write to name through the declared-type lane,
// per spec.md §4.4. Names with no registry entry fall back to the
// written value's own Kind, tolerating AST-supplied temporaries that
// bypassed the initializer.
func (ctx *Context) AssignSimple(name string, v value.Value) {
	entry, ok := ctx.Registry.Lookup(name)
	kind := types.Unknown
	if ok {
		kind = entry.Type
	}
	switch kind {
	case types.Bool:
		ctx.Store.SetBool(name, v.AsBool())
	case types.Int:
		ctx.Store.SetInt(name, v.AsInt())
	case types.Real:
		ctx.Store.SetReal(name, v.AsFloat())
	case types.Time:
		ctx.Store.SetTime(name, v.AsInt())
	default:
		switch v.Kind {
		case value.Bool:
			ctx.Store.SetBool(name, v.B)
		case value.Int:
			ctx.Store.SetInt(name, v.I)
		case value.Real:
			ctx.Store.SetReal(name, v.R)
		case value.Time:
			ctx.Store.SetTime(name, v.T)
		}
	}
}

// resolveBase walks a (possibly chained) member-access base expression
// down to the Store/Registry/name of the FB instance it ultimately names.
func resolveBase(ctx *Context, e ast.Expr) (*store.Store, *types.Registry, string, bool) {
	switch b := e.(type) {
	case *ast.Identifier:
		return ctx.Store, ctx.Registry, b.Name, true
	case *ast.MemberAccess:
		st, reg, name, ok := resolveBase(ctx, b.Base)
		if !ok {
			return nil, nil, "", false
		}
		entry, ok2 := reg.Lookup(name)
		if !ok2 || entry.Type != types.UserFB {
			return nil, nil, "", false
		}
		inst := st.GetFB(name)
		if inst == nil {
			return nil, nil, "", false
		}
		return inst.Store, inst.Registry, b.Field, true
	default:
		return nil, nil, "", false
	}
}

// ResolveMember reads an FB output field (Timer1.Q, Counter1.CV, ...).
func (ctx *Context) ResolveMember(ma *ast.MemberAccess) value.Value {
	st, reg, name, ok := resolveBase(ctx, ma.Base)
	if !ok {
		return value.Zero(value.Null)
	}
	entry, ok := reg.Lookup(name)
	if !ok {
		return value.Zero(value.Null)
	}
	field := strings.ToUpper(ma.Field)

	switch entry.Type {
	case types.TimerFB:
		t := st.GetTimer(name)
		if t == nil {
			return value.Zero(value.Null)
		}
		switch field {
		case "Q":
			return value.MakeBool(t.Q)
		case "ET":
			return value.MakeTime(t.ET)
		case "IN":
			return value.MakeBool(t.IN)
		case "PT":
			return value.MakeTime(t.PT)
		}
	case types.CounterFB:
		c := st.GetCounter(name)
		if c == nil {
			return value.Zero(value.Null)
		}
		switch field {
		case "CV":
			return value.MakeInt(c.CV)
		case "PV":
			return value.MakeInt(c.PV)
		case "QU":
			return value.MakeBool(c.QU)
		case "QD":
			return value.MakeBool(c.QD)
		case "CU":
			return value.MakeBool(c.CU)
		case "CD":
			return value.MakeBool(c.CD)
		case "R":
			return value.MakeBool(c.R)
		case "LD":
			return value.MakeBool(c.LD)
		}
	case types.RTrigFB, types.FTrigFB:
		e := st.GetEdge(name)
		if e == nil {
			return value.Zero(value.Null)
		}
		switch field {
		case "Q":
			return value.MakeBool(e.Q)
		case "CLK":
			return value.MakeBool(e.CLK)
		case "M":
			return value.MakeBool(e.M)
		}
	case types.BistableFB:
		b := st.GetBistable(name)
		if b == nil {
			return value.Zero(value.Null)
		}
		if field == "Q1" {
			return value.MakeBool(b.Q1)
		}
	case types.UserFB:
		inst := st.GetFB(name)
		if inst == nil {
			return value.Zero(value.Null)
		}
		return resolveReadIn(inst.Store, inst.Registry, ma.Field)
	}
	return value.Zero(value.Null)
}

// CallForValue invokes an FB call used as an expression (FUNCTION calls).
func (ctx *Context) CallForValue(call *ast.FbCall) value.Value {
	if ctx.CallFB == nil {
		return value.Zero(value.Null)
	}
	return ctx.CallFB(ctx, call)
}

// CallStmt invokes an FB call used as a bare statement, discarding any
// return value.
func (ctx *Context) CallStmt(call *ast.FbCall) {
	if ctx.CallFB == nil {
		return
	}
	ctx.CallFB(ctx, call)
}
