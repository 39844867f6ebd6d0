/*
   Function-block runtime: call binding for built-in and user-defined FBs.

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

// Package fb binds call-site arguments onto FB instances and drives the
// per-kind update (timers and counters tick on the orchestrator's scan
// pass via internal/store directly; this package is the per-call path:
// set inputs, run one edge/body pass, expose outputs). Built-in FB kinds
// update immediately on call per spec.md §4.5; user FB bodies execute via
// the Context's wired RunStatements.
package fb

import (
	"strings"

	"github.com/scanloop/stvm/internal/ast"
	"github.com/scanloop/stvm/internal/eval"
	"github.com/scanloop/stvm/internal/runtime"
	"github.com/scanloop/stvm/internal/types"
	"github.com/scanloop/stvm/internal/value"
)

// Call dispatches call against ctx: built-in FB kinds are updated inline;
// user-defined FBs rebase execution onto the instance's private store.
// Unrecognized instance names are a silent no-op, matching the "never
// panic on user code" discipline (spec.md §6).
func Call(ctx *runtime.Context, call *ast.FbCall) value.Value {
	entry, ok := ctx.Registry.Lookup(call.Instance)
	if !ok {
		return value.Zero(value.Null)
	}

	switch entry.Type {
	case types.TimerFB:
		callTimer(ctx, call)
	case types.CounterFB:
		callCounter(ctx, call)
	case types.RTrigFB, types.FTrigFB:
		callEdge(ctx, call)
	case types.BistableFB:
		callBistable(ctx, call, entry)
	case types.UserFB:
		return callUserFB(ctx, call, entry)
	}
	return value.Zero(value.Null)
}

// namedArg finds an argument by name (case-insensitive), positional
// fallback by declared order is not attempted here — built-in FB calls
// always pass named arguments in this engine's AST contract.
func namedArg(call *ast.FbCall, name string) (ast.Expr, bool) {
	for _, a := range call.Args {
		if strings.EqualFold(a.Name, name) {
			return a.Value, true
		}
	}
	return nil, false
}

// edgeKey composes the (instance, input) key used for implicit edge
// tracking of FB call arguments (spec.md §4.5 "Argument edge detection").
func edgeKey(instance, input string) string {
	return instance + "." + input
}

func callTimer(ctx *runtime.Context, call *ast.FbCall) {
	st := ctx.Store
	name := call.Instance

	if ptExpr, ok := namedArg(call, "PT"); ok {
		pt := eval.Eval(ctx, ptExpr).AsInt()
		t := st.GetTimer(name)
		if t != nil {
			t.PT = pt
		}
	}
	var in bool
	if inExpr, ok := namedArg(call, "IN"); ok {
		in = eval.Eval(ctx, inExpr).AsBool()
	} else if t := st.GetTimer(name); t != nil {
		in = t.IN
	}
	st.SetTimerInput(name, in)
	st.UpdateTimer(name, 0)
}

func callCounter(ctx *runtime.Context, call *ast.FbCall) {
	st := ctx.Store
	name := call.Instance
	c := st.GetCounter(name)
	if c == nil {
		return
	}

	cu, cd, r, ld := c.CU, c.CD, c.R, c.LD
	pv := c.PV

	if v, ok := namedArg(call, "CU"); ok {
		cu = eval.Eval(ctx, v).AsBool()
	}
	if v, ok := namedArg(call, "CD"); ok {
		cd = eval.Eval(ctx, v).AsBool()
	}
	if v, ok := namedArg(call, "R"); ok {
		r = eval.Eval(ctx, v).AsBool()
	}
	if v, ok := namedArg(call, "LD"); ok {
		ld = eval.Eval(ctx, v).AsBool()
	}
	if v, ok := namedArg(call, "PV"); ok {
		pv = eval.Eval(ctx, v).AsInt()
	}

	prevCU, _ := st.LastSeen(edgeKey(name, "CU"))
	prevCD, _ := st.LastSeen(edgeKey(name, "CD"))

	st.SetCounterInputs(name, cu, cd, r, ld, pv)
	st.UpdateCounter(name, prevCU, prevCD)

	st.SetLastSeen(edgeKey(name, "CU"), cu)
	st.SetLastSeen(edgeKey(name, "CD"), cd)
}

func callEdge(ctx *runtime.Context, call *ast.FbCall) {
	st := ctx.Store
	name := call.Instance
	clkExpr, ok := namedArg(call, "CLK")
	if !ok {
		return
	}
	clk := eval.Eval(ctx, clkExpr).AsBool()
	st.UpdateEdge(name, clk)
}

func callBistable(ctx *runtime.Context, call *ast.FbCall, entry types.Entry) {
	st := ctx.Store
	name := call.Instance
	var s1, r bool
	if v, ok := namedArg(call, "S1"); ok {
		s1 = eval.Eval(ctx, v).AsBool()
	} else if v, ok := namedArg(call, "S"); ok {
		s1 = eval.Eval(ctx, v).AsBool()
	}
	if v, ok := namedArg(call, "R"); ok {
		r = eval.Eval(ctx, v).AsBool()
	} else if v, ok := namedArg(call, "R1"); ok {
		r = eval.Eval(ctx, v).AsBool()
	}
	switch entry.BistableKind {
	case types.SR:
		st.UpdateSR(name, s1, r)
	case types.RS:
		st.UpdateRS(name, s1, r)
	}
}

// callUserFB binds arguments onto the instance's private store, runs its
// body with execution rebased onto that store, and discards any Return
// (the FB body's own RETURN simply exits the call, per spec.md §4.4).
func callUserFB(ctx *runtime.Context, call *ast.FbCall, entry types.Entry) value.Value {
	inst := ctx.Store.GetFB(call.Instance)
	if inst == nil {
		return value.Zero(value.Null)
	}
	fbDef, ok := ctx.Unit.FindFBDef(entry.FBName)
	if !ok {
		return value.Zero(value.Null)
	}

	innerCtx := ctx.Rebase(inst.Store, inst.Registry)
	bindArgs(ctx, innerCtx, call, fbDef)

	if ctx.RunStatements != nil {
		ctx.RunStatements(innerCtx, fbDef.Statements)
	}
	return value.Zero(value.Null)
}

// bindArgs implements spec.md §4.5's call-binding: positional arguments
// fill VAR_INPUT declarations in source order, named arguments are bound
// after them so a named value dominates a positional one for the same
// input, and any input not supplied this call retains its previous value
// on the instance. Each bound argument's level (AsBool, so FALSE for a
// non-BOOL value) is recorded in the same (instance, input) edge-mirror
// map built-in FBs use; the user-FB call path does not read it back.
func bindArgs(outerCtx, innerCtx *runtime.Context, call *ast.FbCall, fbDef *ast.Program) {
	inputNames := inputDeclOrder(fbDef)

	bind := func(name string, e ast.Expr) {
		v := eval.Eval(outerCtx, e)
		innerCtx.AssignSimple(name, v)
		outerCtx.Store.SetLastSeen(edgeKey(call.Instance, name), v.AsBool())
	}

	var named []ast.Arg
	positional := 0
	for _, arg := range call.Args {
		if arg.Name != "" {
			named = append(named, arg)
			continue
		}
		if positional >= len(inputNames) {
			continue
		}
		bind(inputNames[positional], arg.Value)
		positional++
	}
	for _, arg := range named {
		bind(arg.Name, arg.Value)
	}
}

func inputDeclOrder(fbDef *ast.Program) []string {
	var names []string
	for _, block := range fbDef.VarBlocks {
		if block.Kind != "VAR_INPUT" {
			continue
		}
		for _, decl := range block.Declarations {
			names = append(names, decl.Names...)
		}
	}
	return names
}

