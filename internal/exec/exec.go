/*
   Statement executor.

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

// Package exec walks a statement list against a runtime.Context, one
// node-kind dispatch per statement, threading runtime.Flow back out in
// place of exceptions for EXIT/CONTINUE/RETURN (spec.md §4.4, §9).
package exec

import (
	"github.com/scanloop/stvm/internal/ast"
	"github.com/scanloop/stvm/internal/eval"
	"github.com/scanloop/stvm/internal/runtime"
	"github.com/scanloop/stvm/internal/value"
)

// defaultIterCap is used when a Context leaves IterCap unset (0).
const defaultIterCap = 10000

// Run executes stmts in order and returns the Flow signal it ended on.
// Any non-Normal signal (Break, Continue or Return) stops the list and is
// returned to the caller. Only FOR/WHILE/REPEAT absorb Break/Continue; the
// orchestrator and the user-FB call path discard the signal their
// outermost list returns, so a Break/Continue outside any loop ends that
// list the way a Return does.
func Run(ctx *runtime.Context, stmts []ast.Stmt) runtime.Flow {
	for _, s := range stmts {
		switch f := execOne(ctx, s); f {
		case runtime.Normal:
			continue
		default:
			return f
		}
	}
	return runtime.Normal
}

func iterCap(ctx *runtime.Context) int {
	if ctx.IterCap > 0 {
		return ctx.IterCap
	}
	return defaultIterCap
}

func execOne(ctx *runtime.Context, s ast.Stmt) runtime.Flow {
	switch n := s.(type) {
	case *ast.Assignment:
		execAssignment(ctx, n)
		return runtime.Normal
	case *ast.If:
		return execIf(ctx, n)
	case *ast.Case:
		return execCase(ctx, n)
	case *ast.For:
		return execFor(ctx, n)
	case *ast.While:
		return execWhile(ctx, n)
	case *ast.Repeat:
		return execRepeat(ctx, n)
	case *ast.Exit:
		return runtime.Break
	case *ast.Continue:
		return runtime.Continue
	case *ast.Return:
		return runtime.Return
	case *ast.FbCallStmt:
		ctx.CallStmt(&n.Call)
		return runtime.Normal
	case *ast.ExprStmt:
		eval.Eval(ctx, n.X)
		return runtime.Normal
	default:
		return runtime.Normal
	}
}

// execAssignment implements spec.md §4.4's assignment routing: a simple
// name routes through the declared-type lane; an FB output field is
// refused silently (call-binding is the only way to write a user FB's
// VAR_INPUT, and built-in outputs are owned by the FB runtime).
func execAssignment(ctx *runtime.Context, n *ast.Assignment) {
	v := eval.Eval(ctx, n.Value)
	switch target := n.Target.(type) {
	case *ast.Identifier:
		ctx.AssignSimple(target.Name, v)
	case *ast.MemberAccess:
		// refused silently, per spec.md §4.4
	}
}

func execIf(ctx *runtime.Context, n *ast.If) runtime.Flow {
	if eval.Eval(ctx, n.Cond).AsBool() {
		return Run(ctx, n.Then)
	}
	for _, ei := range n.ElseIfs {
		if eval.Eval(ctx, ei.Cond).AsBool() {
			return Run(ctx, ei.Then)
		}
	}
	if n.Else != nil {
		return Run(ctx, n.Else)
	}
	return runtime.Normal
}

func execCase(ctx *runtime.Context, n *ast.Case) runtime.Flow {
	sel := eval.Eval(ctx, n.Selector)
	for _, clause := range n.Cases {
		if caseLabelsMatch(ctx, clause.Labels, sel) {
			return Run(ctx, clause.Body)
		}
	}
	if n.Else != nil {
		return Run(ctx, n.Else)
	}
	return runtime.Normal
}

func caseLabelsMatch(ctx *runtime.Context, labels []ast.CaseLabel, sel value.Value) bool {
	for _, l := range labels {
		if l.Range {
			lo := eval.Eval(ctx, l.Lo).AsFloat()
			hi := eval.Eval(ctx, l.Hi).AsFloat()
			if lo > hi {
				lo, hi = hi, lo
			}
			v := sel.AsFloat()
			if v >= lo && v <= hi {
				return true
			}
		} else if value.Equal(sel, eval.Eval(ctx, l.Lo)) {
			return true
		}
	}
	return false
}

func execFor(ctx *runtime.Context, n *ast.For) runtime.Flow {
	start := eval.Eval(ctx, n.Start).AsInt()
	end := eval.Eval(ctx, n.End).AsInt()
	step := int64(1)
	if n.Step != nil {
		step = eval.Eval(ctx, n.Step).AsInt()
	}
	if step == 0 {
		// Safety rule: step of 0 is zero iterations (spec.md §4.4).
		return runtime.Normal
	}

	i := start
	for {
		if step > 0 && i > end {
			break
		}
		if step < 0 && i < end {
			break
		}
		ctx.AssignSimple(n.Var, value.MakeInt(i))
		switch f := Run(ctx, n.Body); f {
		case runtime.Break:
			// EXIT still advances i by one step before leaving; the
			// post-loop value here is unspecified, unlike the end+step
			// value left by normal completion below.
			i += step
			ctx.AssignSimple(n.Var, value.MakeInt(i))
			return runtime.Normal
		case runtime.Return:
			return runtime.Return
		}
		i += step
	}
	ctx.AssignSimple(n.Var, value.MakeInt(i))
	return runtime.Normal
}

func execWhile(ctx *runtime.Context, n *ast.While) runtime.Flow {
	limit := iterCap(ctx)
	for i := 0; i < limit; i++ {
		if !eval.Eval(ctx, n.Cond).AsBool() {
			return runtime.Normal
		}
		switch f := Run(ctx, n.Body); f {
		case runtime.Break:
			return runtime.Normal
		case runtime.Return:
			return runtime.Return
		}
	}
	return runtime.Normal
}

func execRepeat(ctx *runtime.Context, n *ast.Repeat) runtime.Flow {
	limit := iterCap(ctx)
	for i := 0; i < limit; i++ {
		switch f := Run(ctx, n.Body); f {
		case runtime.Break:
			return runtime.Normal
		case runtime.Return:
			return runtime.Return
		}
		if eval.Eval(ctx, n.Cond).AsBool() {
			return runtime.Normal
		}
	}
	return runtime.Normal
}
