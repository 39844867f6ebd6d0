/*
   Expression evaluator.

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

// Package eval evaluates AST expression nodes against a runtime Context.
// Arithmetic faults never panic: division and modulo by zero on integers
// produce 0 and execution continues, matching the fetch/execute discipline
// of never trapping on a user program's own data (cf. DESIGN.md).
package eval

import (
	"math"

	"github.com/scanloop/stvm/internal/ast"
	"github.com/scanloop/stvm/internal/initializer"
	"github.com/scanloop/stvm/internal/runtime"
	"github.com/scanloop/stvm/internal/value"
)

// Eval evaluates e against ctx and returns its Value.
func Eval(ctx *runtime.Context, e ast.Expr) value.Value {
	switch n := e.(type) {
	case *ast.Literal:
		return evalLiteral(n)
	case *ast.Identifier:
		return ctx.ResolveRead(n.Name)
	case *ast.MemberAccess:
		return ctx.ResolveMember(n)
	case *ast.UnaryExpr:
		return evalUnary(ctx, n)
	case *ast.BinaryExpr:
		return evalBinary(ctx, n)
	case *ast.FbCall:
		return ctx.CallForValue(n)
	default:
		return value.Zero(value.Null)
	}
}

func evalLiteral(n *ast.Literal) value.Value {
	switch n.LiteralType {
	case ast.LitBool:
		return value.MakeBool(n.Bool)
	case ast.LitInt:
		return value.MakeInt(n.Int)
	case ast.LitReal:
		return value.MakeReal(n.Real)
	case ast.LitTime:
		if n.Text != "" {
			if ms, err := initializer.ParseTimeLiteral(n.Text); err == nil {
				return value.MakeTime(ms)
			}
		}
		return value.MakeTime(n.TimeMS)
	default:
		return value.Zero(value.Null)
	}
}

func evalUnary(ctx *runtime.Context, n *ast.UnaryExpr) value.Value {
	x := Eval(ctx, n.X)
	switch n.Op {
	case ast.OpNot:
		return value.MakeBool(!x.AsBool())
	case ast.OpNegate:
		if x.Kind == value.Real {
			return value.MakeReal(-x.R)
		}
		return value.MakeInt(-x.AsInt())
	default:
		return value.Zero(value.Null)
	}
}

func evalBinary(ctx *runtime.Context, n *ast.BinaryExpr) value.Value {
	switch n.Op {
	case ast.OpAnd, ast.OpOr, ast.OpXor:
		// Deliberately not short-circuited: both sides are always
		// evaluated (spec.md §4.3).
		l := Eval(ctx, n.Left).AsBool()
		r := Eval(ctx, n.Right).AsBool()
		switch n.Op {
		case ast.OpAnd:
			return value.MakeBool(l && r)
		case ast.OpOr:
			return value.MakeBool(l || r)
		default:
			return value.MakeBool(l != r)
		}
	}

	l := Eval(ctx, n.Left)
	r := Eval(ctx, n.Right)

	switch n.Op {
	case ast.OpEq:
		return value.MakeBool(value.Equal(l, r))
	case ast.OpNeq:
		return value.MakeBool(!value.Equal(l, r))
	case ast.OpLt:
		return value.MakeBool(value.Compare(l, r) < 0)
	case ast.OpLe:
		return value.MakeBool(value.Compare(l, r) <= 0)
	case ast.OpGt:
		return value.MakeBool(value.Compare(l, r) > 0)
	case ast.OpGe:
		return value.MakeBool(value.Compare(l, r) >= 0)
	case ast.OpAdd, ast.OpSub, ast.OpMul, ast.OpDiv, ast.OpMod, ast.OpPow:
		return evalArith(n.Op, l, r)
	default:
		return value.Zero(value.Null)
	}
}

func evalArith(op ast.BinaryOp, l, r value.Value) value.Value {
	bothInt := l.Kind == value.Int && r.Kind == value.Int

	if bothInt {
		switch op {
		case ast.OpAdd:
			return value.MakeInt(l.I + r.I)
		case ast.OpSub:
			return value.MakeInt(l.I - r.I)
		case ast.OpMul:
			return value.MakeInt(l.I * r.I)
		case ast.OpMod:
			if r.I == 0 {
				return value.MakeInt(0)
			}
			return value.MakeInt(l.I % r.I)
		case ast.OpDiv:
			if r.I == 0 {
				return value.MakeInt(0)
			}
			if l.I%r.I == 0 {
				return value.MakeInt(l.I / r.I)
			}
			// Non-integer-exact division produces REAL, per spec.md §4.3,
			// to avoid surprising truncation in mixed code.
			return value.MakeReal(float64(l.I) / float64(r.I))
		case ast.OpPow:
			return value.MakeReal(math.Pow(float64(l.I), float64(r.I)))
		}
	}

	lf, rf := l.AsFloat(), r.AsFloat()
	switch op {
	case ast.OpAdd:
		return value.MakeReal(lf + rf)
	case ast.OpSub:
		return value.MakeReal(lf - rf)
	case ast.OpMul:
		return value.MakeReal(lf * rf)
	case ast.OpDiv:
		return value.MakeReal(lf / rf)
	case ast.OpMod:
		return value.MakeReal(math.Mod(lf, rf))
	case ast.OpPow:
		return value.MakeReal(math.Pow(lf, rf))
	default:
		return value.Zero(value.Null)
	}
}
