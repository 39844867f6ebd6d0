/*
   Variable initializer: walks declarations and populates the store.

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

// Package initializer walks every VAR block of an AST unit, classifies
// each declared name through a types.Registry and populates a store.Store
// with its default or statically-evaluated initial value — including
// recursive instantiation of user function-block instances.
package initializer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/scanloop/stvm/internal/ast"
	"github.com/scanloop/stvm/internal/store"
	"github.com/scanloop/stvm/internal/types"
)

// Run walks unit and returns a populated Registry and Store. unit's
// FUNCTION_BLOCK definitions are consulted when a declaration's type names
// a user FUNCTION_BLOCK.
func Run(unit *ast.Unit) (*types.Registry, *store.Store, error) {
	reg := types.NewRegistry()
	st := store.New()

	for i := range unit.Programs {
		if err := walkVarBlocks(unit.Programs[i].VarBlocks, reg, st, unit); err != nil {
			return nil, nil, fmt.Errorf("program %s: %w", unit.Programs[i].Name, err)
		}
	}
	if err := walkVarBlocks(unit.TopLevelVarBlocks, reg, st, unit); err != nil {
		return nil, nil, fmt.Errorf("top level: %w", err)
	}
	return reg, st, nil
}

func walkVarBlocks(blocks []ast.VarBlock, reg *types.Registry, st *store.Store, unit *ast.Unit) error {
	for _, block := range blocks {
		for _, decl := range block.Declarations {
			if err := declareOne(decl, reg, st, unit); err != nil {
				return err
			}
		}
	}
	return nil
}

func declareOne(decl ast.Declaration, reg *types.Registry, st *store.Store, unit *ast.Unit) error {
	for _, name := range decl.Names {
		if err := declareName(name, decl, reg, st, unit); err != nil {
			return err
		}
	}
	return nil
}

func declareName(name string, decl ast.Declaration, reg *types.Registry, st *store.Store, unit *ast.Unit) error {
	if kind, ok := types.ClassifyTimerKind(decl.DataType); ok {
		reg.Set(name, types.Entry{Type: types.TimerFB, TimerKind: kind})
		st.InitTimer(name, 0, kind)
		return nil
	}
	if kind, ok := types.ClassifyCounterKind(decl.DataType); ok {
		reg.Set(name, types.Entry{Type: types.CounterFB, CounterKind: kind})
		st.InitCounter(name, 0, kind)
		return nil
	}
	if dt, ok := types.IsEdgeFB(decl.DataType); ok {
		reg.Set(name, types.Entry{Type: dt})
		st.InitEdge(name, dt == types.RTrigFB)
		return nil
	}
	if kind, ok := types.ClassifyBistableKind(decl.DataType); ok {
		reg.Set(name, types.Entry{Type: types.BistableFB, BistableKind: kind})
		st.InitBistable(name, kind)
		return nil
	}

	switch types.Classify(decl.DataType) {
	case types.Bool:
		reg.Set(name, types.Entry{Type: types.Bool})
		st.SetBool(name, evalBoolInitializer(decl.Initializer))
		return nil
	case types.Int:
		reg.Set(name, types.Entry{Type: types.Int})
		st.SetInt(name, evalIntInitializer(decl.Initializer))
		return nil
	case types.Real:
		reg.Set(name, types.Entry{Type: types.Real})
		st.SetReal(name, evalRealInitializer(decl.Initializer))
		return nil
	case types.Time:
		reg.Set(name, types.Entry{Type: types.Time})
		st.SetTime(name, evalTimeInitializer(decl.Initializer))
		return nil
	}

	// Not a primitive or standard FB: must be a user-defined FB type.
	if fbDef, ok := unit.FindFBDef(decl.DataType); ok {
		reg.Set(name, types.Entry{Type: types.UserFB, FBName: decl.DataType})
		inst := st.InitFB(name, decl.DataType)
		return walkVarBlocks(fbDef.VarBlocks, inst.Registry, inst.Store, unit)
	}

	return fmt.Errorf("unknown declared type %q for variable %q", decl.DataType, name)
}

// evalBoolInitializer evaluates a static BOOL initializer (literal only;
// spec.md §4.2 limits static initializers to literals and unary-minus of
// literals, the latter not meaningful for BOOL).
func evalBoolInitializer(e ast.Expr) bool {
	if lit, ok := e.(*ast.Literal); ok && lit.LiteralType == ast.LitBool {
		return lit.Bool
	}
	return false
}

func evalIntInitializer(e ast.Expr) int64 {
	neg := false
	if u, ok := e.(*ast.UnaryExpr); ok && u.Op == ast.OpNegate {
		neg = true
		e = u.X
	}
	if lit, ok := e.(*ast.Literal); ok && lit.LiteralType == ast.LitInt {
		if neg {
			return -lit.Int
		}
		return lit.Int
	}
	return 0
}

func evalRealInitializer(e ast.Expr) float64 {
	neg := false
	if u, ok := e.(*ast.UnaryExpr); ok && u.Op == ast.OpNegate {
		neg = true
		e = u.X
	}
	if lit, ok := e.(*ast.Literal); ok {
		var v float64
		switch lit.LiteralType {
		case ast.LitReal:
			v = lit.Real
		case ast.LitInt:
			v = float64(lit.Int)
		default:
			return 0
		}
		if neg {
			return -v
		}
		return v
	}
	return 0
}

func evalTimeInitializer(e ast.Expr) int64 {
	lit, ok := e.(*ast.Literal)
	if !ok {
		return 0
	}
	if lit.LiteralType == ast.LitTime {
		if lit.Text != "" {
			ms, err := ParseTimeLiteral(lit.Text)
			if err == nil {
				return ms
			}
		}
		return lit.TimeMS
	}
	return 0
}

// ParseTimeLiteral parses an IEC duration literal such as "T#1d2h3m4s5ms"
// into milliseconds. Case-insensitive; the "T#" prefix is optional; units
// may appear in any order; "ms" is always matched before a bare "m" so
// "100ms" is not misread as "100m" + stray "s" (spec.md §6).
func ParseTimeLiteral(text string) (int64, error) {
	s := strings.ToUpper(strings.TrimSpace(text))
	s = strings.TrimPrefix(s, "T#")
	s = strings.TrimPrefix(s, "TIME#")
	if s == "" {
		return 0, fmt.Errorf("initializer: empty TIME literal")
	}

	var total float64
	i := 0
	for i < len(s) {
		start := i
		for i < len(s) && (s[i] == '.' || (s[i] >= '0' && s[i] <= '9')) {
			i++
		}
		if i == start {
			return 0, fmt.Errorf("initializer: malformed TIME literal %q", text)
		}
		numText := s[start:i]
		unitStart := i
		for i < len(s) && (s[i] < '0' || s[i] > '9') && s[i] != '.' {
			i++
		}
		unit := s[unitStart:i]

		n, err := strconv.ParseFloat(numText, 64)
		if err != nil {
			return 0, fmt.Errorf("initializer: malformed TIME literal %q", text)
		}

		switch unit {
		case "D":
			total += n * 86400000
		case "H":
			total += n * 3600000
		case "MS":
			total += n
		case "M":
			total += n * 60000
		case "S":
			total += n * 1000
		default:
			return 0, fmt.Errorf("initializer: unknown TIME unit %q in %q", unit, text)
		}
	}
	return int64(total), nil
}
