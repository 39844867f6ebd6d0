package fb

import (
	"testing"

	"github.com/scanloop/stvm/internal/ast"
	"github.com/scanloop/stvm/internal/exec"
	"github.com/scanloop/stvm/internal/runtime"
	"github.com/scanloop/stvm/internal/store"
	"github.com/scanloop/stvm/internal/types"
)

func newCtx(unit *ast.Unit) *runtime.Context {
	return &runtime.Context{
		Store:         store.New(),
		Registry:      types.NewRegistry(),
		Unit:          unit,
		RunStatements: exec.Run,
		CallFB:        Call,
	}
}

func boolLit(b bool) *ast.Literal { return &ast.Literal{LiteralType: ast.LitBool, Bool: b} }
func intLit(i int64) *ast.Literal { return &ast.Literal{LiteralType: ast.LitInt, Int: i} }

func TestCallTimerTONNoQOnRisingEdge(t *testing.T) {
	ctx := newCtx(&ast.Unit{})
	ctx.Registry.Set("T1", types.Entry{Type: types.TimerFB, TimerKind: types.TON})
	ctx.Store.InitTimer("T1", 200, types.TON)

	call := &ast.FbCall{Instance: "T1", Args: []ast.Arg{
		{Name: "IN", Value: boolLit(true)},
		{Name: "PT", Value: intLit(200)},
	}}
	Call(ctx, call)
	if ctx.Store.GetTimer("T1").Q {
		t.Errorf("TON.Q true immediately on rising edge with PT>0")
	}
}

func TestCallCounterCTUTracksEdgesAcrossCalls(t *testing.T) {
	ctx := newCtx(&ast.Unit{})
	ctx.Registry.Set("C1", types.Entry{Type: types.CounterFB, CounterKind: types.CTU})
	ctx.Store.InitCounter("C1", 2, types.CTU)

	call := func(cu bool) {
		Call(ctx, &ast.FbCall{Instance: "C1", Args: []ast.Arg{{Name: "CU", Value: boolLit(cu)}}})
	}
	call(true)
	call(false)
	call(true)
	c := ctx.Store.GetCounter("C1")
	if c.CV != 2 {
		t.Errorf("CV got: %d wanted: 2 (two rising edges across three calls)", c.CV)
	}
	if !c.QU {
		t.Errorf("QU got false wanted true (CV reached PV)")
	}
}

func TestCallEdgeRTrig(t *testing.T) {
	ctx := newCtx(&ast.Unit{})
	ctx.Registry.Set("E1", types.Entry{Type: types.RTrigFB})
	ctx.Store.InitEdge("E1", true)

	Call(ctx, &ast.FbCall{Instance: "E1", Args: []ast.Arg{{Name: "CLK", Value: boolLit(false)}}})
	Call(ctx, &ast.FbCall{Instance: "E1", Args: []ast.Arg{{Name: "CLK", Value: boolLit(true)}}})
	if !ctx.Store.GetEdge("E1").Q {
		t.Errorf("R_TRIG did not pulse on rising edge via call binding")
	}
}

func TestCallBistableSR(t *testing.T) {
	ctx := newCtx(&ast.Unit{})
	ctx.Registry.Set("B1", types.Entry{Type: types.BistableFB, BistableKind: types.SR})
	ctx.Store.InitBistable("B1", types.SR)

	Call(ctx, &ast.FbCall{Instance: "B1", Args: []ast.Arg{
		{Name: "S1", Value: boolLit(true)}, {Name: "R", Value: boolLit(false)},
	}})
	if !ctx.Store.GetBistable("B1").Q1 {
		t.Errorf("SR.Q1 not set after S1=true call")
	}
}

func TestCallUserFBBindsArgsAndRunsBody(t *testing.T) {
	fbDef := ast.Program{
		Name:        "Accum",
		ProgramType: ast.POUFunctionBlock,
		VarBlocks: []ast.VarBlock{
			{Kind: "VAR_INPUT", Declarations: []ast.Declaration{{Names: []string{"add"}, DataType: "INT"}}},
			{Kind: "VAR", Declarations: []ast.Declaration{{Names: []string{"total"}, DataType: "INT"}}},
		},
		Statements: []ast.Stmt{
			&ast.Assignment{
				Target: &ast.Identifier{Name: "total"},
				Value:  &ast.BinaryExpr{Op: ast.OpAdd, Left: &ast.Identifier{Name: "total"}, Right: &ast.Identifier{Name: "add"}},
			},
		},
	}
	unit := &ast.Unit{Programs: []ast.Program{fbDef}}
	ctx := newCtx(unit)
	ctx.Registry.Set("Acc1", types.Entry{Type: types.UserFB, FBName: "Accum"})
	inst := ctx.Store.InitFB("Acc1", "Accum")
	inst.Registry.Set("add", types.Entry{Type: types.Int})
	inst.Registry.Set("total", types.Entry{Type: types.Int})

	Call(ctx, &ast.FbCall{Instance: "Acc1", Args: []ast.Arg{{Value: intLit(5)}}})
	Call(ctx, &ast.FbCall{Instance: "Acc1", Args: []ast.Arg{{Value: intLit(3)}}})

	if got := inst.Store.GetInt("total"); got != 8 {
		t.Errorf("total got: %d wanted: 8 (accumulated across two calls)", got)
	}
}
