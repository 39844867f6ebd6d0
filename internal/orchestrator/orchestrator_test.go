package orchestrator

import (
	"testing"

	"github.com/scanloop/stvm/internal/ast"
	"github.com/scanloop/stvm/internal/exec"
	"github.com/scanloop/stvm/internal/runtime"
	"github.com/scanloop/stvm/internal/store"
	"github.com/scanloop/stvm/internal/types"
)

func TestScanSkipsNonProgramPOUsAndTicksTimers(t *testing.T) {
	fbDef := ast.Program{Name: "Helper", ProgramType: ast.POUFunctionBlock, Statements: []ast.Stmt{&ast.Exit{}}}
	main := ast.Program{
		Name: "Main", ProgramType: ast.POUProgram,
		Statements: []ast.Stmt{&ast.Assignment{
			Target: &ast.Identifier{Name: "x"},
			Value:  &ast.Literal{LiteralType: ast.LitInt, Int: 1},
		}},
	}
	unit := &ast.Unit{Programs: []ast.Program{fbDef, main}}

	st := store.New()
	reg := types.NewRegistry()
	reg.Set("x", types.Entry{Type: types.Int})
	reg.Set("T1", types.Entry{Type: types.TimerFB, TimerKind: types.TON})
	st.InitTimer("T1", 100, types.TON)
	st.SetTimerInput("T1", true)

	ctx := &runtime.Context{Store: st, Registry: reg, Unit: unit, ScanMS: 50, RunStatements: exec.Run}
	Scan(ctx, unit)

	if got := st.GetInt("x"); got != 1 {
		t.Errorf("Main program did not run: x got %d wanted 1", got)
	}
	if got := st.GetTimer("T1").ET; got != 50 {
		t.Errorf("timer was not ticked by ScanMS: ET got %d wanted 50", got)
	}
}

func TestScanRunsTopLevelStatements(t *testing.T) {
	unit := &ast.Unit{
		TopLevelStatements: []ast.Stmt{
			&ast.Assignment{Target: &ast.Identifier{Name: "y"}, Value: &ast.Literal{LiteralType: ast.LitInt, Int: 7}},
		},
	}
	st := store.New()
	reg := types.NewRegistry()
	reg.Set("y", types.Entry{Type: types.Int})
	ctx := &runtime.Context{Store: st, Registry: reg, Unit: unit, RunStatements: exec.Run}
	Scan(ctx, unit)
	if got := st.GetInt("y"); got != 7 {
		t.Errorf("top-level statements did not run: y got %d wanted 7", got)
	}
}
