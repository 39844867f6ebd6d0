package initializer

import (
	"testing"

	"github.com/scanloop/stvm/internal/ast"
	"github.com/scanloop/stvm/internal/types"
)

func TestParseTimeLiteralMixedUnits(t *testing.T) {
	cases := map[string]int64{
		"T#1d2h3m4s5ms": 1*86400000 + 2*3600000 + 3*60000 + 4*1000 + 5,
		"100MS":         100,
		"1M":            60000,
		"1H30M":         1*3600000 + 30*60000,
		"t#500ms":       500,
	}
	for text, want := range cases {
		got, err := ParseTimeLiteral(text)
		if err != nil {
			t.Errorf("ParseTimeLiteral(%q) unexpected error: %v", text, err)
			continue
		}
		if got != want {
			t.Errorf("ParseTimeLiteral(%q) got: %d wanted: %d", text, got, want)
		}
	}
}

func TestParseTimeLiteralRejectsUnknownUnit(t *testing.T) {
	if _, err := ParseTimeLiteral("T#1y"); err == nil {
		t.Errorf("ParseTimeLiteral(T#1y) did not return an error for an unknown unit")
	}
}

func TestRunDeclaresPrimitivesWithInitializers(t *testing.T) {
	unit := &ast.Unit{
		TopLevelVarBlocks: []ast.VarBlock{
			{Kind: "VAR", Declarations: []ast.Declaration{
				{Names: []string{"count"}, DataType: "INT", Initializer: &ast.Literal{LiteralType: ast.LitInt, Int: 5}},
				{Names: []string{"ratio"}, DataType: "REAL", Initializer: &ast.UnaryExpr{Op: ast.OpNegate, X: &ast.Literal{LiteralType: ast.LitReal, Real: 2.5}}},
				{Names: []string{"flag"}, DataType: "BOOL"},
			}},
		},
	}
	reg, st, err := Run(unit)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if entry, ok := reg.Lookup("count"); !ok || entry.Type != types.Int {
		t.Errorf("count not classified as Int")
	}
	if got := st.GetInt("count"); got != 5 {
		t.Errorf("count got: %d wanted: 5", got)
	}
	if got := st.GetReal("ratio"); got != -2.5 {
		t.Errorf("ratio got: %v wanted: -2.5", got)
	}
	if got := st.GetBool("flag"); got != false {
		t.Errorf("flag got: %v wanted: false (default)", got)
	}
}

func TestRunInstantiatesStandardFBs(t *testing.T) {
	unit := &ast.Unit{
		TopLevelVarBlocks: []ast.VarBlock{
			{Kind: "VAR", Declarations: []ast.Declaration{
				{Names: []string{"Timer1"}, DataType: "TON"},
				{Names: []string{"Counter1"}, DataType: "CTU"},
			}},
		},
	}
	reg, st, err := Run(unit)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if entry, ok := reg.Lookup("Timer1"); !ok || entry.Type != types.TimerFB || entry.TimerKind != types.TON {
		t.Errorf("Timer1 not classified as TON TimerFB: %+v", entry)
	}
	if st.GetTimer("Timer1") == nil {
		t.Errorf("Timer1 instance not created in store")
	}
	if entry, ok := reg.Lookup("Counter1"); !ok || entry.Type != types.CounterFB || entry.CounterKind != types.CTU {
		t.Errorf("Counter1 not classified as CTU CounterFB: %+v", entry)
	}
}

func TestRunRecursesIntoUserFBInstance(t *testing.T) {
	unit := &ast.Unit{
		Programs: []ast.Program{
			{
				Name:        "Accum",
				ProgramType: ast.POUFunctionBlock,
				VarBlocks: []ast.VarBlock{
					{Kind: "VAR", Declarations: []ast.Declaration{
						{Names: []string{"total"}, DataType: "INT"},
					}},
				},
			},
		},
		TopLevelVarBlocks: []ast.VarBlock{
			{Kind: "VAR", Declarations: []ast.Declaration{
				{Names: []string{"Acc1"}, DataType: "Accum"},
			}},
		},
	}
	reg, st, err := Run(unit)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	entry, ok := reg.Lookup("Acc1")
	if !ok || entry.Type != types.UserFB || entry.FBName != "Accum" {
		t.Errorf("Acc1 not classified as UserFB(Accum): %+v", entry)
	}
	inst := st.GetFB("Acc1")
	if inst == nil {
		t.Fatalf("Acc1 instance not created")
	}
	if _, ok := inst.Registry.Lookup("total"); !ok {
		t.Errorf("Acc1's inner registry did not declare its nested 'total' field")
	}
}

func TestRunErrorsOnUnknownType(t *testing.T) {
	unit := &ast.Unit{
		TopLevelVarBlocks: []ast.VarBlock{
			{Kind: "VAR", Declarations: []ast.Declaration{
				{Names: []string{"x"}, DataType: "NOT_A_TYPE"},
			}},
		},
	}
	if _, _, err := Run(unit); err == nil {
		t.Errorf("Run did not error on an unknown declared type")
	}
}
