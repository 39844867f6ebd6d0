package ast

import "testing"

func TestDecodeExprLiteralAndBinary(t *testing.T) {
	data := []byte(`{
		"kind": "BinaryExpr",
		"op": "+",
		"left": {"kind": "Literal", "literalType": "INT", "int": 2},
		"right": {"kind": "Identifier", "name": "x"}
	}`)
	expr, err := DecodeExpr(data)
	if err != nil {
		t.Fatalf("DecodeExpr error: %v", err)
	}
	bin, ok := expr.(*BinaryExpr)
	if !ok {
		t.Fatalf("expr got %T wanted *BinaryExpr", expr)
	}
	if bin.Op != OpAdd {
		t.Errorf("op got: %v wanted: %v", bin.Op, OpAdd)
	}
	lit, ok := bin.Left.(*Literal)
	if !ok || lit.Int != 2 {
		t.Errorf("left got: %+v wanted Literal{Int:2}", bin.Left)
	}
	id, ok := bin.Right.(*Identifier)
	if !ok || id.Name != "x" {
		t.Errorf("right got: %+v wanted Identifier{x}", bin.Right)
	}
}

func TestDecodeExprUnknownKindErrors(t *testing.T) {
	if _, err := DecodeExpr([]byte(`{"kind": "Bogus"}`)); err == nil {
		t.Errorf("DecodeExpr did not error on an unknown kind")
	}
}

func TestDecodeExprMemberAccessChain(t *testing.T) {
	data := []byte(`{
		"kind": "MemberAccess",
		"base": {"kind": "Identifier", "name": "T1"},
		"field": "Q"
	}`)
	expr, err := DecodeExpr(data)
	if err != nil {
		t.Fatalf("DecodeExpr error: %v", err)
	}
	ma, ok := expr.(*MemberAccess)
	if !ok || ma.Field != "Q" {
		t.Fatalf("got %+v wanted MemberAccess{Field: Q}", expr)
	}
}

func TestDecodeStmtIfWithElseIfs(t *testing.T) {
	data := []byte(`{
		"kind": "If",
		"cond": {"kind": "Literal", "literalType": "BOOL", "bool": true},
		"then": [{"kind": "Exit"}],
		"elseIfs": [{
			"cond": {"kind": "Literal", "literalType": "BOOL", "bool": false},
			"then": [{"kind": "Continue"}]
		}],
		"else": [{"kind": "Return"}]
	}`)
	stmt, err := DecodeStmt(data)
	if err != nil {
		t.Fatalf("DecodeStmt error: %v", err)
	}
	ifs, ok := stmt.(*If)
	if !ok {
		t.Fatalf("got %T wanted *If", stmt)
	}
	if len(ifs.Then) != 1 || len(ifs.ElseIfs) != 1 || len(ifs.Else) != 1 {
		t.Errorf("If shape got then=%d elseIfs=%d else=%d wanted 1,1,1", len(ifs.Then), len(ifs.ElseIfs), len(ifs.Else))
	}
}

func TestUnmarshalUnitRoundTrip(t *testing.T) {
	data := []byte(`{
		"programs": [{
			"name": "Main",
			"programType": "PROGRAM",
			"varBlocks": [{
				"kind": "VAR",
				"declarations": [{"names": ["x"], "dataType": "INT", "initializer": {"kind": "Literal", "literalType": "INT", "int": 3}}]
			}],
			"statements": [{
				"kind": "Assignment",
				"target": {"kind": "Identifier", "name": "x"},
				"value": {"kind": "Literal", "literalType": "INT", "int": 9}
			}]
		}],
		"topLevelVarBlocks": [],
		"topLevelStatements": [{"kind": "ExprStmt", "x": {"kind": "Identifier", "name": "x"}}]
	}`)
	var unit Unit
	if err := unit.UnmarshalJSON(data); err != nil {
		t.Fatalf("UnmarshalJSON error: %v", err)
	}
	if len(unit.Programs) != 1 || unit.Programs[0].Name != "Main" {
		t.Fatalf("Programs got %+v", unit.Programs)
	}
	if len(unit.Programs[0].Statements) != 1 {
		t.Errorf("Main statements got %d wanted 1", len(unit.Programs[0].Statements))
	}
	decl := unit.Programs[0].VarBlocks[0].Declarations[0]
	lit, ok := decl.Initializer.(*Literal)
	if !ok || lit.Int != 3 {
		t.Errorf("declaration initializer got %+v wanted Literal{Int:3}", decl.Initializer)
	}
	if len(unit.TopLevelStatements) != 1 {
		t.Errorf("TopLevelStatements got %d wanted 1", len(unit.TopLevelStatements))
	}
}
