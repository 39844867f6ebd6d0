package ast

// JSON decoding for the AST. The tree is produced by an external parser
// (spec.md §1) and consumed here purely as data; every node carries a
// "kind" discriminator so a flat map[string]any-shaped document can be
// turned back into the typed Stmt/Expr trees below. cmd/stvm is the only
// production caller of this path and decode_test.go covers it; the other
// packages' tests build ASTs directly as Go struct literals.

import (
	"encoding/json"
	"fmt"
)

type kinded struct {
	Kind string `json:"kind"`
}

func rawKind(data []byte) (string, error) {
	var k kinded
	if err := json.Unmarshal(data, &k); err != nil {
		return "", err
	}
	if k.Kind == "" {
		return "", fmt.Errorf("ast: node missing \"kind\" field")
	}
	return k.Kind, nil
}

// DecodeExpr turns one JSON-encoded expression node into an Expr.
func DecodeExpr(data []byte) (Expr, error) {
	if len(data) == 0 || string(data) == "null" {
		return nil, nil
	}
	kind, err := rawKind(data)
	if err != nil {
		return nil, err
	}
	switch kind {
	case "Literal":
		var n Literal
		err = json.Unmarshal(data, &n)
		return &n, err
	case "Identifier":
		var n Identifier
		err = json.Unmarshal(data, &n)
		return &n, err
	case "MemberAccess":
		var aux struct {
			Base  json.RawMessage `json:"base"`
			Field string          `json:"field"`
		}
		if err = json.Unmarshal(data, &aux); err != nil {
			return nil, err
		}
		base, err := DecodeExpr(aux.Base)
		if err != nil {
			return nil, err
		}
		return &MemberAccess{Base: base, Field: aux.Field}, nil
	case "UnaryExpr":
		var aux struct {
			Op UnaryOp         `json:"op"`
			X  json.RawMessage `json:"x"`
		}
		if err = json.Unmarshal(data, &aux); err != nil {
			return nil, err
		}
		x, err := DecodeExpr(aux.X)
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{Op: aux.Op, X: x}, nil
	case "BinaryExpr":
		var aux struct {
			Op    BinaryOp        `json:"op"`
			Left  json.RawMessage `json:"left"`
			Right json.RawMessage `json:"right"`
		}
		if err = json.Unmarshal(data, &aux); err != nil {
			return nil, err
		}
		left, err := DecodeExpr(aux.Left)
		if err != nil {
			return nil, err
		}
		right, err := DecodeExpr(aux.Right)
		if err != nil {
			return nil, err
		}
		return &BinaryExpr{Op: aux.Op, Left: left, Right: right}, nil
	case "FbCall":
		call, err := decodeFbCall(data)
		return call, err
	default:
		return nil, fmt.Errorf("ast: unknown expression kind %q", kind)
	}
}

type argAux struct {
	Name  string          `json:"name,omitempty"`
	Value json.RawMessage `json:"value"`
}

func decodeFbCall(data []byte) (*FbCall, error) {
	var aux struct {
		Instance string   `json:"instance"`
		Args     []argAux `json:"args"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return nil, err
	}
	call := &FbCall{Instance: aux.Instance}
	for _, a := range aux.Args {
		v, err := DecodeExpr(a.Value)
		if err != nil {
			return nil, err
		}
		call.Args = append(call.Args, Arg{Name: a.Name, Value: v})
	}
	return call, nil
}

// DecodeStmt turns one JSON-encoded statement node into a Stmt.
func DecodeStmt(data []byte) (Stmt, error) {
	kind, err := rawKind(data)
	if err != nil {
		return nil, err
	}
	switch kind {
	case "Assignment":
		var aux struct {
			Target json.RawMessage `json:"target"`
			Value  json.RawMessage `json:"value"`
		}
		if err = json.Unmarshal(data, &aux); err != nil {
			return nil, err
		}
		target, err := DecodeExpr(aux.Target)
		if err != nil {
			return nil, err
		}
		val, err := DecodeExpr(aux.Value)
		if err != nil {
			return nil, err
		}
		return &Assignment{Target: target, Value: val}, nil
	case "If":
		return decodeIf(data)
	case "Case":
		return decodeCase(data)
	case "For":
		return decodeFor(data)
	case "While":
		var aux struct {
			Cond json.RawMessage   `json:"cond"`
			Body []json.RawMessage `json:"body"`
		}
		if err = json.Unmarshal(data, &aux); err != nil {
			return nil, err
		}
		cond, err := DecodeExpr(aux.Cond)
		if err != nil {
			return nil, err
		}
		body, err := decodeStmtList(aux.Body)
		if err != nil {
			return nil, err
		}
		return &While{Cond: cond, Body: body}, nil
	case "Repeat":
		var aux struct {
			Body []json.RawMessage `json:"body"`
			Cond json.RawMessage   `json:"cond"`
		}
		if err = json.Unmarshal(data, &aux); err != nil {
			return nil, err
		}
		body, err := decodeStmtList(aux.Body)
		if err != nil {
			return nil, err
		}
		cond, err := DecodeExpr(aux.Cond)
		if err != nil {
			return nil, err
		}
		return &Repeat{Body: body, Cond: cond}, nil
	case "Exit":
		return &Exit{}, nil
	case "Continue":
		return &Continue{}, nil
	case "Return":
		return &Return{}, nil
	case "FbCallStmt":
		var aux struct {
			Call json.RawMessage `json:"call"`
		}
		if err = json.Unmarshal(data, &aux); err != nil {
			return nil, err
		}
		call, err := decodeFbCall(aux.Call)
		if err != nil {
			return nil, err
		}
		return &FbCallStmt{Call: *call}, nil
	case "ExprStmt":
		var aux struct {
			X json.RawMessage `json:"x"`
		}
		if err = json.Unmarshal(data, &aux); err != nil {
			return nil, err
		}
		x, err := DecodeExpr(aux.X)
		if err != nil {
			return nil, err
		}
		return &ExprStmt{X: x}, nil
	default:
		return nil, fmt.Errorf("ast: unknown statement kind %q", kind)
	}
}

func decodeStmtList(raws []json.RawMessage) ([]Stmt, error) {
	out := make([]Stmt, 0, len(raws))
	for _, r := range raws {
		s, err := DecodeStmt(r)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func decodeIf(data []byte) (*If, error) {
	var aux struct {
		Cond    json.RawMessage   `json:"cond"`
		Then    []json.RawMessage `json:"then"`
		ElseIfs []struct {
			Cond json.RawMessage   `json:"cond"`
			Then []json.RawMessage `json:"then"`
		} `json:"elseIfs"`
		Else []json.RawMessage `json:"else"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return nil, err
	}
	cond, err := DecodeExpr(aux.Cond)
	if err != nil {
		return nil, err
	}
	then, err := decodeStmtList(aux.Then)
	if err != nil {
		return nil, err
	}
	els, err := decodeStmtList(aux.Else)
	if err != nil {
		return nil, err
	}
	out := &If{Cond: cond, Then: then, Else: els}
	for _, ei := range aux.ElseIfs {
		c, err := DecodeExpr(ei.Cond)
		if err != nil {
			return nil, err
		}
		t, err := decodeStmtList(ei.Then)
		if err != nil {
			return nil, err
		}
		out.ElseIfs = append(out.ElseIfs, ElseIf{Cond: c, Then: t})
	}
	return out, nil
}

func decodeCase(data []byte) (*Case, error) {
	var aux struct {
		Selector json.RawMessage `json:"selector"`
		Cases    []struct {
			Labels []struct {
				Range bool            `json:"range"`
				Lo    json.RawMessage `json:"lo"`
				Hi    json.RawMessage `json:"hi"`
			} `json:"labels"`
			Body []json.RawMessage `json:"body"`
		} `json:"cases"`
		Else []json.RawMessage `json:"else"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return nil, err
	}
	sel, err := DecodeExpr(aux.Selector)
	if err != nil {
		return nil, err
	}
	els, err := decodeStmtList(aux.Else)
	if err != nil {
		return nil, err
	}
	out := &Case{Selector: sel, Else: els}
	for _, c := range aux.Cases {
		body, err := decodeStmtList(c.Body)
		if err != nil {
			return nil, err
		}
		clause := CaseClause{Body: body}
		for _, l := range c.Labels {
			lo, err := DecodeExpr(l.Lo)
			if err != nil {
				return nil, err
			}
			hi, err := DecodeExpr(l.Hi)
			if err != nil {
				return nil, err
			}
			clause.Labels = append(clause.Labels, CaseLabel{Range: l.Range, Lo: lo, Hi: hi})
		}
		out.Cases = append(out.Cases, clause)
	}
	return out, nil
}

func decodeFor(data []byte) (*For, error) {
	var aux struct {
		Var   string            `json:"var"`
		Start json.RawMessage   `json:"start"`
		End   json.RawMessage   `json:"end"`
		Step  json.RawMessage   `json:"step"`
		Body  []json.RawMessage `json:"body"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return nil, err
	}
	start, err := DecodeExpr(aux.Start)
	if err != nil {
		return nil, err
	}
	end, err := DecodeExpr(aux.End)
	if err != nil {
		return nil, err
	}
	step, err := DecodeExpr(aux.Step)
	if err != nil {
		return nil, err
	}
	body, err := decodeStmtList(aux.Body)
	if err != nil {
		return nil, err
	}
	return &For{Var: aux.Var, Start: start, End: end, Step: step, Body: body}, nil
}

// UnmarshalJSON decodes one Declaration, resolving its Initializer's
// polymorphic Expr field.
func (d *Declaration) UnmarshalJSON(data []byte) error {
	var aux struct {
		Names       []string        `json:"names"`
		DataType    string          `json:"dataType"`
		Initializer json.RawMessage `json:"initializer"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	init, err := DecodeExpr(aux.Initializer)
	if err != nil {
		return err
	}
	d.Names = aux.Names
	d.DataType = aux.DataType
	d.Initializer = init
	return nil
}

// UnmarshalJSON decodes one Program, resolving its Statements' polymorphic
// Stmt entries.
func (p *Program) UnmarshalJSON(data []byte) error {
	var aux struct {
		Name        string            `json:"name"`
		ProgramType ProgramType        `json:"programType"`
		VarBlocks   []VarBlock        `json:"varBlocks"`
		Statements  []json.RawMessage `json:"statements"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	stmts, err := decodeStmtList(aux.Statements)
	if err != nil {
		return err
	}
	p.Name = aux.Name
	p.ProgramType = aux.ProgramType
	p.VarBlocks = aux.VarBlocks
	p.Statements = stmts
	return nil
}

// UnmarshalJSON decodes the root Unit document.
func (u *Unit) UnmarshalJSON(data []byte) error {
	var aux struct {
		Programs           []Program         `json:"programs"`
		TopLevelVarBlocks  []VarBlock        `json:"topLevelVarBlocks"`
		TopLevelStatements []json.RawMessage `json:"topLevelStatements"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	stmts, err := decodeStmtList(aux.TopLevelStatements)
	if err != nil {
		return err
	}
	u.Programs = aux.Programs
	u.TopLevelVarBlocks = aux.TopLevelVarBlocks
	u.TopLevelStatements = stmts
	return nil
}
