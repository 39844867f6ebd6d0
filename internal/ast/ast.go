/*
   AST: the structurally-defined tree this engine consumes.

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

// Package ast defines the AST this engine consumes. No parser lives in
// this module — an external front end is expected to have already turned
// ST source text into this tree (JSON-taggable so cmd/stvm can load one
// from disk without depending on any particular parser's internals).
package ast

// ProgramType distinguishes the three POU kinds. Only PROGRAM bodies are
// run directly by the orchestrator; FUNCTION and FUNCTION_BLOCK POUs are
// invoked through a call.
type ProgramType string

const (
	POUProgram       ProgramType = "PROGRAM"
	POUFunction      ProgramType = "FUNCTION"
	POUFunctionBlock ProgramType = "FUNCTION_BLOCK"
)

// LiteralType tags the kind of a Literal node's value.
type LiteralType string

const (
	LitBool   LiteralType = "BOOL"
	LitInt    LiteralType = "INT"
	LitReal   LiteralType = "REAL"
	LitTime   LiteralType = "TIME"
	LitString LiteralType = "STRING"
)

// Declaration is one name-list entry inside a VarBlock, e.g.
// "a, b : INT := 3;" or "Timer1 : TON;".
type Declaration struct {
	Names       []string `json:"names"`
	DataType    string   `json:"dataType"`
	Initializer Expr     `json:"initializer,omitempty"`
}

// VarBlock is one VAR/VAR_INPUT/VAR_OUTPUT/... block of declarations.
// The distinction between block kinds does not matter to the engine core
// (spec.md §4.2 walks "every VAR block" uniformly); Kind is carried only
// for FB argument-binding, which needs to know which declarations are
// VAR_INPUT/VAR_OUTPUT.
type VarBlock struct {
	Kind         string        `json:"kind"` // VAR, VAR_INPUT, VAR_OUTPUT, VAR_IN_OUT
	Declarations []Declaration `json:"declarations"`
}

// Program is one POU: a PROGRAM, FUNCTION or FUNCTION_BLOCK definition.
type Program struct {
	Name        string      `json:"name"`
	ProgramType ProgramType `json:"programType"`
	VarBlocks   []VarBlock  `json:"varBlocks"`
	Statements  []Stmt      `json:"statements"`
}

// Unit is the root AST node consumed by the initializer/orchestrator.
type Unit struct {
	Programs           []Program  `json:"programs"`
	TopLevelVarBlocks  []VarBlock `json:"topLevelVarBlocks"`
	TopLevelStatements []Stmt     `json:"topLevelStatements"`
}

// FindFBDef returns the FUNCTION_BLOCK Program definition named name, if any.
func (u *Unit) FindFBDef(name string) (*Program, bool) {
	for i := range u.Programs {
		p := &u.Programs[i]
		if p.ProgramType == POUFunctionBlock && p.Name == name {
			return p, true
		}
	}
	return nil, false
}
