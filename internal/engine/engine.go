/*
   Engine facade: the composition root wiring store, registry, executor,
   evaluator, FB runtime and orchestrator into one driveable unit.

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

// Package engine is the small wiring surface cmd/stvm and tests drive: it
// owns a Store, a types.Registry and an EngineConfig, and exposes New,
// Initialize and Scan. This is the composition root that, in the teacher
// lineage, was spread across main.go and emu/core.
package engine

import (
	"log/slog"

	"github.com/scanloop/stvm/internal/ast"
	"github.com/scanloop/stvm/internal/engconfig"
	"github.com/scanloop/stvm/internal/exec"
	"github.com/scanloop/stvm/internal/fb"
	"github.com/scanloop/stvm/internal/initializer"
	"github.com/scanloop/stvm/internal/orchestrator"
	"github.com/scanloop/stvm/internal/runtime"
	"github.com/scanloop/stvm/internal/store"
	"github.com/scanloop/stvm/internal/types"
)

// Engine owns one program's runtime state and is safe to reuse across
// scans; it is not safe for concurrent use by multiple goroutines
// (spec.md §5).
type Engine struct {
	cfg    engconfig.EngineConfig
	unit   *ast.Unit
	store  *store.Store
	reg    *types.Registry
	ctx    *runtime.Context
	logger *slog.Logger
}

// New returns an Engine with the given config and an optional logger (nil
// uses slog.Default()).
func New(cfg engconfig.EngineConfig, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{cfg: cfg, logger: logger}
}

// Initialize walks unit's declarations, builds the registry and store,
// and prepares a Context wired for scanning. Must be called before Scan.
func (e *Engine) Initialize(unit *ast.Unit) error {
	reg, st, err := initializer.Run(unit)
	if err != nil {
		return err
	}
	e.unit = unit
	e.reg = reg
	e.store = st
	e.ctx = &runtime.Context{
		Store:         st,
		Registry:      reg,
		Unit:          unit,
		ScanMS:        e.cfg.ScanMS,
		IterCap:       e.cfg.IterCap,
		RunStatements: exec.Run,
		CallFB:        fb.Call,
	}
	e.logger.Debug("engine initialized", "programs", len(unit.Programs))
	return nil
}

// Scan runs one scan cycle. Initialize must have been called first.
func (e *Engine) Scan() {
	orchestrator.Scan(e.ctx, e.unit)
}

// ClearAll resets every store lane, discarding all FB instance state,
// and re-seeds the store from the unit's declarations exactly as
// Initialize did. The type registry is rebuilt identically since it is
// derived purely from the AST (spec.md §5: "immutable after
// initialization"). When cfg.PersistEdgeMirrors is set, the previous
// store's argument edge-detection history carries over into the rebuilt
// store, so an edge-sensitive FB argument does not see a spurious rising
// edge on the first scan after a clear.
func (e *Engine) ClearAll() error {
	var mirrors map[string]bool
	if e.cfg.PersistEdgeMirrors && e.store != nil {
		mirrors = e.store.EdgeMirrors()
	}
	if err := e.Initialize(e.unit); err != nil {
		return err
	}
	if mirrors != nil {
		e.store.AdoptEdgeMirrors(mirrors)
	}
	return nil
}

// Store exposes the underlying variable store for callers (cmd/stvm's
// monitor) that need read access to variable values.
func (e *Engine) Store() *store.Store { return e.store }

// Registry exposes the type registry, e.g. so a monitor can report a
// variable's declared type.
func (e *Engine) Registry() *types.Registry { return e.reg }

// Config returns the engine's tunables.
func (e *Engine) Config() engconfig.EngineConfig { return e.cfg }
