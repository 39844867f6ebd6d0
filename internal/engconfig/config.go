/*
   Engine configuration file parser.

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

// Package engconfig holds the engine-level tunables that sit outside the
// AST: scan period, the WHILE/REPEAT iteration cap, and whether implicit
// edge mirrors persist across ClearAll. Config files are the same
// hand-rolled line grammar the teacher lineage uses for its own config
// file — '#' comments, blank lines ignored, "name = value" per line — no
// reflection-based decoding library is introduced (see DESIGN.md).
package engconfig

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// EngineConfig carries the tunables an embedder may override.
type EngineConfig struct {
	// ScanMS is the scan period in milliseconds passed to the
	// orchestrator's timer tick each scan.
	ScanMS int64
	// IterCap bounds WHILE/REPEAT iterations per loop entry.
	IterCap int
	// PersistEdgeMirrors keeps (instance, input) edge-mirror state across
	// ClearAll when true; the default, false, matches spec.md's "clear_all
	// resets all lanes" taken literally.
	PersistEdgeMirrors bool
}

// Default returns the engine's built-in tunables.
func Default() EngineConfig {
	return EngineConfig{ScanMS: 100, IterCap: 10000, PersistEdgeMirrors: false}
}

// option is one recognized "name = value" config line.
type option struct {
	name  string
	apply func(cfg *EngineConfig, value string) error
}

var options = []option{
	{"scan-ms", func(cfg *EngineConfig, v string) error {
		ms, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return fmt.Errorf("scan-ms: %w", err)
		}
		cfg.ScanMS = ms
		return nil
	}},
	{"iter-cap", func(cfg *EngineConfig, v string) error {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("iter-cap: %w", err)
		}
		cfg.IterCap = n
		return nil
	}},
	{"persist-edge-mirrors", func(cfg *EngineConfig, v string) error {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("persist-edge-mirrors: %w", err)
		}
		cfg.PersistEdgeMirrors = b
		return nil
	}},
}

func lookupOption(name string) (option, bool) {
	for _, o := range options {
		if o.name == name {
			return o, true
		}
	}
	return option{}, false
}

// Parse reads a config file in the "name = value" line grammar, starting
// from cfg's current values (normally engconfig.Default()). '#' starts a
// comment; blank lines are ignored.
func Parse(r io.Reader, cfg EngineConfig) (EngineConfig, error) {
	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		name, value, ok := strings.Cut(line, "=")
		if !ok {
			return cfg, fmt.Errorf("engconfig: line %d: missing '='", lineNum)
		}
		name = strings.ToLower(strings.TrimSpace(name))
		opt, ok := lookupOption(name)
		if !ok {
			return cfg, fmt.Errorf("engconfig: line %d: unknown option %q", lineNum, name)
		}
		if err := opt.apply(&cfg, value); err != nil {
			return cfg, fmt.Errorf("engconfig: line %d: %w", lineNum, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
