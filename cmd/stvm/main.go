/*
 * stvm - Main process.
 *
 * Copyright 2024, Richard Cornwell
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	getopt "github.com/pborman/getopt/v2"

	"github.com/scanloop/stvm/internal/ast"
	"github.com/scanloop/stvm/internal/engconfig"
	"github.com/scanloop/stvm/internal/engine"
	"github.com/scanloop/stvm/internal/scanlog"
)

var Logger *slog.Logger

func main() {
	optProgram := getopt.StringLong("program", 'p', "", "JSON-encoded program AST to load")
	optConfig := getopt.StringLong("config", 'c', "", "Engine configuration file")
	optLogFile := getopt.StringLong("log", 'l', "", "Log file")
	optScanMS := getopt.Int64Long("scan-ms", 0, 0, "Scan period in milliseconds (overrides config)")
	optTrace := getopt.BoolLong("trace", 't', "Enable debug tracing to stderr")
	optMonitor := getopt.BoolLong("monitor", 'm', "Drop into the interactive monitor after loading")
	optHelp := getopt.BoolLong("help", 'h', "Help")
	getopt.Parse()

	if *optHelp {
		getopt.Usage()
		os.Exit(0)
	}

	var file *os.File
	if *optLogFile != "" {
		file, _ = os.Create(*optLogFile)
	}
	out := file
	var writer = scanlog.Discard
	if out != nil {
		writer = out
	}
	programLevel := new(slog.LevelVar)
	programLevel.Set(slog.LevelDebug)
	Logger = slog.New(scanlog.NewHandler(writer, &slog.HandlerOptions{Level: programLevel}, *optTrace))
	slog.SetDefault(Logger)

	Logger.Info("stvm started")

	if *optProgram == "" {
		Logger.Error("please specify a program AST with --program")
		os.Exit(1)
	}

	cfg := engconfig.Default()
	if *optConfig != "" {
		f, err := os.Open(*optConfig)
		if err != nil {
			Logger.Error(err.Error())
			os.Exit(1)
		}
		cfg, err = engconfig.Parse(f, cfg)
		f.Close()
		if err != nil {
			Logger.Error(err.Error())
			os.Exit(1)
		}
	}
	if *optScanMS > 0 {
		cfg.ScanMS = *optScanMS
	}

	unit, err := loadUnit(*optProgram)
	if err != nil {
		Logger.Error(err.Error())
		os.Exit(1)
	}

	eng := engine.New(cfg, Logger)
	if err := eng.Initialize(unit); err != nil {
		Logger.Error(err.Error())
		os.Exit(1)
	}

	if *optMonitor {
		runMonitor(eng)
		return
	}

	runFreeRunning(eng, cfg)
}

func loadUnit(path string) (*ast.Unit, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var unit ast.Unit
	if err := json.Unmarshal(data, &unit); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &unit, nil
}

// runFreeRunning scans at cfg.ScanMS intervals until SIGINT/SIGTERM,
// mirroring the teacher's goroutine-plus-signal-channel shutdown shape
// (main.go) collapsed onto a single-threaded scan loop per spec.md §5.
func runFreeRunning(eng *engine.Engine, cfg engconfig.EngineConfig) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	period := time.Duration(cfg.ScanMS) * time.Millisecond
	if period <= 0 {
		period = 100 * time.Millisecond
	}
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case <-sigChan:
			Logger.Info("shutting down")
			return
		case <-ticker.C:
			eng.Scan()
		}
	}
}
