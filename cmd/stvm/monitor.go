package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/peterh/liner"

	"github.com/scanloop/stvm/internal/engine"
)

// runMonitor is the functional equivalent of the teacher's telnet/stdin
// command loop (main.go), rebased onto the variable store instead of a
// mainframe console: "step" advances one scan, "get <lane> <name>" reads
// a variable, "dump timer <name>" inspects a timer record.
func runMonitor(eng *engine.Engine) {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	fmt.Println("stvm monitor — step, get <bool|int|real|time> <name>, dump timer <name>, quit")
	for {
		cmd, err := line.Prompt("stvm> ")
		if err != nil {
			return
		}
		cmd = strings.TrimSpace(cmd)
		if cmd == "" {
			continue
		}
		line.AppendHistory(cmd)

		switch {
		case cmd == "quit" || cmd == "exit":
			return
		case cmd == "step":
			eng.Scan()
			fmt.Println("ok")
		case strings.HasPrefix(cmd, "get "):
			handleGet(eng, cmd)
		case strings.HasPrefix(cmd, "dump timer "):
			handleDumpTimer(eng, strings.TrimSpace(strings.TrimPrefix(cmd, "dump timer ")))
		default:
			fmt.Println("unrecognized command")
		}
	}
}

func handleGet(eng *engine.Engine, cmd string) {
	fields := strings.Fields(cmd)
	if len(fields) != 3 {
		fmt.Println("usage: get <bool|int|real|time> <name>")
		return
	}
	lane, name := fields[1], fields[2]
	st := eng.Store()
	switch lane {
	case "bool":
		fmt.Println(st.GetBool(name))
	case "int":
		fmt.Println(st.GetInt(name))
	case "real":
		fmt.Println(strconv.FormatFloat(st.GetReal(name), 'g', -1, 64))
	case "time":
		fmt.Println(st.GetTime(name))
	default:
		fmt.Println("unknown lane", lane)
	}
}

func handleDumpTimer(eng *engine.Engine, name string) {
	t := eng.Store().GetTimer(name)
	if t == nil {
		fmt.Println("no such timer:", name)
		return
	}
	fmt.Printf("IN=%v PT=%d ET=%d Q=%v running=%v\n", t.IN, t.PT, t.ET, t.Q, t.Running)
}
