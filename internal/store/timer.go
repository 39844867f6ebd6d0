package store

import "github.com/scanloop/stvm/internal/types"

// Timer update rules (spec.md §4.5). Each function runs from
// Store.UpdateTimer after the caller has staged t.IN via SetTimerInput: with
// deltaMs 0 when the FB is called, and again with the scan period in the
// orchestrator's end-of-scan tick. t.IN's transition relative to PrevIN (the
// IN seen by the previous update) is the edge the rules react to.

func clamp(v, lo, hi int64) int64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func updateTON(t *TimerRecord, deltaMs int64) {
	rising := t.IN && !t.PrevIN
	falling := !t.IN && t.PrevIN

	switch {
	case rising:
		if t.PT <= 0 {
			t.Q = true
			t.Running = false
		} else {
			t.Q = false
			t.ET = 0
			t.Running = true
		}
	case falling:
		t.Running = false
		t.ET = 0
	}

	if t.Running && t.IN {
		t.ET = clamp(t.ET+deltaMs, 0, t.PT)
		if t.ET >= t.PT {
			t.Q = true
			t.Running = false
		}
	}
	if !t.IN && t.Q && !t.Running {
		t.Q = false
	}
	t.PrevIN = t.IN
}

func updateTOF(t *TimerRecord, deltaMs int64) {
	rising := t.IN && !t.PrevIN
	falling := !t.IN && t.PrevIN

	switch {
	case rising:
		t.Q = true
		t.ET = 0
		t.Running = false
	case falling:
		t.Running = true
	}

	if t.Running && !t.IN {
		t.ET = clamp(t.ET+deltaMs, 0, t.PT)
		if t.ET >= t.PT {
			t.Q = false
			t.Running = false
		}
	}
	t.PrevIN = t.IN
}

func updateTP(t *TimerRecord, deltaMs int64) {
	rising := t.IN && !t.PrevIN
	if rising && !t.Q {
		t.Q = true
		t.ET = 0
		t.Running = true
	}
	if t.Running {
		t.ET = clamp(t.ET+deltaMs, 0, t.PT)
		if t.ET >= t.PT {
			t.Q = false
			t.Running = false
		}
	}
	t.PrevIN = t.IN
}

// updateCounter applies one scan's CU/CD/R/LD transitions. R dominates LD
// for CTUD; a simultaneous CU and CD rising edge on the same scan is a
// documented no-net-change tie-break (DESIGN.md Open Questions). CTU/CTUD
// up-counting saturates at PV — a rising CU edge once CV has reached PV is
// a no-op, per spec.md §8's scenario #3 (DESIGN.md Open Questions).
func updateCounter(c *CounterRecord, prevCU, prevCD bool) {
	cuEdge := c.CU && !prevCU
	cdEdge := c.CD && !prevCD

	switch c.Kind {
	case types.CTU:
		if c.R {
			c.CV = 0
		} else if cuEdge && c.CV < c.PV {
			c.CV++
		}
		c.QU = c.CV >= c.PV
	case types.CTD:
		if c.LD {
			c.CV = c.PV
		} else if cdEdge {
			c.CV--
			if c.CV < 0 {
				c.CV = 0
			}
		}
		c.QD = c.CV <= 0
	case types.CTUD:
		switch {
		case c.R:
			c.CV = 0
		case cuEdge && cdEdge:
			// no net change
		case c.LD:
			c.CV = c.PV
		case cuEdge && c.CV < c.PV:
			c.CV++
		case cdEdge:
			c.CV--
			if c.CV < 0 {
				c.CV = 0
			}
		}
		c.QU = c.CV >= c.PV
		c.QD = c.CV <= 0
	}
}
