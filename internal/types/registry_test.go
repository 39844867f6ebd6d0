package types

import "testing"

func TestClassifyIntFamily(t *testing.T) {
	for _, name := range []string{"INT", "dint", "SINT", "LINT", "UINT", "UDINT", "USINT", "ULINT"} {
		if got := Classify(name); got != Int {
			t.Errorf("Classify(%q) got: %v wanted: INT", name, got)
		}
	}
}

func TestClassifyRealFamily(t *testing.T) {
	if Classify("REAL") != Real {
		t.Errorf("Classify(REAL) did not return Real")
	}
	if Classify("LREAL") != Real {
		t.Errorf("Classify(LREAL) did not return Real")
	}
}

func TestClassifyUnknown(t *testing.T) {
	if got := Classify("TON"); got != Unknown {
		t.Errorf("Classify(TON) got: %v wanted: Unknown", got)
	}
}

func TestClassifyTimerKind(t *testing.T) {
	cases := map[string]TimerKind{"ton": TON, "TOF": TOF, "Tp": TP}
	for name, want := range cases {
		got, ok := ClassifyTimerKind(name)
		if !ok || got != want {
			t.Errorf("ClassifyTimerKind(%q) got: %v, %v wanted: %v, true", name, got, ok, want)
		}
	}
	if _, ok := ClassifyTimerKind("CTU"); ok {
		t.Errorf("ClassifyTimerKind(CTU) unexpectedly matched")
	}
}

func TestClassifyBistableKind(t *testing.T) {
	if k, ok := ClassifyBistableKind("sr"); !ok || k != SR {
		t.Errorf("ClassifyBistableKind(sr) got: %v, %v wanted: SR, true", k, ok)
	}
	if k, ok := ClassifyBistableKind("RS"); !ok || k != RS {
		t.Errorf("ClassifyBistableKind(RS) got: %v, %v wanted: RS, true", k, ok)
	}
}

func TestRegistrySetLookup(t *testing.T) {
	r := NewRegistry()
	r.Set("x", Entry{Type: Int})
	entry, ok := r.Lookup("x")
	if !ok || entry.Type != Int {
		t.Errorf("Lookup(x) got: %v, %v wanted: Int, true", entry, ok)
	}
	if _, ok := r.Lookup("missing"); ok {
		t.Errorf("Lookup(missing) unexpectedly found an entry")
	}
}
