package value

import "testing"

func TestAsIntFloorsReal(t *testing.T) {
	v := MakeReal(-1.5)
	if got := v.AsInt(); got != -2 {
		t.Errorf("AsInt() of -1.5 got: %d wanted: -2", got)
	}
	v = MakeReal(3.9)
	if got := v.AsInt(); got != 3 {
		t.Errorf("AsInt() of 3.9 got: %d wanted: 3", got)
	}
}

func TestEqualNumericCrossKind(t *testing.T) {
	if !Equal(MakeInt(5), MakeReal(5.0)) {
		t.Errorf("Equal(5, 5.0) got false wanted true")
	}
	if Equal(MakeInt(5), MakeReal(5.5)) {
		t.Errorf("Equal(5, 5.5) got true wanted false")
	}
}

func TestEqualStructural(t *testing.T) {
	if !Equal(MakeBool(true), MakeBool(true)) {
		t.Errorf("Equal(true, true) got false wanted true")
	}
	if Equal(MakeBool(true), MakeBool(false)) {
		t.Errorf("Equal(true, false) got true wanted false")
	}
}

func TestCompare(t *testing.T) {
	if Compare(MakeInt(1), MakeInt(2)) != -1 {
		t.Errorf("Compare(1, 2) did not return -1")
	}
	if Compare(MakeInt(2), MakeInt(1)) != 1 {
		t.Errorf("Compare(2, 1) did not return 1")
	}
	if Compare(MakeInt(1), MakeInt(1)) != 0 {
		t.Errorf("Compare(1, 1) did not return 0")
	}
}

func TestZeroDefaults(t *testing.T) {
	if Zero(Bool).AsBool() != false {
		t.Errorf("Zero(Bool) was not FALSE")
	}
	if Zero(Int).AsInt() != 0 {
		t.Errorf("Zero(Int) was not 0")
	}
	if Zero(Real).AsFloat() != 0 {
		t.Errorf("Zero(Real) was not 0.0")
	}
	if Zero(Time).AsInt() != 0 {
		t.Errorf("Zero(Time) was not 0")
	}
}
