package netcdf3

import "testing"

func TestDimensionsAdd(t *testing.T) {
	d := newDimensions()
	if err := d.add("x", 10); err != nil {
		t.Fatalf("add: %v", err)
	}
	if d.Len() != 1 || d.Name(0) != "x" || d.Length(0) != 10 {
		t.Fatalf("unexpected table state after add")
	}
	if err := d.add("x", 5); err == nil {
		t.Fatalf("expected DimensionAlreadyExists")
	} else if e := err.(*Error); e.Kind != ErrKindDimensionAlreadyExists {
		t.Errorf("Kind = %v, want ErrKindDimensionAlreadyExists", e.Kind)
	}
}

func TestDimensionsInvalidSize(t *testing.T) {
	d := newDimensions()
	for _, n := range []int32{0, -2, MaxDimSize + 1} {
		if err := d.add("x", n); err == nil {
			t.Fatalf("length %d: expected InvalidDimensionSize", n)
		}
	}
}

func TestDimensionsUnlimitedOnce(t *testing.T) {
	d := newDimensions()
	if err := d.add("time", Unlimited); err != nil {
		t.Fatalf("add unlimited: %v", err)
	}
	if err := d.add("time2", Unlimited); err == nil {
		t.Fatalf("expected UnlimitedAlreadyDefined")
	} else if e := err.(*Error); e.Kind != ErrKindUnlimitedAlreadyDefined {
		t.Errorf("Kind = %v, want ErrKindUnlimitedAlreadyDefined", e.Kind)
	}
	if d.UnlimitedIndex() != 0 {
		t.Errorf("UnlimitedIndex = %d, want 0", d.UnlimitedIndex())
	}
}

func TestDimensionsRemoveShiftsUnlimitedIndex(t *testing.T) {
	d := newDimensions()
	mustAdd(t, d, "x", 3)
	mustAdd(t, d, "time", Unlimited)
	if d.UnlimitedIndex() != 1 {
		t.Fatalf("UnlimitedIndex = %d, want 1", d.UnlimitedIndex())
	}
	d.remove(0)
	if d.UnlimitedIndex() != 0 {
		t.Fatalf("after removing index 0, UnlimitedIndex = %d, want 0", d.UnlimitedIndex())
	}
}

func mustAdd(t *testing.T, d *Dimensions, name string, length int32) {
	t.Helper()
	if err := d.add(name, length); err != nil {
		t.Fatalf("add(%q, %d): %v", name, length, err)
	}
}
