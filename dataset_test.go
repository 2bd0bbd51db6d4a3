package netcdf3

import "testing"

func TestDataSetAddVarRejectsUnknownDimension(t *testing.T) {
	ds := NewDataSet()
	if _, err := ds.AddVar("v", Int32, []string{"nope"}); err == nil {
		t.Fatalf("expected InvalidDimensionList")
	} else if e := err.(*Error); e.Kind != ErrKindInvalidDimensionList {
		t.Errorf("Kind = %v, want ErrKindInvalidDimensionList", e.Kind)
	}
}

func TestDataSetAddVarRejectsNonOuterUnlimited(t *testing.T) {
	ds := NewDataSet()
	mustDim(t, ds, "time", Unlimited)
	mustDim(t, ds, "x", 3)
	if _, err := ds.AddVar("v", Int32, []string{"x", "time"}); err == nil {
		t.Fatalf("expected InvalidDimensionList for non-outer unlimited dimension")
	}
}

func TestDataSetRemoveDimInUse(t *testing.T) {
	ds := NewDataSet()
	mustDim(t, ds, "x", 3)
	if _, err := ds.AddVar("v", Int32, []string{"x"}); err != nil {
		t.Fatalf("AddVar: %v", err)
	}

	// removing a dimension still referenced by a variable must fail; removing
	// the variable first, then the dimension, must succeed.
	if err := ds.RemoveDim("x"); err == nil {
		t.Fatalf("expected DimensionInUse")
	} else if e := err.(*Error); e.Kind != ErrKindDimensionInUse {
		t.Errorf("Kind = %v, want ErrKindDimensionInUse", e.Kind)
	}
	if err := ds.RemoveVar("v"); err != nil {
		t.Fatalf("RemoveVar: %v", err)
	}
	if err := ds.RemoveDim("x"); err != nil {
		t.Fatalf("RemoveDim after RemoveVar: %v", err)
	}
}

func TestDataSetRemoveDimShiftsVariableIndices(t *testing.T) {
	ds := NewDataSet()
	mustDim(t, ds, "a", 2)
	mustDim(t, ds, "b", 3)
	mustDim(t, ds, "c", 4)
	v, err := ds.AddVar("v", Int32, []string{"a", "c"})
	if err != nil {
		t.Fatalf("AddVar: %v", err)
	}
	if err := ds.RemoveDim("b"); err != nil {
		t.Fatalf("RemoveDim: %v", err)
	}
	// "c" used to be index 2, now index 1, after removing "b" at index 1.
	if v.DimIndex(1) != 1 {
		t.Errorf("after removing middle dim, v's second dim index = %d, want 1", v.DimIndex(1))
	}
	if ds.Dims().Name(int(v.DimIndex(1))) != "c" {
		t.Errorf("v's second dimension now resolves to %q, want \"c\"", ds.Dims().Name(int(v.DimIndex(1))))
	}
}

func TestDataSetAddVarRejectsDuplicateName(t *testing.T) {
	ds := NewDataSet()
	mustDim(t, ds, "x", 1)
	if _, err := ds.AddVar("v", Int32, []string{"x"}); err != nil {
		t.Fatalf("AddVar: %v", err)
	}
	if _, err := ds.AddVar("v", Int32, []string{"x"}); err == nil {
		t.Fatalf("expected VariableAlreadyExists")
	}
}

func TestDataSetInvalidNameLeavesNoState(t *testing.T) {
	ds := NewDataSet()
	if _, err := ds.AddDim("a/b", 3); err == nil {
		t.Fatalf("expected InvalidName")
	}
	if ds.Dims().Len() != 0 {
		t.Fatalf("failed AddDim left state behind: Len() = %d", ds.Dims().Len())
	}
}

func mustDim(t *testing.T, ds *DataSet, name string, length int32) {
	t.Helper()
	var err error
	if length == Unlimited {
		_, err = ds.AddUnlimitedDim(name)
	} else {
		_, err = ds.AddDim(name, length)
	}
	if err != nil {
		t.Fatalf("adding dimension %q: %v", name, err)
	}
}
