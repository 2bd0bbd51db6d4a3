package netcdf3

import "testing"

func TestVariableRecordGeometry(t *testing.T) {
	ds := NewDataSet()
	if _, err := ds.AddUnlimitedDim("time"); err != nil {
		t.Fatalf("AddUnlimitedDim: %v", err)
	}
	if _, err := ds.AddDim("x", 3); err != nil {
		t.Fatalf("AddDim: %v", err)
	}

	tVar, err := ds.AddVar("t", Float32, []string{"time"})
	if err != nil {
		t.Fatalf("AddVar t: %v", err)
	}
	pVar, err := ds.AddVar("p", Int16, []string{"time", "x"})
	if err != nil {
		t.Fatalf("AddVar p: %v", err)
	}

	if !tVar.IsRecordVariable() || !pVar.IsRecordVariable() {
		t.Fatalf("both t and p should be record variables")
	}
	if tVar.rawChunk != 4 {
		t.Errorf("t.rawChunk = %d, want 4", tVar.rawChunk)
	}
	if pVar.rawChunk != 6 {
		t.Errorf("p.rawChunk = %d, want 6", pVar.rawChunk)
	}
	if tVar.ElementCount() != 1 {
		t.Errorf("t.ElementCount() = %d, want 1", tVar.ElementCount())
	}
	if pVar.ElementCount() != 3 {
		t.Errorf("p.ElementCount() = %d, want 3", pVar.ElementCount())
	}

	if err := ds.Finalize(); err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	if got, want := ds.RecordSize(), int64(4+8); got != want {
		t.Errorf("RecordSize() = %d, want %d (pad4(4)+pad4(6))", got, want)
	}
}

func TestVariableFixedVariableNotRecord(t *testing.T) {
	ds := NewDataSet()
	if _, err := ds.AddDim("x", 4); err != nil {
		t.Fatalf("AddDim: %v", err)
	}
	v, err := ds.AddVar("data", Float64, []string{"x"})
	if err != nil {
		t.Fatalf("AddVar: %v", err)
	}
	if v.IsRecordVariable() {
		t.Fatalf("data should not be a record variable")
	}
	if v.rawChunk != 32 {
		t.Errorf("rawChunk = %d, want 32 (4 * 8 bytes)", v.rawChunk)
	}
}

func TestFillValueDefault(t *testing.T) {
	ds := NewDataSet()
	if _, err := ds.AddDim("x", 2); err != nil {
		t.Fatalf("AddDim: %v", err)
	}
	v, err := ds.AddVar("data", Float32, []string{"x"})
	if err != nil {
		t.Fatalf("AddVar: %v", err)
	}
	fv, ok := v.fillValue().(float32)
	if !ok {
		t.Fatalf("fillValue() type = %T, want float32", v.fillValue())
	}
	if fv != float32(9.9692099683868690e+36) {
		t.Errorf("fillValue() = %v, want the format default", fv)
	}
}

func TestFillValueFromAttribute(t *testing.T) {
	ds := NewDataSet()
	if _, err := ds.AddDim("x", 2); err != nil {
		t.Fatalf("AddDim: %v", err)
	}
	v, err := ds.AddVar("data", Float32, []string{"x"})
	if err != nil {
		t.Fatalf("AddVar: %v", err)
	}
	if err := ds.AddAttr("data", "_FillValue", NewFloat32Value([]float32{-999})); err != nil {
		t.Fatalf("AddAttr: %v", err)
	}
	if fv := v.fillValue().(float32); fv != -999 {
		t.Errorf("fillValue() = %v, want -999 from _FillValue attribute", fv)
	}
}
