package netcdf3

import "testing"

func TestAttributesOrderPreserved(t *testing.T) {
	a := newAttributes()
	names := []string{"c", "a", "b"}
	for _, n := range names {
		if err := a.add(n, NewInt32Value([]int32{1})); err != nil {
			t.Fatalf("add(%q): %v", n, err)
		}
	}
	for i, n := range names {
		if a.Name(i) != n {
			t.Errorf("Name(%d) = %q, want %q", i, a.Name(i), n)
		}
	}
}

func TestAttributesSetAndRename(t *testing.T) {
	a := newAttributes()
	if err := a.add("units", NewTextValue("m/s")); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := a.set("units", NewTextValue("km/h")); err != nil {
		t.Fatalf("set: %v", err)
	}
	v, _ := a.Get("units")
	text, _ := v.Text()
	if text != "km/h" {
		t.Errorf("after set, value = %q, want %q", text, "km/h")
	}
	if err := a.rename("units", "unit"); err != nil {
		t.Fatalf("rename: %v", err)
	}
	if a.IndexOf("units") != -1 || a.IndexOf("unit") != 0 {
		t.Errorf("rename did not update index: units=%d unit=%d", a.IndexOf("units"), a.IndexOf("unit"))
	}
}

func TestAttributesRemoveNotFound(t *testing.T) {
	a := newAttributes()
	err := a.remove("missing")
	if err == nil {
		t.Fatalf("expected AttributeNotFound")
	}
	if e := err.(*Error); e.Kind != ErrKindAttributeNotFound {
		t.Errorf("Kind = %v, want ErrKindAttributeNotFound", e.Kind)
	}
}
