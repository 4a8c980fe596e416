package remesh

import "testing"

func TestSplitEdgesInsertsMidpoint(t *testing.T) {
	tm, err := New(newTetrahedron())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := tm.SplitEdges(0.1); err != nil { // threshold ~0.133, every edge qualifies
		t.Fatalf("SplitEdges: %v", err)
	}
	if got, want := tm.Mesh.NumNodes(), 4+6; got != want {
		t.Errorf("NumNodes after splitting every edge = %d, want %d", got, want)
	}
	if got, want := tm.Mesh.NumElements(), 4*4; got != want {
		t.Errorf("NumElements after splitting every edge = %d, want %d", got, want)
	}
	if err := tm.Mesh.Validate(); err != nil {
		t.Errorf("invalid mesh after split: %v", err)
	}
}

func TestSplitEdgesLeavesShortEdgesAlone(t *testing.T) {
	tm, err := New(newTetrahedron())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := tm.SplitEdges(10); err != nil { // nothing exceeds (4/3)*10
		t.Fatalf("SplitEdges: %v", err)
	}
	if got, want := tm.Mesh.NumNodes(), 4; got != want {
		t.Errorf("NumNodes = %d, want %d (no split should have fired)", got, want)
	}
}
