package remesh

import (
	"math"
	"testing"

	"github.com/autotwin/automesh/mesh"
	v3 "github.com/autotwin/automesh/vec/v3"
)

func equilateralTriangle() *mesh.Mesh {
	m := mesh.New(mesh.Tri)
	m.Coordinates = []v3.Vec{
		{X: 0, Y: 0, Z: 0},
		{X: 1, Y: 0, Z: 0},
		{X: 0.5, Y: math.Sqrt(3) / 2, Z: 0},
	}
	m.Connectivity = [][]int{{1, 2, 3}}
	m.Blocks = []int{1}
	return m
}

func TestTriangleMetricsOnEquilateralTriangle(t *testing.T) {
	tm, err := New(equilateralTriangle())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	metrics := tm.TriangleMetrics()
	if len(metrics) != 1 {
		t.Fatalf("expected 1 metric entry, got %d", len(metrics))
	}
	m := metrics[0]
	if math.Abs(m.Area-math.Sqrt(3)/4) > 1e-9 {
		t.Errorf("area = %v, want %v", m.Area, math.Sqrt(3)/4)
	}
	if math.Abs(m.MinAngle-sixtyDegrees) > 1e-9 {
		t.Errorf("minAngle = %v, want %v", m.MinAngle, sixtyDegrees)
	}
	if math.Abs(m.MaxSkew) > 1e-9 {
		t.Errorf("maxSkew = %v, want 0", m.MaxSkew)
	}
	if math.Abs(m.MaxEdgeRatio-1) > 1e-9 {
		t.Errorf("maxEdgeRatio = %v, want 1", m.MaxEdgeRatio)
	}
	if math.Abs(m.MinScaledJacobian-1) > 1e-9 {
		t.Errorf("minScaledJacobian = %v, want 1", m.MinScaledJacobian)
	}
}

func TestTriangleMetricsDetectsSkewedTriangle(t *testing.T) {
	m := mesh.New(mesh.Tri)
	m.Coordinates = []v3.Vec{
		{X: 0, Y: 0, Z: 0},
		{X: 10, Y: 0, Z: 0},
		{X: 0, Y: 0.1, Z: 0},
	}
	m.Connectivity = [][]int{{1, 2, 3}}
	m.Blocks = []int{1}
	tm, err := New(m)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	metric := tm.TriangleMetrics()[0]
	if metric.MaxSkew <= 0.9 {
		t.Errorf("expected a near-degenerate sliver to have skew close to 1, got %v", metric.MaxSkew)
	}
	if metric.MinScaledJacobian >= 0.1 {
		t.Errorf("expected a near-degenerate sliver to have a small scaled Jacobian, got %v", metric.MinScaledJacobian)
	}
}
