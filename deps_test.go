package qirlower

import (
	"testing"
)

func TestDepGraphMeasureOrdering(t *testing.T) {
	lowered, err := Lower(Program{Measure(0, 0)})
	if err != nil {
		t.Fatalf("Lower error: %v", err)
	}
	// mz, reset, branch. The branch reads r[0] and touches q[0], so it must
	// transitively depend on the mz that wrote the cell. It cannot be
	// reordered ahead of the write or executed speculatively.
	g := BuildDepGraph(lowered)
	if !g.DependsOn(2, 0) {
		t.Error("branch does not depend on mz")
	}
	if !g.DependsOn(2, 1) {
		t.Error("branch does not depend on reset")
	}
	if !g.DependsOn(1, 0) {
		t.Error("reset does not depend on mz")
	}
}

func TestDepGraphIndependentQubitsParallel(t *testing.T) {
	p := Program{
		Rx(0.1, 0),
		Rx(0.2, 1),
		Rx(0.3, 2),
		Rzz(0.4, 0, 1), // joins qubits 0 and 1
	}
	g := BuildDepGraph(p)

	layers := g.Layers()
	if len(layers) != 2 {
		t.Fatalf("expected 2 layers, got %d: %v", len(layers), layers)
	}
	if len(layers[0]) != 3 {
		t.Errorf("first layer should hold the 3 independent rotations, got %v", layers[0])
	}
	if len(layers[1]) != 1 || layers[1][0] != 3 {
		t.Errorf("rzz should sit alone in the second layer, got %v", layers[1])
	}
	if g.DependsOn(1, 0) || g.DependsOn(2, 1) {
		t.Error("rotations on distinct qubits must not depend on each other")
	}
}

func TestDepGraphSameQubitChain(t *testing.T) {
	p := Program{Rx(0.1, 0), Rz(0.2, 0), Rx(0.3, 0)}
	g := BuildDepGraph(p)

	order := g.TopologicalOrder()
	if len(order) != 3 {
		t.Fatalf("expected 3 nodes, got %d", len(order))
	}
	pos := make(map[int]int, len(order))
	for idx, node := range order {
		pos[node] = idx
	}
	if !(pos[0] < pos[1] && pos[1] < pos[2]) {
		t.Errorf("same-qubit chain out of order: %v", order)
	}

	layers := g.Layers()
	if len(layers) != 3 {
		t.Errorf("a serial chain should give one instruction per layer, got %v", layers)
	}
}

func TestDepGraphResultCellConflict(t *testing.T) {
	// Two measurements into distinct cells are independent; a branch reading
	// one cell depends only on that cell's writer (and its own qubit).
	p := Program{
		Mz(0, 0),
		Mz(1, 1),
		Branch(0, Rx(PiAngle, 2)),
	}
	g := BuildDepGraph(p)

	if g.DependsOn(1, 0) {
		t.Error("measurements of distinct qubits/cells must be independent")
	}
	if !g.DependsOn(2, 0) {
		t.Error("branch must depend on the mz writing its cell")
	}
	if g.DependsOn(2, 1) {
		t.Error("branch must not depend on an unrelated measurement")
	}
}

func TestDepGraphEmptyProgram(t *testing.T) {
	g := BuildDepGraph(nil)
	if len(g.TopologicalOrder()) != 0 {
		t.Error("empty program should give an empty order")
	}
	if g.Layers() != nil {
		t.Error("empty program should give no layers")
	}
}
