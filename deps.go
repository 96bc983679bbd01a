package qirlower

// The lowering engine itself is purely combinational: expanding one
// invocation never depends on another. The only ordering constraints in a
// program are the data dependencies the caller already wrote: two
// instructions touching the same qubit handle or the same result cell. This
// file makes those constraints queryable so callers (and tests) can check
// schedules without re-deriving them, e.g. that the branch reading a result
// cell stays after the mz that wrote it.

// DepNode is one instruction of a program viewed as a DAG node.
type DepNode struct {
	Index        int   // position in the program
	Dependencies []int // indices of instructions that must execute first
}

// DepGraph is the data-dependency DAG of a program. Instruction order in the
// source program is the tie-break: dependencies always point backwards.
type DepGraph struct {
	Nodes []DepNode
}

// BuildDepGraph computes, for each instruction, the set of earlier
// instructions it conflicts with (shared qubit or shared result cell). A
// branch node's footprint includes everything its body touches plus the cell
// it reads.
func BuildDepGraph(p Program) *DepGraph {
	g := &DepGraph{Nodes: make([]DepNode, len(p))}

	// Last instruction index to touch each qubit / result cell.
	lastQubit := make(map[Qubit]int)
	lastResult := make(map[Result]int)

	for i, inst := range p {
		node := DepNode{Index: i}
		seen := make(map[int]bool)

		qubits, results := footprint(inst)
		for _, q := range qubits {
			if j, ok := lastQubit[q]; ok && !seen[j] {
				seen[j] = true
				node.Dependencies = append(node.Dependencies, j)
			}
		}
		for _, r := range results {
			if j, ok := lastResult[r]; ok && !seen[j] {
				seen[j] = true
				node.Dependencies = append(node.Dependencies, j)
			}
		}
		for _, q := range qubits {
			lastQubit[q] = i
		}
		for _, r := range results {
			lastResult[r] = i
		}
		g.Nodes[i] = node
	}
	return g
}

// footprint returns every qubit handle and result cell an instruction
// touches, recursing into branch bodies.
func footprint(inst Instruction) ([]Qubit, []Result) {
	qubits := append([]Qubit(nil), inst.Qubits...)
	var results []Result
	if inst.Result != noResult {
		results = append(results, inst.Result)
	}
	if inst.Op == OpBranch {
		results = append(results, inst.Cond)
		for _, t := range inst.Then {
			qs, rs := footprint(t)
			qubits = append(qubits, qs...)
			results = append(results, rs...)
		}
	}
	return qubits, results
}

// TopologicalOrder returns the instruction indices in an order consistent
// with every dependency. Since dependencies always point backwards, program
// order is one valid answer; the traversal mirrors a DFS over the DAG and is
// used to cross-check graph construction.
func (g *DepGraph) TopologicalOrder() []int {
	visited := make([]bool, len(g.Nodes))
	order := make([]int, 0, len(g.Nodes))

	var visit func(i int)
	visit = func(i int) {
		if visited[i] {
			return
		}
		visited[i] = true
		for _, dep := range g.Nodes[i].Dependencies {
			visit(dep)
		}
		order = append(order, i)
	}
	for i := range g.Nodes {
		visit(i)
	}
	return order
}

// Layers groups instruction indices into waves that may execute with
// unlimited parallelism: every instruction in a layer depends only on
// instructions in strictly earlier layers.
func (g *DepGraph) Layers() [][]int {
	if len(g.Nodes) == 0 {
		return nil
	}
	depth := make([]int, len(g.Nodes))
	maxDepth := 0
	for i, node := range g.Nodes {
		d := 0
		for _, dep := range node.Dependencies {
			if depth[dep]+1 > d {
				d = depth[dep] + 1
			}
		}
		depth[i] = d
		if d > maxDepth {
			maxDepth = d
		}
	}
	layers := make([][]int, maxDepth+1)
	for i, d := range depth {
		layers[d] = append(layers[d], i)
	}
	return layers
}

// DependsOn reports whether instruction i transitively depends on j.
func (g *DepGraph) DependsOn(i, j int) bool {
	seen := make(map[int]bool)
	var walk func(k int) bool
	walk = func(k int) bool {
		if k == j {
			return true
		}
		if seen[k] {
			return false
		}
		seen[k] = true
		for _, dep := range g.Nodes[k].Dependencies {
			if walk(dep) {
				return true
			}
		}
		return false
	}
	return walk(i)
}
