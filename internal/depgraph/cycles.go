package depgraph

import (
	"github.com/rachitkumarrastogi/unity-mcp-server/pkg/types"
)

// tarjan holds the bookkeeping of one strongly-connected-components run.
type tarjan struct {
	adj     map[string][]string
	index   map[string]int
	lowlink map[string]int
	onStack map[string]bool
	stack   []string
	next    int
	cycles  [][]string
}

// FindCycles returns the strongly connected components of g that have more
// than one member. Nodes are visited in g.Nodes order; members of a
// component are listed in the order they leave the DFS stack. A node that
// references itself is not a cycle.
func FindCycles(g types.DependencyGraph) [][]string {
	t := &tarjan{
		adj:     make(map[string][]string, len(g.Nodes)),
		index:   make(map[string]int),
		lowlink: make(map[string]int),
		onStack: make(map[string]bool),
		cycles:  make([][]string, 0),
	}
	for _, e := range g.Edges {
		t.adj[e[0]] = append(t.adj[e[0]], e[1])
	}
	for _, n := range g.Nodes {
		if _, visited := t.index[n]; !visited {
			t.strongConnect(n)
		}
	}
	return t.cycles
}

func (t *tarjan) strongConnect(v string) {
	t.index[v] = t.next
	t.lowlink[v] = t.next
	t.next++
	t.stack = append(t.stack, v)
	t.onStack[v] = true

	for _, w := range t.adj[v] {
		if _, visited := t.index[w]; !visited {
			t.strongConnect(w)
			t.lowlink[v] = min(t.lowlink[v], t.lowlink[w])
		} else if t.onStack[w] {
			t.lowlink[v] = min(t.lowlink[v], t.index[w])
		}
	}

	if t.lowlink[v] != t.index[v] {
		return
	}
	var comp []string
	for {
		w := t.stack[len(t.stack)-1]
		t.stack = t.stack[:len(t.stack)-1]
		t.onStack[w] = false
		comp = append(comp, w)
		if w == v {
			break
		}
	}
	if len(comp) > 1 {
		t.cycles = append(t.cycles, comp)
	}
}

// DetectAssemblyCycles loads the project's assembly definitions and reports
// their reference cycles.
func DetectAssemblyCycles(root string) [][]string {
	return FindCycles(BuildModuleGraph(LoadModules(root)))
}
