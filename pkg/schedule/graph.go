package schedule

import "github.com/matzehuels/ganttline/pkg/plan"

// dependencyGraph is a flat adjacency view of the plan's work packages,
// decoupled from tree shape. It is built once per scheduling pass.
// order preserves document order so every downstream algorithm is
// deterministic regardless of map iteration.
type dependencyGraph struct {
	order []string            // work package ids in document order
	deps  map[string][]string // id -> predecessor ids, in declaration order
}

func buildGraph(wps []*plan.WorkPackage) *dependencyGraph {
	g := &dependencyGraph{
		order: make([]string, 0, len(wps)),
		deps:  make(map[string][]string, len(wps)),
	}
	for _, wp := range wps {
		g.order = append(g.order, wp.WBS)
		g.deps[wp.WBS] = wp.DependsOn
	}
	return g
}

// DFS colors for cycle detection.
const (
	white = iota // unvisited
	gray         // on the active path
	black        // fully explored
)

// findCycle returns the ordered cycle path (first repeated node at both
// ends) or nil when the graph is acyclic. The traversal uses an
// explicit frame stack so deep plans cannot overflow the goroutine
// stack, and visits nodes in document order for deterministic output.
func (g *dependencyGraph) findCycle() []string {
	color := make(map[string]int, len(g.order))
	pos := make(map[string]int, len(g.order))

	type frame struct {
		id   string
		next int // index of the next dependency to explore
	}

	for _, root := range g.order {
		if color[root] != white {
			continue
		}

		stack := []frame{{id: root}}
		path := []string{root}
		color[root] = gray
		pos[root] = 0

		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			deps := g.deps[top.id]

			if top.next >= len(deps) {
				color[top.id] = black
				delete(pos, top.id)
				stack = stack[:len(stack)-1]
				path = path[:len(path)-1]
				continue
			}

			dep := deps[top.next]
			top.next++

			switch color[dep] {
			case gray:
				cycle := append([]string{}, path[pos[dep]:]...)
				return append(cycle, dep)
			case white:
				color[dep] = gray
				pos[dep] = len(path)
				path = append(path, dep)
				stack = append(stack, frame{id: dep})
			}
		}
	}
	return nil
}

// toposort runs Kahn's algorithm over the graph. Seeds and the ready
// queue are processed in document order, so independent work packages
// keep their input order in the result. The returned slice is shorter
// than the node count only if a cycle survived earlier validation.
func (g *dependencyGraph) toposort() []string {
	dependents := make(map[string][]string, len(g.order))
	indegree := make(map[string]int, len(g.order))
	for _, id := range g.order {
		indegree[id] = 0
	}
	for _, id := range g.order {
		for _, dep := range g.deps[id] {
			dependents[dep] = append(dependents[dep], id)
			indegree[id]++
		}
	}

	queue := make([]string, 0, len(g.order))
	for _, id := range g.order {
		if indegree[id] == 0 {
			queue = append(queue, id)
		}
	}

	result := make([]string, 0, len(g.order))
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		result = append(result, current)
		for _, child := range dependents[current] {
			indegree[child]--
			if indegree[child] == 0 {
				queue = append(queue, child)
			}
		}
	}
	return result
}
