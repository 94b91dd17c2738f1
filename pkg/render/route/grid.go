package route

import (
	"container/heap"
	"math"
)

// Grid rasterization knobs, in world coordinates.
const (
	gridDX        = 0.35 // days per grid column
	gridDY        = 0.25 // rows per grid row
	gridClearance = 0.12 // obstacle inflation during rasterization
	gridMargin    = 1.0  // bounding box padding around all bars
	bendPenalty   = 5.0  // extra cost whenever the path changes direction
)

type cell struct{ x, y int }

// obstacleGrid is a uniform rasterization of every bar rectangle
// (inflated by clearance) over the layout's bounding box.
type obstacleGrid struct {
	blocked    map[cell]struct{}
	xMin, yMin float64
	nx, ny     int
}

func buildObstacleGrid(rects []Rect, xMin, xMax, yMin, yMax float64) *obstacleGrid {
	nx := int(math.Ceil((xMax-xMin)/gridDX)) + 1
	ny := int(math.Ceil((yMax-yMin)/gridDY)) + 1

	inflated := make([]Rect, len(rects))
	for i, r := range rects {
		inflated[i] = r.Inflate(gridClearance, gridClearance)
	}

	g := &obstacleGrid{
		blocked: make(map[cell]struct{}),
		xMin:    xMin, yMin: yMin,
		nx: nx, ny: ny,
	}
	for ix := 0; ix < nx; ix++ {
		cx := xMin + float64(ix)*gridDX
		for iy := 0; iy < ny; iy++ {
			cy := yMin + float64(iy)*gridDY
			for _, r := range inflated {
				if r.contains(cx, cy) {
					g.blocked[cell{ix, iy}] = struct{}{}
					break
				}
			}
		}
	}
	return g
}

func (g *obstacleGrid) toCell(p Point) cell {
	return cell{
		x: int(math.Floor((p.X - g.xMin) / gridDX)),
		y: int(math.Floor((p.Y - g.yMin) / gridDY)),
	}
}

func (g *obstacleGrid) toWorld(c cell) Point {
	return Point{
		X: g.xMin + float64(c.x)*gridDX,
		Y: g.yMin + float64(c.y)*gridDY,
	}
}

func (g *obstacleGrid) isBlocked(c cell) bool {
	if c.x < 0 || c.y < 0 || c.x >= g.nx || c.y >= g.ny {
		return true
	}
	_, ok := g.blocked[c]
	return ok
}

// Search state: a cell plus the direction it was entered from.
// Tracking the incoming direction lets the cost model charge for bends.
const (
	dirNone = iota
	dirRight
	dirLeft
	dirDown
	dirUp
)

type searchState struct {
	c cell
	d int
}

type frontierItem struct {
	priority float64
	counter  int // insertion order, breaks priority ties deterministically
	c        cell
	d        int
}

type frontier []frontierItem

func (f frontier) Len() int { return len(f) }
func (f frontier) Less(i, j int) bool {
	if f[i].priority != f[j].priority {
		return f[i].priority < f[j].priority
	}
	return f[i].counter < f[j].counter
}
func (f frontier) Swap(i, j int)      { f[i], f[j] = f[j], f[i] }
func (f *frontier) Push(x any)        { *f = append(*f, x.(frontierItem)) }
func (f *frontier) Pop() any {
	old := *f
	n := len(old)
	item := old[n-1]
	*f = old[:n-1]
	return item
}

var neighborDirs = [4]struct {
	dx, dy int
	d      int
}{
	{1, 0, dirRight},
	{-1, 0, dirLeft},
	{0, 1, dirDown},
	{0, -1, dirUp},
}

// astar searches an orthogonal (4-directional) shortest path from
// start to goal, adding bendPenalty whenever the direction changes.
// Priority is cost-so-far plus the Manhattan distance to the goal.
// Returns nil when the goal is unreachable.
func astar(start, goal cell, isBlocked func(cell) bool) []cell {
	heuristic := func(c cell) float64 {
		return math.Abs(float64(c.x-goal.x)) + math.Abs(float64(c.y-goal.y))
	}

	startState := searchState{c: start, d: dirNone}
	costSoFar := map[searchState]float64{startState: 0}
	cameFrom := map[searchState]searchState{}

	counter := 0
	f := &frontier{{priority: 0, counter: counter, c: start, d: dirNone}}
	heap.Init(f)

	var goalState *searchState
	for f.Len() > 0 {
		item := heap.Pop(f).(frontierItem)
		state := searchState{c: item.c, d: item.d}
		if item.c == goal {
			goalState = &state
			break
		}

		for _, nb := range neighborDirs {
			next := cell{x: item.c.x + nb.dx, y: item.c.y + nb.dy}
			if isBlocked(next) {
				continue
			}
			stepCost := 1.0
			if item.d != dirNone && item.d != nb.d {
				stepCost += bendPenalty
			}
			newCost := costSoFar[state] + stepCost
			nextState := searchState{c: next, d: nb.d}
			if existing, seen := costSoFar[nextState]; !seen || newCost < existing {
				costSoFar[nextState] = newCost
				counter++
				heap.Push(f, frontierItem{
					priority: newCost + heuristic(next),
					counter:  counter,
					c:        next,
					d:        nb.d,
				})
				cameFrom[nextState] = state
			}
		}
	}

	if goalState == nil {
		return nil
	}

	path := []cell{goal}
	cur := *goalState
	for cur != startState {
		prev, ok := cameFrom[cur]
		if !ok {
			break
		}
		cur = prev
		path = append(path, cur.c)
	}
	if path[len(path)-1] != start {
		path = append(path, start)
	}
	// Reverse into start → goal order.
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// routeGrid is the last-resort router: rasterize every bar onto a grid
// spanning the layout plus margin, A* from the exit anchor to the entry
// anchor, and if even that fails, swing a single lane around the
// rightmost extent of all bars.
func routeGrid(pred, succ Rect, all []Rect) []Point {
	start, goal := Anchors(pred, succ)

	xMin, xMax := pred.XMin, pred.XMax
	yMin, yMax := pred.YMin, pred.YMax
	for _, r := range all {
		xMin = math.Min(xMin, r.XMin)
		xMax = math.Max(xMax, r.XMax)
		yMin = math.Min(yMin, r.YMin)
		yMax = math.Max(yMax, r.YMax)
	}

	grid := buildObstacleGrid(all, xMin-gridMargin, xMax+gridMargin, yMin-gridMargin, yMax+gridMargin)

	startCell := grid.toCell(start)
	goalCell := grid.toCell(goal)

	// The anchors sit right next to their bars, often inside inflated
	// geometry; force them open so the search can leave and arrive.
	delete(grid.blocked, startCell)
	delete(grid.blocked, goalCell)

	if cells := astar(startCell, goalCell, grid.isBlocked); cells != nil {
		// The anchors rarely sit exactly on grid points, so bridge into
		// and out of the grid with explicit elbows to keep the whole
		// polyline orthogonal.
		first := grid.toWorld(cells[0])
		last := grid.toWorld(cells[len(cells)-1])

		points := make([]Point, 0, len(cells)+4)
		points = append(points, start, Point{X: first.X, Y: start.Y})
		for _, c := range cells {
			points = append(points, grid.toWorld(c))
		}
		points = append(points, Point{X: last.X, Y: goal.Y}, goal)
		return Simplify(Dedupe(points))
	}

	laneX := xMax + XPad*4
	return []Point{start, {X: laneX, Y: start.Y}, {X: laneX, Y: goal.Y}, goal}
}
