package maze

// Action identifies one of the four cardinal moves. The numeric order is
// fixed (North, South, East, West) and every place that enumerates or
// ranks actions iterates in this order, so ties and neighbor listings
// are reproducible for a given seed.
type Action int

const (
	North Action = iota
	South
	East
	West

	// NumActions is the size of the action space.
	NumActions = 4
)

// deltas maps each action to its row/col offset, indexed by Action.
var deltas = [NumActions]CellPosition{
	{Row: -1, Col: 0},
	{Row: 1, Col: 0},
	{Row: 0, Col: 1},
	{Row: 0, Col: -1},
}

// Delta returns the row/col offset of the action.
func (a Action) Delta() CellPosition {
	return deltas[a]
}

// Opposite returns the reverse action (North <-> South, East <-> West).
func (a Action) Opposite() Action {
	switch a {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	default:
		return East
	}
}

func (a Action) String() string {
	switch a {
	case North:
		return "North"
	case South:
		return "South"
	case East:
		return "East"
	case West:
		return "West"
	default:
		return "Unknown"
	}
}

// Cell represents a single cell in a maze grid.
// It includes properties for walls on each side of the cell.
type Cell struct {
	NorthWall bool // NorthWall indicates whether there is a wall on the north side of the cell.
	SouthWall bool // SouthWall indicates whether there is a wall on the south side of the cell.
	EastWall  bool // EastWall indicates whether there is a wall on the east side of the cell.
	WestWall  bool // WestWall indicates whether there is a wall on the west side of the cell.
}

// CellPosition represents the position of a cell in the maze grid.
type CellPosition struct {
	Row int // Row index of the cell
	Col int // Column index of the cell
}

// Shift returns the position reached by taking the action from this cell,
// without any bounds check.
func (cp CellPosition) Shift(a Action) CellPosition {
	d := a.Delta()
	return CellPosition{Row: cp.Row + d.Row, Col: cp.Col + d.Col}
}

// ManhattanDistance returns the grid distance between two positions.
func (cp CellPosition) ManhattanDistance(other CellPosition) int {
	return abs(cp.Row-other.Row) + abs(cp.Col-other.Col)
}

// Move represents a movement from one cell to another in a specific direction.
type Move struct {
	From      CellPosition // Starting cell
	To        CellPosition // Destination cell
	Direction Action       // Direction of the move
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
