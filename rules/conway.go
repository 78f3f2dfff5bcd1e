package rules

const (
	minSurvivors = 2
	maxSurvivors = 3
	birthCount   = 3
)

/*
ApplyConwayRules applies Conway's Game of Life rules to determine the next state of a cell.

The conditions are checked in a fixed order:
  - fewer than 2 live neighbors: dead (underpopulation)
  - more than 3 live neighbors: dead (overpopulation)
  - exactly 3 live neighbors around a dead cell: alive (birth)
  - anything else keeps the current state
*/
func ApplyConwayRules(neighbors int, alive bool) bool {
	switch {
	case neighbors < minSurvivors:
		return false
	case neighbors > maxSurvivors:
		return false
	case neighbors == birthCount && !alive:
		return true
	default:
		return alive
	}
}
