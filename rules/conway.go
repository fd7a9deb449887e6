package rules

/*
Conway applies Conway's Game of Life rules to determine the next state of a cell.

A live cell survives with 2 or 3 live neighbors, a dead cell is born with exactly 3.
Every other cell is dead in the next generation: (alive && neighbors == 2) || neighbors == 3
*/
func Conway(neighbors int, alive bool) bool {
	return (alive && neighbors == 2) || neighbors == 3
}
