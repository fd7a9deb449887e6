package game

import "github.com/sheikhrachel/go-gol-torus/model"

// historySize is how many recent states are kept for cycle detection
const historySize = 5

// Status summarises how the population is evolving
type Status string

const (
	StatusActive   Status = "Active"
	StatusStagnant Status = "Stagnant"
	StatusExtinct  Status = "Extinct"
)

// history stores hashes of recent grid states
type history struct {
	hashes []string
}

// observe records g and reports whether it repeats one of the last three states
func (h *history) observe(g *model.Grid) bool {
	current := g.Hash()

	stagnant := false
	for i := len(h.hashes) - 1; i >= 0 && i >= len(h.hashes)-3; i-- {
		if h.hashes[i] == current {
			stagnant = true
			break
		}
	}

	h.hashes = append(h.hashes, current)
	if len(h.hashes) > historySize {
		h.hashes = h.hashes[1:]
	}
	return stagnant
}
