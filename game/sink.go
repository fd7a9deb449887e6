package game

import "github.com/sheikhrachel/go-gol-torus/model"

// Sink consumes each generation as it is produced. The grid is only valid
// for the duration of the call and must not be retained.
type Sink interface {
	Consume(generation int, g *model.Grid) error
}

// SinkFunc adapts a function to the Sink interface
type SinkFunc func(generation int, g *model.Grid) error

// Consume calls f
func (f SinkFunc) Consume(generation int, g *model.Grid) error {
	return f(generation, g)
}
