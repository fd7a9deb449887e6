//go:build !ebiten

package display

import (
	"context"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-gol-torus/game"
)

// ErrWindowUnavailable is returned by builds without the ebiten tag
var ErrWindowUnavailable = errors.New("the window display requires building with -tags ebiten")

// RunWindow reports that the GUI is not compiled in
func RunWindow(context.Context, *game.Simulation, int) error {
	return ErrWindowUnavailable
}
