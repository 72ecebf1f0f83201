//go:build !linux

package fbview

import (
	"context"

	"github.com/rook-computer/deckgfx/internal/logging"
)

func WatchExitKey(ctx context.Context, log logging.Logger, onExit func()) {}
