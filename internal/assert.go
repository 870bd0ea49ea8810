package internal

import (
	"context"

	"github.com/xaionaro-go/avtransform/logger"
)

// Assert panics (through the logger in ctx) if mustBeTrue is false.
func Assert(
	ctx context.Context,
	mustBeTrue bool,
	extraArgs ...any,
) {
	if mustBeTrue {
		return
	}

	logger.Panic(ctx, append([]any{"assertion failed: "}, extraArgs...)...)
}
