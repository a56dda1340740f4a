package main

import (
	"context"

	"github.com/xaionaro-go/camerafilter/logger"
)

func assert(
	ctx context.Context,
	mustBeTrue bool,
	extraArgs ...any,
) {
	if mustBeTrue {
		return
	}
	logger.Panic(ctx, "assertion failed", extraArgs)
}
