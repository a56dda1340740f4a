package logger

import (
	"context"

	"github.com/facebookincubator/go-belt/tool/logger"
)

// FromCtx returns the logger carried by ctx (or the default one).
func FromCtx(ctx context.Context) Logger {
	return logger.FromCtx(ctx)
}

// CtxWithLogger returns ctx carrying l, so every camerafilter package
// called with it logs through l.
func CtxWithLogger(ctx context.Context, l Logger) context.Context {
	return logger.CtxWithLogger(ctx, l)
}
