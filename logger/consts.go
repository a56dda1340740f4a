package logger

import (
	"github.com/facebookincubator/go-belt/tool/logger"
)

type Level = logger.Level

const (
	LevelUndefined = logger.LevelUndefined
	LevelFatal     = logger.LevelFatal
	LevelPanic     = logger.LevelPanic
	LevelError     = logger.LevelError
	LevelWarning   = logger.LevelWarning
	LevelInfo      = logger.LevelInfo
	LevelDebug     = logger.LevelDebug
	LevelTrace     = logger.LevelTrace
)

// ParseLevel converts a textual level ("debug", "warning", ...) into a Level.
func ParseLevel(s string) (Level, error) {
	var level Level
	if err := level.Set(s); err != nil {
		return LevelUndefined, err
	}
	return level, nil
}
