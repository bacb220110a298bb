package utils

import (
	"runtime/debug"

	"github.com/sunfrisky19/model-meals-workouts/logging"
)

// SafeGo runs fn in a goroutine. A panic is logged and swallowed so it cannot take the process down.
func SafeGo(name string, fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				logging.Error().
					Str("goroutine", name).
					Interface("panic", r).
					Bytes("stack", debug.Stack()).
					Msg("recovered from panic")
			}
		}()
		fn()
	}()
}
