package app

import (
	"context"
	"os/signal"
	"syscall"
)

// ContextWithSignals creates a context that is cancelled when the application
// receives an interrupt or termination signal. Running tools are killed
// when it is cancelled.
func ContextWithSignals(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
}
