package worker

import (
	"context"
)

// Worker - фоновая задача сервиса
type Worker interface {
	// Start блокируется до Stop или отмены ctx
	Start(ctx context.Context) error

	Stop() error

	Name() string
}
