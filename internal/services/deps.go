package services

import "context"

// Dispatcher schedules fire-and-forget side effects. The triggering request
// returns before the job runs; delivery is best-effort.
type Dispatcher interface {
	Dispatch(name string, fn func(ctx context.Context) error)
}

// Broadcaster pushes real-time events to connected clients. Implemented by
// the WebSocket hub; a nil Broadcaster disables pushes.
type Broadcaster interface {
	ListChanged(listID int, payload interface{})
	ItemChanged(listID int, payload interface{})
	ShareChanged(userID int, payload interface{})
	NotificationPushed(userID int, payload interface{})
}

// Completer is one non-streaming chat completion. Implemented by ai.Client;
// tests substitute fakes.
type Completer interface {
	Complete(ctx context.Context, system, user string, temperature float64) (string, error)
}
