package realtime

import "forum-backend/internal/domain"

// Conn is one live client connection the registry tracks and the publisher
// pushes events to. SendEvent must not block: implementations enqueue the
// event and report an error only when the connection is closed or cannot
// keep up.
type Conn interface {
	SendEvent(evt domain.Event) error
	Close() error
}
