package realtime

import (
	"errors"
	"sync"

	"github.com/gofiber/contrib/websocket"

	"forum-backend/internal/domain"
)

// sendBuffer bounds how far a slow client may fall behind before it is
// considered dead and dropped.
const sendBuffer = 64

var (
	ErrConnClosed     = errors.New("connection closed")
	ErrSendBufferFull = errors.New("send buffer full")
)

// SocketConn adapts a websocket connection to the Conn interface. Events are
// queued on a buffered channel and written by WritePump, so SendEvent never
// blocks the publisher and writes stay serialized per connection.
type SocketConn struct {
	ws   *websocket.Conn
	send chan domain.Event
	done chan struct{}

	closeOnce sync.Once
	closeErr  error
}

func NewSocketConn(ws *websocket.Conn) *SocketConn {
	return &SocketConn{
		ws:   ws,
		send: make(chan domain.Event, sendBuffer),
		done: make(chan struct{}),
	}
}

// WritePump drains the send queue onto the wire. Run it in its own
// goroutine; it returns when the connection closes or a write fails.
func (c *SocketConn) WritePump() {
	for {
		select {
		case evt := <-c.send:
			if err := c.ws.WriteJSON(evt); err != nil {
				return
			}
		case <-c.done:
			return
		}
	}
}

func (c *SocketConn) SendEvent(evt domain.Event) error {
	select {
	case <-c.done:
		return ErrConnClosed
	case c.send <- evt:
		return nil
	default:
		return ErrSendBufferFull
	}
}

func (c *SocketConn) Close() error {
	c.closeOnce.Do(func() {
		close(c.done)
		c.closeErr = c.ws.Close()
	})
	return c.closeErr
}
