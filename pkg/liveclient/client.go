// Package liveclient is the Go client for a topic page view: it fetches the
// existing thread over REST, joins the topic's room over the websocket and
// keeps the local thread consistent with pushed events, without duplicates.
package liveclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/fasthttp/websocket"
)

type Client struct {
	baseURL string
	httpc   *http.Client
	dialer  *websocket.Dialer

	mu      sync.Mutex
	ws      *websocket.Conn
	topicID string

	thread *Thread
}

// New builds a client for a server at baseURL (e.g. "http://localhost:8080").
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   http.DefaultClient,
		dialer:  websocket.DefaultDialer,
		thread:  NewThread(),
	}
}

func (c *Client) Thread() *Thread {
	return c.thread
}

// FetchThread loads the topic's persisted thread and merges it into local
// state. Pushes that raced the fetch are kept, not overwritten.
func (c *Client) FetchThread(ctx context.Context, topicID string) error {
	url := fmt.Sprintf("%s/api/comments/%s", c.baseURL, topicID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("fetch thread: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch thread: unexpected status %d", resp.StatusCode)
	}

	var payload struct {
		Comments []Comment `json:"comments"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return fmt.Errorf("decode thread: %w", err)
	}

	c.thread.MergeAll(payload.Comments)
	return nil
}

// Connect opens the websocket. Call before JoinTopic/Listen.
func (c *Client) Connect(ctx context.Context) error {
	wsURL := strings.Replace(c.baseURL, "http", "ws", 1) + "/ws"

	ws, resp, err := c.dialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return fmt.Errorf("dial %s: %w", wsURL, err)
	}
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}

	c.mu.Lock()
	c.ws = ws
	c.mu.Unlock()
	return nil
}

type roomCommand struct {
	Event string `json:"event"`
	Data  struct {
		TopicID string `json:"topic_id"`
	} `json:"data"`
}

func (c *Client) sendRoomCommand(event, topicID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.ws == nil {
		return fmt.Errorf("not connected")
	}

	cmd := roomCommand{Event: event}
	cmd.Data.TopicID = topicID
	return c.ws.WriteJSON(cmd)
}

// JoinTopic subscribes to a topic's room. The server evicts any prior room
// membership, so switching topics needs no explicit leave.
func (c *Client) JoinTopic(topicID string) error {
	if err := c.sendRoomCommand(eventJoinTopic, topicID); err != nil {
		return err
	}
	c.mu.Lock()
	c.topicID = topicID
	c.mu.Unlock()
	return nil
}

// LeaveTopic unsubscribes from the current room, e.g. on navigation away.
func (c *Client) LeaveTopic() error {
	c.mu.Lock()
	topicID := c.topicID
	c.topicID = ""
	c.mu.Unlock()

	if topicID == "" {
		return nil
	}
	return c.sendRoomCommand(eventLeaveTopic, topicID)
}

// Listen consumes pushed events until the connection closes or ctx is done.
func (c *Client) Listen(ctx context.Context) error {
	c.mu.Lock()
	ws := c.ws
	c.mu.Unlock()
	if ws == nil {
		return fmt.Errorf("not connected")
	}

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		var msg struct {
			Event string          `json:"event"`
			Data  json.RawMessage `json:"data"`
		}
		if err := ws.ReadJSON(&msg); err != nil {
			return err
		}
		c.handleEvent(msg.Event, msg.Data)
	}
}

// handleEvent merges pushes into the local thread. Unknown events and
// undecodable payloads are ignored; the push channel is best effort.
func (c *Client) handleEvent(event string, data json.RawMessage) {
	switch event {
	case eventReceiveComment:
		var comment Comment
		if err := json.Unmarshal(data, &comment); err != nil {
			return
		}
		c.thread.Merge(comment)
	case eventCommentsDeleted:
		var payload CommentsDeletedPayload
		if err := json.Unmarshal(data, &payload); err != nil {
			return
		}
		c.thread.Remove(payload.CommentIDs)
	}
}

// Close leaves the current room and releases the connection.
func (c *Client) Close() error {
	_ = c.LeaveTopic()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ws == nil {
		return nil
	}
	err := c.ws.Close()
	c.ws = nil
	return err
}
