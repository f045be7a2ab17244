package realtime

import "sync"

// Registry maps topic ids to the set of connections currently viewing that
// topic. A connection belongs to at most one room at a time: joining a new
// room evicts the previous membership. The membership map is mutated only
// through Join/Leave/Disconnect and read only by the publisher.
type Registry struct {
	mu     sync.Mutex
	rooms  map[string]map[Conn]struct{}
	joined map[Conn]string
}

func NewRegistry() *Registry {
	return &Registry{
		rooms:  make(map[string]map[Conn]struct{}),
		joined: make(map[Conn]string),
	}
}

// Join adds conn to the topic's room, leaving any previous room first.
// Joining the room the connection is already in is a no-op.
func (r *Registry) Join(conn Conn, topicID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if current, ok := r.joined[conn]; ok {
		if current == topicID {
			return
		}
		r.removeLocked(conn, current)
	}

	room, ok := r.rooms[topicID]
	if !ok {
		room = make(map[Conn]struct{})
		r.rooms[topicID] = room
	}
	room[conn] = struct{}{}
	r.joined[conn] = topicID
}

// Leave removes conn from the topic's room. A leave for a room the
// connection is not in is a no-op, not an error.
func (r *Registry) Leave(conn Conn, topicID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.joined[conn] != topicID {
		return
	}
	r.removeLocked(conn, topicID)
	delete(r.joined, conn)
}

// Disconnect is the transport-close cleanup hook: it removes conn from
// whatever room it is in. Safe to call for connections that never joined.
func (r *Registry) Disconnect(conn Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()

	topicID, ok := r.joined[conn]
	if !ok {
		return
	}
	r.removeLocked(conn, topicID)
	delete(r.joined, conn)
}

// Members returns a snapshot of the room's connections, possibly empty.
func (r *Registry) Members(topicID string) []Conn {
	r.mu.Lock()
	defer r.mu.Unlock()

	room := r.rooms[topicID]
	members := make([]Conn, 0, len(room))
	for conn := range room {
		members = append(members, conn)
	}
	return members
}

// removeLocked prunes empty rooms so the map does not grow with every topic
// ever viewed. Callers hold r.mu.
func (r *Registry) removeLocked(conn Conn, topicID string) {
	room, ok := r.rooms[topicID]
	if !ok {
		return
	}
	delete(room, conn)
	if len(room) == 0 {
		delete(r.rooms, topicID)
	}
}
