package liveclient

import (
	"sort"
	"sync"
)

// Thread is the local view of one topic's comments, deduplicated by id.
// Pushed comments and REST-fetched comments land in the same set, so a
// comment arriving twice (own create response plus the room push, or a push
// racing the initial fetch) is held exactly once. A comment whose parent is
// not (yet) known is kept and rendered at the root rather than dropped; a
// later full fetch reconciles the tree.
type Thread struct {
	mu   sync.Mutex
	byID map[string]Comment
}

func NewThread() *Thread {
	return &Thread{byID: make(map[string]Comment)}
}

// Merge adds the comment if its id is new and reports whether it was added.
func (t *Thread) Merge(c Comment) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.byID[c.ID]; ok {
		return false
	}
	t.byID[c.ID] = c
	return true
}

// MergeAll merges a fetched thread without discarding comments that arrived
// over the socket while the fetch was in flight.
func (t *Thread) MergeAll(comments []Comment) {
	for _, c := range comments {
		t.Merge(c)
	}
}

// Remove drops the given ids and returns how many were present.
func (t *Thread) Remove(ids []string) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	removed := 0
	for _, id := range ids {
		if _, ok := t.byID[id]; ok {
			delete(t.byID, id)
			removed++
		}
	}
	return removed
}

func (t *Thread) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.byID)
}

// Comments returns the thread flat, ordered by creation time (ties broken
// by id so the order is stable regardless of arrival order).
func (t *Thread) Comments() []Comment {
	t.mu.Lock()
	defer t.mu.Unlock()

	comments := make([]Comment, 0, len(t.byID))
	for _, c := range t.byID {
		comments = append(comments, c)
	}
	sort.Slice(comments, func(i, j int) bool {
		if comments[i].CreatedAt.Equal(comments[j].CreatedAt) {
			return comments[i].ID < comments[j].ID
		}
		return comments[i].CreatedAt.Before(comments[j].CreatedAt)
	})
	return comments
}

// Roots returns top-level comments plus any comment whose parent is not
// locally known (the tolerant-orphan policy).
func (t *Thread) Roots() []Comment {
	all := t.Comments()

	t.mu.Lock()
	defer t.mu.Unlock()

	roots := make([]Comment, 0, len(all))
	for _, c := range all {
		if c.ParentCommentID == nil {
			roots = append(roots, c)
			continue
		}
		if _, ok := t.byID[*c.ParentCommentID]; !ok {
			roots = append(roots, c)
		}
	}
	return roots
}

// Replies returns the direct children of parentID in creation order.
func (t *Thread) Replies(parentID string) []Comment {
	all := t.Comments()

	replies := make([]Comment, 0)
	for _, c := range all {
		if c.ParentCommentID != nil && *c.ParentCommentID == parentID {
			replies = append(replies, c)
		}
	}
	return replies
}
