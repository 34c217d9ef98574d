package store

import (
	"log"
	"sync"
	"time"

	"servedc-be/models"
	idUtils "servedc-be/utils"
)

// Snapshotter persists the full application state as a single blob. It is
// injected so tests can stub persistence.
type Snapshotter interface {
	Load() (*models.AppState, error)
	Save(state *models.AppState) error
}

// Store owns the application state. Every mutation takes the latest state,
// builds a modified copy, swaps it in, and writes a snapshot; the mutex
// serializes mutations so no caller observes a partial update.
type Store struct {
	mu       sync.Mutex
	state    *models.AppState
	snapshot Snapshotter
}

// New loads the persisted snapshot, falling back to the seed dataset when
// none exists or the stored one cannot be parsed.
func New(snapshot Snapshotter) *Store {
	state, err := snapshot.Load()
	if err != nil {
		log.Printf("Snapshot parse failed, reinitializing from seed data: %v", err)
		state = nil
	}
	if state == nil {
		state = models.SeedState()
	}
	normalize(state)

	s := &Store{state: state, snapshot: snapshot}
	s.persist()
	return s
}

// normalize backfills fields a hand-edited or older snapshot may omit.
func normalize(state *models.AppState) {
	if state.Posts == nil {
		state.Posts = []models.Post{}
	}
	if state.SeenPostIDs == nil {
		state.SeenPostIDs = []string{}
	}
	if state.MyAliases == nil {
		state.MyAliases = []string{}
	}
	for i := range state.Posts {
		if state.Posts[i].Replies == nil {
			state.Posts[i].Replies = []models.Reply{}
		}
	}
}

// State returns a deep copy of the current state for readers.
func (s *Store) State() models.AppState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.state.Clone()
}

// AddPost prepends the post to the feed, records its id as seen and its
// author alias as one of ours.
func (s *Store) AddPost(post models.Post) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state.Clone()
	next.Posts = append([]models.Post{post}, next.Posts...)
	if !contains(next.SeenPostIDs, post.ID) {
		next.SeenPostIDs = append(next.SeenPostIDs, post.ID)
	}
	if !contains(next.MyAliases, post.AuthorAlias) {
		next.MyAliases = append(next.MyAliases, post.AuthorAlias)
	}
	s.commit(next)
}

// MarkSeen records that the current client viewed the post. Unknown ids and
// already-seen ids leave the state unchanged.
func (s *Store) MarkSeen(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if contains(s.state.SeenPostIDs, id) || indexOf(s.state.Posts, id) < 0 {
		return
	}
	next := s.state.Clone()
	next.SeenPostIDs = append(next.SeenPostIDs, id)
	s.commit(next)
}

// MarkSolved flips the post's solved flag to true. The transition is one-way
// and idempotent. Returns false when no post has the given id.
func (s *Store) MarkSolved(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := indexOf(s.state.Posts, id)
	if idx < 0 {
		return false
	}
	if s.state.Posts[idx].IsSolved {
		return true
	}
	next := s.state.Clone()
	next.Posts[idx].IsSolved = true
	s.commit(next)
	return true
}

// AddReply appends a reply with a fresh id and pseudonymous author to the
// post. Returns false when no post has the given id. Callers validate
// content before invoking; the store does not see empty replies.
func (s *Store) AddReply(postID, content string) (models.Reply, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := indexOf(s.state.Posts, postID)
	if idx < 0 {
		return models.Reply{}, false
	}
	reply := models.Reply{
		ID:        idUtils.NewID(),
		Author:    idUtils.ReplyAuthor(),
		Content:   content,
		Timestamp: time.Now().UnixMilli(),
	}
	next := s.state.Clone()
	next.Posts[idx].Replies = append(next.Posts[idx].Replies, reply)
	s.commit(next)
	return reply, true
}

// commit swaps in the new state and writes the snapshot. A failed write is
// logged and never rolls back the mutation; the next successful write
// carries the full state anyway.
func (s *Store) commit(next *models.AppState) {
	s.state = next
	s.persist()
}

func (s *Store) persist() {
	if err := s.snapshot.Save(s.state); err != nil {
		log.Printf("Snapshot save failed: %v", err)
	}
}

func contains(values []string, v string) bool {
	for _, value := range values {
		if value == v {
			return true
		}
	}
	return false
}

func indexOf(posts []models.Post, id string) int {
	for i := range posts {
		if posts[i].ID == id {
			return i
		}
	}
	return -1
}
