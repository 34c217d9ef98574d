package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"servedc-be/models"
)

// memorySnapshot stubs persistence so mutations can be observed without
// touching disk.
type memorySnapshot struct {
	state *models.AppState
	saves int
}

func (m *memorySnapshot) Load() (*models.AppState, error) { return m.state, nil }

func (m *memorySnapshot) Save(state *models.AppState) error {
	m.state = state
	m.saves++
	return nil
}

func newPost(id, content string, category models.Category, alias string) models.Post {
	return models.Post{
		ID:          id,
		Content:     content,
		Category:    category,
		AuthorAlias: alias,
		Replies:     []models.Reply{},
		Timestamp:   time.Now().UnixMilli(),
	}
}

func TestNewSeedsWhenSnapshotMissing(t *testing.T) {
	s := New(&memorySnapshot{})

	state := s.State()
	require.Len(t, state.Posts, 4)
	assert.Equal(t, "seed-1", state.Posts[0].ID)
	assert.Equal(t, models.Giveaway, state.Posts[0].Category)
	assert.True(t, state.Posts[3].IsSolved)
	assert.Empty(t, state.SeenPostIDs)
	assert.Empty(t, state.MyAliases)
}

func TestNewLoadsExistingSnapshot(t *testing.T) {
	existing := &models.AppState{
		Posts:       []models.Post{newPost("p1", "hello", models.General, "tester")},
		SeenPostIDs: []string{"p1"},
		MyAliases:   []string{"tester"},
	}
	s := New(&memorySnapshot{state: existing})

	state := s.State()
	require.Len(t, state.Posts, 1)
	assert.Equal(t, "p1", state.Posts[0].ID)
	assert.Equal(t, []string{"p1"}, state.SeenPostIDs)
}

func TestNewNormalizesSparseSnapshot(t *testing.T) {
	s := New(&memorySnapshot{state: &models.AppState{
		Posts: []models.Post{{ID: "p1", Content: "no replies field", Category: models.General, AuthorAlias: "x"}},
	}})

	state := s.State()
	assert.NotNil(t, state.Posts[0].Replies)
	assert.NotNil(t, state.SeenPostIDs)
	assert.NotNil(t, state.MyAliases)
}

func TestAddPostPrependsAndRecordsSeenAndAlias(t *testing.T) {
	s := New(&memorySnapshot{})

	s.AddPost(newPost("p1", "first", models.General, "alice"))
	s.AddPost(newPost("p2", "second", models.Safety, "alice"))

	state := s.State()
	require.Len(t, state.Posts, 6)
	assert.Equal(t, "p2", state.Posts[0].ID)
	assert.Equal(t, "p1", state.Posts[1].ID)
	assert.Contains(t, state.SeenPostIDs, "p1")
	assert.Contains(t, state.SeenPostIDs, "p2")
	// alias recorded once despite two posts
	assert.Equal(t, []string{"alice"}, state.MyAliases)
}

func TestMarkSeenIdempotent(t *testing.T) {
	s := New(&memorySnapshot{})

	s.MarkSeen("seed-2")
	once := s.State()
	s.MarkSeen("seed-2")
	twice := s.State()

	assert.Equal(t, once.SeenPostIDs, twice.SeenPostIDs)
	assert.Equal(t, []string{"seed-2"}, twice.SeenPostIDs)
}

func TestMarkSeenUnknownIDIsNoOp(t *testing.T) {
	s := New(&memorySnapshot{})
	s.MarkSeen("nope")
	assert.Empty(t, s.State().SeenPostIDs)
}

func TestMarkSolvedMonotone(t *testing.T) {
	s := New(&memorySnapshot{})

	assert.True(t, s.MarkSolved("seed-1"))
	once := s.State()
	assert.True(t, once.Posts[0].IsSolved)

	assert.True(t, s.MarkSolved("seed-1"))
	twice := s.State()
	assert.Equal(t, once.Posts, twice.Posts)
}

func TestMarkSolvedUnknownID(t *testing.T) {
	s := New(&memorySnapshot{})
	assert.False(t, s.MarkSolved("nope"))
}

func TestAddReplyAppendsInOrder(t *testing.T) {
	s := New(&memorySnapshot{})

	first, ok := s.AddReply("seed-2", "Thanks for the heads up")
	require.True(t, ok)
	second, ok := s.AddReply("seed-2", "Locking up now")
	require.True(t, ok)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Contains(t, first.Author, "neighbor_")

	state := s.State()
	replies := state.Posts[1].Replies
	require.Len(t, replies, 2)
	assert.Equal(t, "Thanks for the heads up", replies[0].Content)
	assert.Equal(t, "Locking up now", replies[1].Content)
}

func TestAddReplyUnknownPostIsNoOp(t *testing.T) {
	s := New(&memorySnapshot{})
	before := s.State()

	_, ok := s.AddReply("nope", "hello?")
	assert.False(t, ok)
	assert.Equal(t, before.Posts, s.State().Posts)
}

func TestEveryMutationPersists(t *testing.T) {
	snap := &memorySnapshot{}
	s := New(snap)
	initial := snap.saves

	s.AddPost(newPost("p1", "hi", models.General, "bob"))
	s.MarkSeen("seed-1")
	s.MarkSolved("p1")
	s.AddReply("p1", "welcome")

	assert.Equal(t, initial+4, snap.saves)
}

func TestStateReturnsCopy(t *testing.T) {
	s := New(&memorySnapshot{})

	state := s.State()
	state.Posts[0].Content = "tampered"
	state.SeenPostIDs = append(state.SeenPostIDs, "tampered")

	assert.NotEqual(t, "tampered", s.State().Posts[0].Content)
	assert.Empty(t, s.State().SeenPostIDs)
}

func TestFileSnapshotRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	snap, err := NewFileSnapshot(path)
	require.NoError(t, err)

	s := New(snap)
	s.AddPost(newPost("p1", "round trip", models.UrgentHelp, "carol"))
	s.AddReply("p1", "on my way")
	s.MarkSolved("p1")

	reloadedSnap, err := NewFileSnapshot(path)
	require.NoError(t, err)
	reloaded := New(reloadedSnap)

	assert.Equal(t, s.State(), reloaded.State())
}

func TestFileSnapshotCorruptFallsBackToSeed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	snap, err := NewFileSnapshot(path)
	require.NoError(t, err)

	s := New(snap)
	state := s.State()
	require.Len(t, state.Posts, 4)
	assert.Equal(t, "seed-1", state.Posts[0].ID)

	// the reseeded state overwrites the corrupt blob
	reloaded, err := snap.Load()
	require.NoError(t, err)
	assert.Len(t, reloaded.Posts, 4)
}
