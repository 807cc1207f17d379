package registry

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/sogebot/sogebot.dev-sub004/internal/database/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "registry.db")), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Plugin{}))

	return NewStore(db, zap.NewNop().Sugar())
}

func seed(t *testing.T, s *Store, p models.Plugin) models.Plugin {
	t.Helper()
	require.NoError(t, s.Create(context.Background(), &p))
	return p
}

func TestStoreCreateGeneratesIDWhenAbsent(t *testing.T) {
	s := newTestStore(t)
	p := seed(t, s, models.Plugin{Name: "A", Description: "B", PublisherID: "1", PublishedAt: "2024-01-01T00:00:00Z", Version: 1})
	assert.NotEmpty(t, p.ID)
}

func TestStoreCreateKeepsClientSuppliedID(t *testing.T) {
	s := newTestStore(t)
	p := seed(t, s, models.Plugin{ID: "custom-id", Name: "A", Description: "B", PublisherID: "1", PublishedAt: "2024-01-01T00:00:00Z", Version: 1})
	assert.Equal(t, "custom-id", p.ID)
}

func TestStoreCreateRejectsDuplicateID(t *testing.T) {
	s := newTestStore(t)
	seed(t, s, models.Plugin{ID: "dup", Name: "A", Description: "B", PublisherID: "1", PublishedAt: "2024-01-01T00:00:00Z", Version: 1})

	err := s.Create(context.Background(), &models.Plugin{ID: "dup", Name: "C", Description: "D", PublisherID: "2", PublishedAt: "2024-01-01T00:00:00Z", Version: 1})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestStoreGetRoundTrip(t *testing.T) {
	s := newTestStore(t)
	p := seed(t, s, models.Plugin{
		Name: "A", Description: "B", PublisherID: "1",
		PublishedAt: "2024-01-01T00:00:00Z",
		Votes:       models.VoteList{{UserID: "9", Vote: -1}},
		Version:     1, Plugin: 55,
	})

	got, err := s.Get(context.Background(), p.ID)
	require.NoError(t, err)

	assert.Equal(t, "A", got.Name)
	assert.Equal(t, "B", got.Description)
	assert.Equal(t, int64(55), got.Plugin)
	assert.Equal(t, models.VoteList{{UserID: "9", Vote: -1}}, got.Votes)
	assert.Equal(t, 1, got.Version)
}

func TestStoreGetMissing(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStoreUpdateAppliesConditionalWrite(t *testing.T) {
	s := newTestStore(t)
	p := seed(t, s, models.Plugin{Name: "A", Description: "B", PublisherID: "1", PublishedAt: "2024-01-01T00:00:00Z", Version: 1})

	merged := p
	merged.Name = "A2"
	merged.Version = 2
	require.NoError(t, s.Update(context.Background(), merged))

	got, err := s.Get(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, "A2", got.Name)
	assert.Equal(t, 2, got.Version)
}

func TestStoreUpdateDetectsVersionRace(t *testing.T) {
	s := newTestStore(t)
	p := seed(t, s, models.Plugin{Name: "A", Description: "B", PublisherID: "1", PublishedAt: "2024-01-01T00:00:00Z", Version: 1})

	// Two writers both read version 1 and both try to write version 2.
	first := p
	first.Name = "first"
	first.Version = 2
	require.NoError(t, s.Update(context.Background(), first))

	second := p
	second.Name = "second"
	second.Version = 2
	err := s.Update(context.Background(), second)
	assert.ErrorIs(t, err, ErrConflict)

	got, err := s.Get(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, "first", got.Name)
	assert.Equal(t, 2, got.Version)
}

func TestStoreUpdateMissingRecord(t *testing.T) {
	s := newTestStore(t)
	err := s.Update(context.Background(), models.Plugin{ID: "ghost", Name: "A", Description: "B", Version: 2})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStoreVersionMonotonicAcrossUpdates(t *testing.T) {
	s := newTestStore(t)
	p := seed(t, s, models.Plugin{Name: "A", Description: "B", PublisherID: "1", PublishedAt: "2024-01-01T00:00:00Z", Version: 1})

	for i := 0; i < 5; i++ {
		got, err := s.Get(context.Background(), p.ID)
		require.NoError(t, err)

		merged, err := Authorize(*got, "1", UpdateRequest{})
		require.NoError(t, err)
		require.NoError(t, s.Update(context.Background(), merged))
	}

	got, err := s.Get(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, 6, got.Version)
}

func TestStoreDelete(t *testing.T) {
	s := newTestStore(t)
	p := seed(t, s, models.Plugin{Name: "A", Description: "B", PublisherID: "1", PublishedAt: "2024-01-01T00:00:00Z", Version: 1})

	n, err := s.Delete(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = s.Get(context.Background(), p.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStoreDeleteMissingIsAck(t *testing.T) {
	s := newTestStore(t)
	n, err := s.Delete(context.Background(), "nope")
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}

func TestStoreListOrdering(t *testing.T) {
	s := newTestStore(t)
	seed(t, s, models.Plugin{ID: "b", Name: "B", Description: "x", PublisherID: "1", PublishedAt: "2024-02-01T00:00:00Z", Version: 1})
	seed(t, s, models.Plugin{ID: "a", Name: "A", Description: "x", PublisherID: "1", PublishedAt: "2024-01-01T00:00:00Z", Version: 1})

	plugins, err := s.List(context.Background())
	require.NoError(t, err)
	require.Len(t, plugins, 2)
	assert.Equal(t, "a", plugins[0].ID)
	assert.Equal(t, "b", plugins[1].ID)
}

func TestNormalizeFields(t *testing.T) {
	assert.Equal(t, summaryFields, NormalizeFields(nil))
	assert.Equal(t, []string{"id", "name"}, NormalizeFields([]string{"id", "name"}))
	// The payload column is never projectable in a list.
	assert.Equal(t, []string{"id"}, NormalizeFields([]string{"id", "plugin"}))
	assert.Equal(t, summaryFields, NormalizeFields([]string{"plugin", "bogus"}))
}

func TestProjectExcludesPayload(t *testing.T) {
	p := models.Plugin{ID: "x", Name: "A", Description: "B", PublisherID: "1", PublishedAt: "2024-01-01T00:00:00Z", Version: 1, Plugin: 42}

	out := Project(p, summaryFields)
	assert.NotContains(t, out, "plugin")
	assert.Equal(t, "x", out["id"])
	assert.Equal(t, models.VoteList{}, out["votes"])
}
