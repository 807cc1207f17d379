package registry

import (
	"context"
	"errors"
	"fmt"

	"github.com/sogebot/sogebot.dev-sub004/internal/database/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// summaryFields is the whitelist of fields a list response may carry.
// The plugin payload is deliberately absent: it is only returned on
// single-record reads.
var summaryFields = []string{"id", "description", "name", "votes", "publishedAt", "publisherId", "version"}

// Store owns persistence of plugin records.
type Store struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

func NewStore(db *gorm.DB, logger *zap.SugaredLogger) *Store {
	return &Store{db: db, logger: logger}
}

// List returns every plugin record, oldest first.
func (s *Store) List(ctx context.Context) ([]models.Plugin, error) {
	var plugins []models.Plugin
	if err := s.db.WithContext(ctx).Order("published_at").Find(&plugins).Error; err != nil {
		return nil, fmt.Errorf("failed to list plugins: %w", err)
	}
	return plugins, nil
}

// Get returns the record for id, or ErrNotFound.
func (s *Store) Get(ctx context.Context, id string) (*models.Plugin, error) {
	var p models.Plugin
	err := s.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load plugin %s: %w", id, err)
	}
	return &p, nil
}

// Create persists a new record. The caller is responsible for having
// set the server-side fields (publisher, publishedAt, version, votes).
func (s *Store) Create(ctx context.Context, p *models.Plugin) error {
	err := s.db.WithContext(ctx).Create(p).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrConflict
	}
	if err != nil {
		return fmt.Errorf("failed to create plugin: %w", err)
	}
	return nil
}

// Update persists a merged record produced by Authorize using a
// conditional write: the row is only touched if its stored version
// still equals merged.Version-1. A concurrent writer that got there
// first makes the write affect zero rows, which is reported as
// ErrConflict instead of silently dropping an update.
func (s *Store) Update(ctx context.Context, merged models.Plugin) error {
	res := s.db.WithContext(ctx).
		Model(&models.Plugin{}).
		Where("id = ? AND version = ?", merged.ID, merged.Version-1).
		Updates(map[string]interface{}{
			"name":        merged.Name,
			"description": merged.Description,
			"plugin":      merged.Plugin,
			"votes":       merged.Votes,
			"version":     merged.Version,
		})
	if res.Error != nil {
		return fmt.Errorf("failed to update plugin %s: %w", merged.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		// Distinguish a deleted record from a version race.
		var count int64
		if err := s.db.WithContext(ctx).Model(&models.Plugin{}).Where("id = ?", merged.ID).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check plugin %s: %w", merged.ID, err)
		}
		if count == 0 {
			return ErrNotFound
		}
		s.logger.Warnw("Concurrent update detected", "id", merged.ID, "expected_version", merged.Version-1)
		return ErrConflict
	}
	return nil
}

// Delete removes the record by id and returns the number of rows
// removed. Deleting an absent id is not an error.
func (s *Store) Delete(ctx context.Context, id string) (int64, error) {
	res := s.db.WithContext(ctx).Delete(&models.Plugin{}, "id = ?", id)
	if res.Error != nil {
		return 0, fmt.Errorf("failed to delete plugin %s: %w", id, res.Error)
	}
	return res.RowsAffected, nil
}

// NormalizeFields filters a client-requested projection down to the
// whitelist; an empty request means the full summary.
func NormalizeFields(requested []string) []string {
	if len(requested) == 0 {
		return summaryFields
	}
	allowed := map[string]bool{}
	for _, f := range summaryFields {
		allowed[f] = true
	}
	var out []string
	for _, f := range requested {
		if allowed[f] {
			out = append(out, f)
		}
	}
	if len(out) == 0 {
		return summaryFields
	}
	return out
}

// Project shapes a record for a list response, restricted to fields.
func Project(p models.Plugin, fields []string) map[string]interface{} {
	out := make(map[string]interface{}, len(fields))
	for _, f := range fields {
		switch f {
		case "id":
			out["id"] = p.ID
		case "name":
			out["name"] = p.Name
		case "description":
			out["description"] = p.Description
		case "publisherId":
			out["publisherId"] = p.PublisherID
		case "publishedAt":
			out["publishedAt"] = p.PublishedAt
		case "votes":
			votes := p.Votes
			if votes == nil {
				votes = models.VoteList{}
			}
			out["votes"] = votes
		case "version":
			out["version"] = p.Version
		}
	}
	return out
}
