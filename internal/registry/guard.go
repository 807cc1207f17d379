package registry

import (
	"github.com/sogebot/sogebot.dev-sub004/internal/database/models"
)

// UpdateRequest carries the fields a publisher may change on an
// existing plugin. Pointer fields distinguish "absent" from "zero":
// only provided fields are merged. Identity fields (publisherId,
// publishedAt) and the version counter are never client-writable.
type UpdateRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Plugin      *int64  `json:"plugin"`
}

// Authorize decides whether callerID may apply req to existing and, if
// so, returns the merged record with the version counter advanced by
// one. It performs no I/O.
func Authorize(existing models.Plugin, callerID string, req UpdateRequest) (models.Plugin, error) {
	if existing.PublisherID != callerID {
		return models.Plugin{}, ErrForbidden
	}

	merged := existing
	if req.Name != nil {
		merged.Name = *req.Name
	}
	if req.Description != nil {
		merged.Description = *req.Description
	}
	if req.Plugin != nil {
		merged.Plugin = *req.Plugin
	}
	merged.Version = existing.Version + 1

	return merged, nil
}
