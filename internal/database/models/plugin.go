// Plugin registry model definitions

package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Vote is a single user's vote on a plugin: +1 or -1.
type Vote struct {
	UserID string `json:"userId"`
	Vote   int    `json:"vote"`
}

// VoteList is stored as a JSON column; one entry per voting user.
type VoteList []Vote

func (v VoteList) Value() (driver.Value, error) {
	if v == nil {
		v = VoteList{}
	}
	return json.Marshal(v)
}

func (v *VoteList) Scan(src interface{}) error {
	if src == nil {
		*v = VoteList{}
		return nil
	}
	switch data := src.(type) {
	case []byte:
		return json.Unmarshal(data, v)
	case string:
		return json.Unmarshal([]byte(data), v)
	default:
		return fmt.Errorf("unsupported votes column type %T", src)
	}
}

// Cast records a vote for userID, replacing any earlier entry by the
// same user.
func (v VoteList) Cast(userID string, vote int) VoteList {
	for i := range v {
		if v[i].UserID == userID {
			out := make(VoteList, len(v))
			copy(out, v)
			out[i].Vote = vote
			return out
		}
	}
	return append(v, Vote{UserID: userID, Vote: vote})
}

type Plugin struct {
	ID          string   `json:"id" gorm:"primaryKey"`
	Name        string   `json:"name" gorm:"not null"`
	Description string   `json:"description" gorm:"not null"`
	PublisherID string   `json:"publisherId" gorm:"not null;index"`
	PublishedAt string   `json:"publishedAt" gorm:"not null"`
	Votes       VoteList `json:"votes" gorm:"type:jsonb"`
	Version     int      `json:"version" gorm:"not null;default:1"`
	Plugin      int64    `json:"plugin"`
}

func (p *Plugin) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
