package registry

import (
	"strings"

	"github.com/sogebot/sogebot.dev-sub004/internal/database/models"

	"github.com/go-playground/validator/v10"
)

// FieldError is one field-level constraint violation, reported to the
// client as part of a 400 response.
type FieldError struct {
	Field       string   `json:"field"`
	Constraints []string `json:"constraints"`
}

var validate = validator.New()

// recordConstraints mirrors the validated subset of a plugin record.
type recordConstraints struct {
	Name        string `validate:"required"`
	Description string `validate:"required"`
}

// ValidateRecord checks the constraints that apply on both create and
// update. A nil result means the record is acceptable.
func ValidateRecord(p models.Plugin) []FieldError {
	err := validate.Struct(recordConstraints{
		Name:        strings.TrimSpace(p.Name),
		Description: strings.TrimSpace(p.Description),
	})
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldError{{Field: "record", Constraints: []string{err.Error()}}}
	}

	byField := map[string]int{}
	var out []FieldError
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		if i, seen := byField[field]; seen {
			out[i].Constraints = append(out[i].Constraints, fe.Tag())
			continue
		}
		byField[field] = len(out)
		out = append(out, FieldError{Field: field, Constraints: []string{fe.Tag()}})
	}
	return out
}
