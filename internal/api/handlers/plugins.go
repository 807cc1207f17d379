package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/sogebot/sogebot.dev-sub004/internal/auth"
	"github.com/sogebot/sogebot.dev-sub004/internal/database/models"
	"github.com/sogebot/sogebot.dev-sub004/internal/registry"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

type PluginHandler struct {
	store  *registry.Store
	logger *zap.SugaredLogger
}

func NewPluginHandler(store *registry.Store, logger *zap.SugaredLogger) *PluginHandler {
	return &PluginHandler{
		store:  store,
		logger: logger,
	}
}

type createRequest struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Plugin      int64  `json:"plugin"`
	// publisherId, publishedAt, version and votes are accepted in the
	// body for compatibility but never trusted; the server derives
	// them itself.
}

type voteRequest struct {
	Vote int `json:"vote" binding:"required,oneof=-1 1"`
}

// List returns every plugin, projected to the summary field set. The
// plugin payload is excluded from list responses; a fields query
// parameter may narrow the projection further.
func (h *PluginHandler) List(c *gin.Context) {
	var requested []string
	if raw := c.Query("fields"); raw != "" {
		requested = strings.Split(raw, ",")
	}
	fields := registry.NormalizeFields(requested)

	plugins, err := h.store.List(c.Request.Context())
	if err != nil {
		h.internalError(c, err)
		return
	}

	out := make([]map[string]interface{}, 0, len(plugins))
	for _, p := range plugins {
		out = append(out, registry.Project(p, fields))
	}
	c.JSON(http.StatusOK, out)
}

// Get returns the full record including the plugin payload, or a null
// body when the id is unknown.
func (h *PluginHandler) Get(c *gin.Context) {
	p, err := h.store.Get(c.Request.Context(), c.Param("id"))
	if errors.Is(err, registry.ErrNotFound) {
		c.JSON(http.StatusOK, nil)
		return
	}
	if err != nil {
		h.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *PluginHandler) Create(c *gin.Context) {
	callerID, ok := auth.GetCallerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, bindErrors(err))
		return
	}

	record := models.Plugin{
		ID:          req.ID,
		Name:        req.Name,
		Description: req.Description,
		Plugin:      req.Plugin,
		PublisherID: callerID,
		PublishedAt: time.Now().UTC().Format(time.RFC3339),
		Votes:       models.VoteList{},
		Version:     1,
	}

	if verrs := registry.ValidateRecord(record); verrs != nil {
		c.JSON(http.StatusBadRequest, verrs)
		return
	}

	if err := h.store.Create(c.Request.Context(), &record); err != nil {
		if errors.Is(err, registry.ErrConflict) {
			c.JSON(http.StatusConflict, gin.H{
				"error":   "conflict",
				"message": "plugin id already exists",
			})
			return
		}
		h.internalError(c, err)
		return
	}

	h.logger.Infow("Plugin created", "id", record.ID, "publisher", callerID)
	c.JSON(http.StatusOK, record)
}

func (h *PluginHandler) Update(c *gin.Context) {
	callerID, ok := auth.GetCallerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req registry.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, bindErrors(err))
		return
	}

	id := c.Param("id")
	existing, err := h.store.Get(c.Request.Context(), id)
	if errors.Is(err, registry.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "not_found",
			"message": "plugin not found",
		})
		return
	}
	if err != nil {
		h.internalError(c, err)
		return
	}

	merged, err := registry.Authorize(*existing, callerID, req)
	if errors.Is(err, registry.ErrForbidden) {
		h.logger.Warnw("Update rejected: caller is not the publisher",
			"id", id, "caller", callerID, "publisher", existing.PublisherID)
		c.JSON(http.StatusForbidden, gin.H{
			"error":   "forbidden",
			"message": "only the publisher may update this plugin",
		})
		return
	}
	if err != nil {
		h.internalError(c, err)
		return
	}

	if verrs := registry.ValidateRecord(merged); verrs != nil {
		c.JSON(http.StatusBadRequest, verrs)
		return
	}

	if err := h.persist(c, merged); err != nil {
		return
	}

	h.logger.Infow("Plugin updated", "id", id, "version", merged.Version)
	c.JSON(http.StatusOK, merged)
}

func (h *PluginHandler) Delete(c *gin.Context) {
	callerID, ok := auth.GetCallerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	id := c.Param("id")
	existing, err := h.store.Get(c.Request.Context(), id)
	if errors.Is(err, registry.ErrNotFound) {
		c.JSON(http.StatusOK, gin.H{"deleted": 0})
		return
	}
	if err != nil {
		h.internalError(c, err)
		return
	}

	if existing.PublisherID != callerID {
		h.logger.Warnw("Delete rejected: caller is not the publisher",
			"id", id, "caller", callerID, "publisher", existing.PublisherID)
		c.JSON(http.StatusForbidden, gin.H{
			"error":   "forbidden",
			"message": "only the publisher may delete this plugin",
		})
		return
	}

	deleted, err := h.store.Delete(c.Request.Context(), id)
	if err != nil {
		h.internalError(c, err)
		return
	}

	h.logger.Infow("Plugin deleted", "id", id, "publisher", callerID)
	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}

// Vote records the caller's vote on a plugin. One entry per user:
// voting again replaces the previous value.
func (h *PluginHandler) Vote(c *gin.Context) {
	callerID, ok := auth.GetCallerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req voteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, bindErrors(err))
		return
	}

	id := c.Param("id")
	existing, err := h.store.Get(c.Request.Context(), id)
	if errors.Is(err, registry.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "not_found",
			"message": "plugin not found",
		})
		return
	}
	if err != nil {
		h.internalError(c, err)
		return
	}

	merged := *existing
	merged.Votes = existing.Votes.Cast(callerID, req.Vote)
	merged.Version = existing.Version + 1

	if err := h.persist(c, merged); err != nil {
		return
	}

	c.JSON(http.StatusOK, merged)
}

// persist runs the conditional write and maps its failures onto
// responses. The returned error only signals that a response has
// already been written.
func (h *PluginHandler) persist(c *gin.Context, merged models.Plugin) error {
	err := h.store.Update(c.Request.Context(), merged)
	if errors.Is(err, registry.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "not_found",
			"message": "plugin not found",
		})
		return err
	}
	if errors.Is(err, registry.ErrConflict) {
		c.JSON(http.StatusConflict, gin.H{
			"error":   "conflict",
			"message": "plugin was modified concurrently, retry the request",
		})
		return err
	}
	if err != nil {
		h.internalError(c, err)
		return err
	}
	return nil
}

func (h *PluginHandler) internalError(c *gin.Context, err error) {
	h.logger.Errorf("Unhandled registry error: %v", err)
	c.JSON(http.StatusInternalServerError, gin.H{
		"error":   "internal_error",
		"message": "Something went wrong",
	})
}

// bindErrors shapes a JSON binding failure into the same field-level
// error array the record validation produces.
func bindErrors(err error) []registry.FieldError {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make([]registry.FieldError, 0, len(verrs))
		for _, fe := range verrs {
			out = append(out, registry.FieldError{
				Field:       strings.ToLower(fe.Field()),
				Constraints: []string{fe.Tag()},
			})
		}
		return out
	}
	return []registry.FieldError{{Field: "body", Constraints: []string{"malformed json"}}}
}
