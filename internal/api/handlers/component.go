package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/velo-ui/knowledge/internal/component"
	"github.com/velo-ui/knowledge/internal/database"
	"github.com/velo-ui/knowledge/internal/models"
	"github.com/velo-ui/knowledge/internal/repository"
	"github.com/velo-ui/knowledge/pkg/utils"
)

const componentCacheTTL = 10 * time.Minute

type ComponentHandler struct {
	repoManager *repository.RepositoryManager
	cache       *database.Cache
	logger      *logrus.Logger
}

func NewComponentHandler(repoManager *repository.RepositoryManager, cache *database.Cache, logger *logrus.Logger) *ComponentHandler {
	return &ComponentHandler{
		repoManager: repoManager,
		cache:       cache,
		logger:      logger,
	}
}

// HandleGetComponent returns the document, code examples and guidance
// for a component identified by any of its accepted names.
func (h *ComponentHandler) HandleGetComponent(c *gin.Context) {
	startTime := time.Now()

	name := c.Param("name")
	identity, _ := component.Resolve(name)

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	cached := &models.ComponentResponse{}
	if err := h.cache.GetCachedComponentDoc(ctx, identity.Key, cached); err == nil {
		utils.SuccessResponse(c, http.StatusOK, "Component retrieved", cached,
			utils.NewMeta("component", startTime))
		return
	}

	doc, err := h.repoManager.Document.GetByComponentKey(identity.Key)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.ErrorResponse(c, http.StatusNotFound, utils.CodeComponentNotFound, "No documentation for component "+name, nil)
			return
		}
		h.logger.WithError(err).Error("Component lookup failed")
		utils.ErrorResponse(c, http.StatusInternalServerError, utils.CodeInternal, "Component lookup failed", err)
		return
	}

	examples, err := h.repoManager.CodeExample.GetByDocumentID(doc.ID)
	if err != nil {
		// Partial results beat losing the document lookup.
		h.logger.WithError(err).Warn("Failed to load code examples")
	}

	guidance, err := h.repoManager.Guidance.GetByDocumentID(doc.ID)
	if err != nil {
		h.logger.WithError(err).Warn("Failed to load guidance")
	}

	response := models.ComponentResponse{
		Document: *doc,
		Examples: examples,
		Guidance: guidance,
	}

	if err := h.cache.CacheComponentDoc(ctx, identity.Key, &response, componentCacheTTL); err != nil {
		h.logger.WithError(err).Warn("Failed to cache component doc")
	}

	utils.SuccessResponse(c, http.StatusOK, "Component retrieved", response,
		utils.NewMeta("component", startTime))
}

// HandleGetGuidance returns guidance of one kind for a component.
func (h *ComponentHandler) HandleGetGuidance(c *gin.Context) {
	startTime := time.Now()

	name := c.Param("name")
	kind := c.Query("kind")
	identity, _ := component.Resolve(name)

	doc, err := h.repoManager.Document.GetByComponentKey(identity.Key)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.ErrorResponse(c, http.StatusNotFound, utils.CodeComponentNotFound, "No documentation for component "+name, nil)
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, utils.CodeInternal, "Component lookup failed", err)
		return
	}

	var guidance []models.GuidanceEntry
	if kind != "" {
		guidance, err = h.repoManager.Guidance.GetByKind(doc.ID, kind)
	} else {
		guidance, err = h.repoManager.Guidance.GetByDocumentID(doc.ID)
	}
	if err != nil {
		h.logger.WithError(err).Error("Failed to load guidance")
		utils.ErrorResponse(c, http.StatusInternalServerError, utils.CodeInternal, "Failed to load guidance", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Guidance retrieved", guidance,
		utils.NewMeta("component", startTime))
}
