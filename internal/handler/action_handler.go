package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"habitflow/internal/model"
	"habitflow/internal/repository"
)

type ActionHandler struct {
	repo   *repository.ActionRepository
	logger *zap.Logger
}

func NewActionHandler(repo *repository.ActionRepository, logger *zap.Logger) *ActionHandler {
	return &ActionHandler{repo: repo, logger: logger}
}

func (h *ActionHandler) Create(c *gin.Context) {
	var a model.Action
	if err := c.ShouldBindJSON(&a); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if a.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name required"})
		return
	}

	if err := h.repo.Insert(c.Request.Context(), &a); err != nil {
		h.logger.Error("Create action failed", zap.Error(err))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, a)
}

func (h *ActionHandler) List(c *gin.Context) {
	limit, offset := pageParams(c.Query("page"), c.Query("page_size"))

	count, err := h.repo.Count(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	actions, err := h.repo.List(c.Request.Context(), limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	if actions == nil {
		actions = []model.Action{}
	}

	c.JSON(http.StatusOK, gin.H{"count": count, "results": actions})
}

func (h *ActionHandler) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	a, err := h.repo.FindByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, a)
}

func (h *ActionHandler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	existing, err := h.repo.FindByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	var req struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.Name != nil {
		existing.Name = *req.Name
	}
	if req.Description != nil {
		existing.Description = *req.Description
	}
	if existing.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name required"})
		return
	}

	if err := h.repo.Update(c.Request.Context(), existing); err != nil {
		h.logger.Error("Update action failed", zap.Int("id", id), zap.Error(err))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, existing)
}

func (h *ActionHandler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
