package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"habitflow/internal/model"
	"habitflow/internal/repository"
)

type PlaceHandler struct {
	repo   *repository.PlaceRepository
	logger *zap.Logger
}

func NewPlaceHandler(repo *repository.PlaceRepository, logger *zap.Logger) *PlaceHandler {
	return &PlaceHandler{repo: repo, logger: logger}
}

func (h *PlaceHandler) Create(c *gin.Context) {
	var p model.Place
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if p.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name required"})
		return
	}

	if err := h.repo.Insert(c.Request.Context(), &p); err != nil {
		h.logger.Error("Create place failed", zap.Error(err))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, p)
}

func (h *PlaceHandler) List(c *gin.Context) {
	limit, offset := pageParams(c.Query("page"), c.Query("page_size"))

	count, err := h.repo.Count(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	places, err := h.repo.List(c.Request.Context(), limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	if places == nil {
		places = []model.Place{}
	}

	c.JSON(http.StatusOK, gin.H{"count": count, "results": places})
}

func (h *PlaceHandler) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	p, err := h.repo.FindByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, p)
}

func (h *PlaceHandler) Update(c *gin.Context) {
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
		h.logger.Error("Update place failed", zap.Int("id", id), zap.Error(err))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, existing)
}

func (h *PlaceHandler) Delete(c *gin.Context) {
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
