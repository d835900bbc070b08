package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"habitflow/internal/model"
	"habitflow/internal/repository"
	"habitflow/internal/rules"
	"habitflow/internal/service"
)

type HabitHandler struct {
	svc    *service.HabitService
	repo   *repository.HabitRepository
	users  service.UserStore
	logger *zap.Logger
}

func NewHabitHandler(
	svc *service.HabitService,
	repo *repository.HabitRepository,
	users service.UserStore,
	logger *zap.Logger,
) *HabitHandler {
	return &HabitHandler{svc: svc, repo: repo, users: users, logger: logger}
}

// actor resolves the authenticated user set by the auth middleware.
func (h *HabitHandler) actor(c *gin.Context) (*model.User, bool) {
	userID := c.GetInt("user_id")
	u, err := h.users.FindByID(c.Request.Context(), userID)
	if err != nil {
		h.logger.Warn("Authenticated user not found", zap.Int("user_id", userID))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unknown user"})
		return nil, false
	}
	return u, true
}

func (h *HabitHandler) Create(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	var in service.CreateHabitInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	habit, err := h.svc.Create(c.Request.Context(), actor, in)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, habit)
}

// List returns the caller's own habits.
func (h *HabitHandler) List(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	limit, offset := pageParams(c.Query("page"), c.Query("page_size"))

	count, err := h.repo.CountByOwner(c.Request.Context(), actor.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	habits, err := h.repo.ListByOwner(c.Request.Context(), actor.ID, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	if habits == nil {
		habits = []model.Habit{}
	}

	c.JSON(http.StatusOK, gin.H{"count": count, "results": habits})
}

// ListPublic returns habits flagged public, visible to any authenticated user.
func (h *HabitHandler) ListPublic(c *gin.Context) {
	limit, offset := pageParams(c.Query("page"), c.Query("page_size"))

	count, err := h.repo.CountPublic(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	habits, err := h.repo.ListPublic(c.Request.Context(), limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	if habits == nil {
		habits = []model.Habit{}
	}

	c.JSON(http.StatusOK, gin.H{"count": count, "results": habits})
}

func (h *HabitHandler) Get(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	habit, err := h.svc.Get(c.Request.Context(), actor, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, habit)
}

// Update handles both PUT and PATCH; fields absent from the body keep their
// persisted values.
func (h *HabitHandler) Update(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var patch rules.Patch
	var req struct {
		PlaceID       *int    `json:"place_id"`
		ActionID      *int    `json:"action_id"`
		IsPleasure    *bool   `json:"is_pleasure"`
		Periodicity   *int    `json:"periodicity"`
		Reward        *string `json:"reward"`
		LinkedHabitID *int    `json:"linked_habit_id"`
		ExecutionTime *int    `json:"execution_time"`
		IsPublic      *bool   `json:"is_public"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	patch = rules.Patch{
		PlaceID:       req.PlaceID,
		ActionID:      req.ActionID,
		IsPleasure:    req.IsPleasure,
		Periodicity:   req.Periodicity,
		Reward:        req.Reward,
		LinkedHabitID: req.LinkedHabitID,
		ExecutionTime: req.ExecutionTime,
		IsPublic:      req.IsPublic,
	}

	habit, err := h.svc.Update(c.Request.Context(), actor, id, patch)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, habit)
}

func (h *HabitHandler) Delete(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	if err := h.svc.Delete(c.Request.Context(), actor, id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
