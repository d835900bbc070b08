package handler

import (
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"

	"habitflow/internal/repository"
	"habitflow/internal/rules"
	"habitflow/internal/service"
)

func respond(err error) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	respondError(c, err)
	return w
}

func TestRespondError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{
			name:   "rule violation carries its message",
			err:    &rules.Violation{Msg: "habit must have a reward or a linked pleasant habit"},
			status: 400,
			body:   `{"error":"habit must have a reward or a linked pleasant habit"}`,
		},
		{
			name:   "referenced row rejects the delete",
			err:    repository.ErrReferenced,
			status: 400,
			body:   `{"error":"still referenced by existing habits"}`,
		},
		{
			name:   "wrapped referenced error still maps",
			err:    fmt.Errorf("delete place 3: %w", repository.ErrReferenced),
			status: 400,
			body:   `{"error":"still referenced by existing habits"}`,
		},
		{
			name:   "not found",
			err:    service.ErrNotFound,
			status: 404,
			body:   `{"error":"not found"}`,
		},
		{
			name:   "no rows",
			err:    pgx.ErrNoRows,
			status: 404,
			body:   `{"error":"not found"}`,
		},
		{
			name:   "forbidden",
			err:    service.ErrForbidden,
			status: 403,
			body:   `{"error":"forbidden"}`,
		},
		{
			name:   "unexpected errors stay opaque",
			err:    errors.New("connection refused"),
			status: 500,
			body:   `{"error":"internal error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := respond(tt.err)
			assert.Equal(t, tt.status, w.Code)
			assert.JSONEq(t, tt.body, w.Body.String())
		})
	}
}
