package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"paxala/internal/apperr"

	"github.com/stretchr/testify/assert"
)

func TestKindMatching(t *testing.T) {
	err := apperr.NotFound("Milestone not found")
	wrapped := fmt.Errorf("loading: %w", err)

	assert.True(t, errors.Is(wrapped, apperr.ErrNotFound))
	assert.False(t, errors.Is(wrapped, apperr.ErrConflict))
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(wrapped))
	assert.Equal(t, http.StatusNotFound, apperr.KindOf(wrapped).Status())
	assert.Equal(t, "Milestone not found", apperr.PublicMessage(wrapped))
}

func TestInternalIsOpaque(t *testing.T) {
	err := apperr.Internal("Failed to save task", errors.New("pq: connection reset"))

	assert.Equal(t, apperr.KindInternal, apperr.KindOf(err))
	assert.Equal(t, "Internal server error", apperr.PublicMessage(err))
	assert.Contains(t, err.Error(), "connection reset")

	foreign := errors.New("boom")
	assert.Equal(t, http.StatusInternalServerError, apperr.KindOf(foreign).Status())
	assert.Equal(t, "Internal server error", apperr.PublicMessage(foreign))
}

func TestStatusMapping(t *testing.T) {
	cases := map[error]int{
		apperr.Unauthorized("no session"):   http.StatusUnauthorized,
		apperr.Forbidden("wrong role"):      http.StatusForbidden,
		apperr.Validation("title required"): http.StatusBadRequest,
		apperr.Conflict("slot taken"):       http.StatusConflict,
	}
	for err, status := range cases {
		assert.Equal(t, status, apperr.KindOf(err).Status(), err.Error())
	}
}
