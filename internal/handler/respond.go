package handler

import (
	"net/http"

	"paxala/internal/access"
	"paxala/internal/apperr"
	"paxala/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// respondError writes err as {"error": msg} with the status of its kind.
// The full error stays on the context for the request logger.
func respondError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.AbortWithStatusJSON(apperr.KindOf(err).Status(), gin.H{"error": apperr.PublicMessage(err)})
}

func badRequest(c *gin.Context, err error) {
	_ = c.Error(err)
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
}

// pathID parses the named path parameter as a UUID.
func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name + " format"})
		return uuid.Nil, false
	}
	return id, true
}

// principal returns the authenticated caller or answers 401.
func principal(c *gin.Context) (*access.Principal, bool) {
	p := middleware.CurrentPrincipal(c)
	if p == nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return nil, false
	}
	return p, true
}

// optionalUUID parses s; nil and "" mean no value.
func optionalUUID(s *string) (*uuid.UUID, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	id, err := uuid.Parse(*s)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
