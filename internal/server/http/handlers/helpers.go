package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/webstudio/internal/domain/errors"
	"github.com/polkiloo/webstudio/internal/domain/model"
	"github.com/polkiloo/webstudio/internal/server/http/dto"
	"github.com/polkiloo/webstudio/internal/server/http/middleware"
)

// CurrentActor extracts the authenticated actor from context.
func CurrentActor(c *gin.Context) model.Actor {
	actor, _ := middleware.ActorFrom(c)
	return actor
}

var errorStatus = map[string]int{
	"validation_error":    http.StatusBadRequest,
	"not_found":           http.StatusNotFound,
	"forbidden":           http.StatusForbidden,
	"invalid_transition":  http.StatusConflict,
	"invalid_state":       http.StatusConflict,
	"already_exists":      http.StatusConflict,
	"invalid_credentials": http.StatusUnauthorized,
}

// writeError maps a domain error to its HTTP status and JSON body.
// Unclassified errors become 500 without leaking details.
func writeError(c *gin.Context, err error) {
	kind := domainErrors.Kind(err)
	status, ok := errorStatus[kind]
	if !ok {
		_ = c.Error(err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   kind,
			Message: http.StatusText(http.StatusInternalServerError),
		})
		return
	}
	c.AbortWithStatusJSON(status, dto.ErrorResponse{Error: kind, Message: err.Error()})
}

func badRequest(c *gin.Context, err error) {
	writeError(c, fmt.Errorf("%w: %v", domainErrors.ErrValidation, err))
}
