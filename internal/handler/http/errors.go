package handler

import (
	"errors"
	"net/http"

	"github.com/aniladanir/campaign-manager/internal/domain"
	"github.com/gin-gonic/gin"
)

type errorResponse struct {
	Error string `json:"error"`
}

// writeError maps the domain error taxonomy onto status codes.
func (h *Handler) writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidTransition), errors.Is(err, domain.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrInvariantViolation):
		status = http.StatusUnprocessableEntity
	}

	if status == http.StatusInternalServerError {
		h.logger.Error("request failed", "path", c.FullPath(), "error", err.Error())
		c.JSON(status, errorResponse{Error: "internal error"})
		return
	}
	c.JSON(status, errorResponse{Error: err.Error()})
}

func abortBadRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
}

func abortUnavailable(c *gin.Context, msg string) {
	c.JSON(http.StatusServiceUnavailable, errorResponse{Error: msg})
}
