package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/opugacodez/frutaria/internal/service"
)

// writeError maps service errors to status codes. Lookups that miss and
// bad input answer in plain text; auth and storage failures answer with a
// JSON message.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.String(http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"message": err.Error()})
	case errors.Is(err, service.ErrValidation), errors.Is(err, service.ErrEmptyCart):
		c.String(http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInsufficientStock),
		errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrCartExists):
		c.String(http.StatusConflict, err.Error())
	default:
		slog.Error("request failed",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"error", err,
		)
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
	}
}

// bindStrict decodes a JSON body into dst, refusing fields dst does not
// declare.
func bindStrict(c *gin.Context, dst any) bool {
	dec := json.NewDecoder(c.Request.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		c.String(http.StatusBadRequest, "invalid JSON: "+err.Error())
		return false
	}
	return true
}

// idParam reads a numeric path parameter. Ids that are not numbers can
// never match a record, so they answer 404 like any other miss.
func idParam(c *gin.Context, name, what string) (int, bool) {
	raw := c.Param(name)
	id, err := strconv.Atoi(raw)
	if err != nil {
		writeError(c, fmt.Errorf("%s %s: %w", what, raw, service.ErrNotFound))
		return 0, false
	}
	return id, true
}
