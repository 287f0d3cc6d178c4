// Package controllers holds the HTTP handlers for the seven API endpoints.
// Controllers bind and validate input, call one service operation, map the
// result through dto, and write the response. They never touch gorm.
package controllers

import (
	"net/http"
	"strconv"

	"github.com/shashiranjanraj/vyapar/pkg/logger"
	"github.com/shashiranjanraj/vyapar/pkg/response"
)

// parseID parses a {id} path parameter. 0 and garbage are both invalid.
func parseID(raw string) (uint, bool) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// internalError logs the failure with the request id and answers 500.
// Storage being unavailable lands here; the request is terminal either way.
func internalError(w http.ResponseWriter, r *http.Request, err error) {
	logger.WithCtx(r.Context()).Error("internal error",
		"method", r.Method,
		"path", r.URL.Path,
		"error", err.Error(),
	)
	response.Error(w, http.StatusInternalServerError, "Internal Server Error")
}
