// Package httpx carries small HTTP helpers shared by the API and gateway tiers.
package httpx

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// HeaderSharerUserID names the header identifying the acting user. Every
// route except user creation and user reads requires it.
const HeaderSharerUserID = "X-Sharer-User-Id"

var (
	ErrMissingUserHeader = errors.New("X-Sharer-User-Id header is required")
	ErrBadUserHeader     = errors.New("X-Sharer-User-Id header must be a positive integer")
)

// UserID extracts the acting user's id from the identity header.
func UserID(c *gin.Context) (int64, error) {
	raw := strings.TrimSpace(c.GetHeader(HeaderSharerUserID))
	if raw == "" {
		return 0, ErrMissingUserHeader
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrBadUserHeader
	}
	return id, nil
}

// PathID parses a numeric path parameter.
func PathID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New(name + " must be a positive integer")
	}
	return id, nil
}
