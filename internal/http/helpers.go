package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/telecom/internal/database"
	"github.com/mrlokans/telecom/internal/logger"
)

// --- Response Types ---

// ErrorResponse is the standard error response format for all API errors.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"` // machine-readable error code
	Value string `json:"value,omitempty"`
}

// SuccessResponse is a standard success response with optional data.
type SuccessResponse struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// --- Error Response Helpers ---

func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message, Code: "bad_request"})
}

// respondStoreError maps a persistence error onto a status code. Details of
// unanticipated failures are logged, not sent to the client.
func respondStoreError(c *gin.Context, log *logger.Logger, err error) {
	dbErr, ok := database.AsError(err)
	if !ok {
		log.Error("Request failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error", Code: "internal"})
		return
	}

	switch dbErr.Kind {
	case database.KindNotFound:
		c.JSON(http.StatusNotFound, ErrorResponse{Error: dbErr.Message, Code: "not_found"})
	case database.KindDuplicate:
		c.JSON(http.StatusConflict, ErrorResponse{Error: dbErr.Message, Code: "duplicate", Value: dbErr.Value})
	default:
		log.Error("Data access failed", "path", c.FullPath(), "kind", dbErr.Kind.String(), "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "data access error", Code: "data_access"})
	}
}

// --- Success Response Helpers ---

func respondSuccess(c *gin.Context, message string) {
	c.JSON(http.StatusOK, SuccessResponse{Message: message})
}

func respondCreated(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

// --- Request Parsing Helpers ---

// parseIDParam reads a positive integer path parameter. On failure it writes
// a 400 response and returns false.
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		respondBadRequest(c, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
