package handlers

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/daybook-api/internal/dto"
	apierrors "github.com/yukikurage/daybook-api/internal/errors"
	"github.com/yukikurage/daybook-api/internal/middleware"
	"github.com/yukikurage/daybook-api/internal/utils"
)

const dateOnlyLayout = "2006-01-02"

// respond writes the success envelope
func respond(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, dto.Envelope{
		Message:    message,
		Data:       data,
		StatusCode: status,
	})
}

// respondList writes a paginated list inside the envelope
func respondList(c *gin.Context, status int, message string, items interface{}, params utils.PaginationParams, total int64) {
	respond(c, status, message, dto.ListResponse{
		Items:      items,
		Pagination: params.Response(total),
	})
}

// requireUserID reads the authenticated user, answering 401 when absent
func requireUserID(c *gin.Context) (uint64, bool) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return 0, false
	}
	return userID, true
}

// parseIDParam parses a numeric path parameter, answering 400 when invalid
func parseIDParam(c *gin.Context, name, label string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		apierrors.BadRequest(c, fmt.Sprintf("Invalid %s", label))
		return 0, false
	}
	return id, true
}

// parseTimeQuery accepts RFC 3339 timestamps or plain dates (UTC midnight)
func parseTimeQuery(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		t = t.UTC()
		return &t, nil
	}
	t, err := time.Parse(dateOnlyLayout, value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
