package handler

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/audition-directory-api/pkg/errors"
)

// todayFromQuery reads the optional today=YYYY-MM-DD override. A nil result
// means the service clock decides.
func todayFromQuery(c *gin.Context) (*time.Time, error) {
	raw := strings.TrimSpace(c.Query("today"))
	if raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid today format, expected YYYY-MM-DD")
	}
	return &parsed, nil
}

func intQuery(c *gin.Context, key string) (int, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, appErrors.Clone(appErrors.ErrValidation, key+" must be an integer")
	}
	return value, nil
}

func boolQuery(c *gin.Context, key string) (bool, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return false, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false, appErrors.Clone(appErrors.ErrValidation, key+" must be a boolean")
	}
	return value, nil
}
