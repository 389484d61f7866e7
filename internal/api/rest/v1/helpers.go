package v1

import (
	"strconv"
	"time"

	"github.com/Wetooa/mentara-sub026/internal/domain/shared"
	"github.com/Wetooa/mentara-sub026/internal/domain/users"

	"github.com/gin-gonic/gin"
)

// queryInt reads an integer query parameter, returning fallback when it is absent or malformed
func queryInt(ctx *gin.Context, name string, fallback int) int {
	value := ctx.Query(name)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

// queryBool reads an optional boolean query parameter
func queryBool(ctx *gin.Context, name string) *bool {
	value := ctx.Query(name)
	if value == "" {
		return nil
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return nil
	}
	return &parsed
}

// queryTime reads an optional RFC3339 or YYYY-MM-DD query parameter
func queryTime(ctx *gin.Context, name string) (*time.Time, error) {
	value := ctx.Query(name)
	if value == "" {
		return nil, nil
	}
	parsed, err := parseDate(value)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func pagination(ctx *gin.Context, defaultLimit int) shared.Pagination {
	return shared.NewPagination(queryInt(ctx, "page", shared.DefaultPage), queryInt(ctx, "limit", defaultLimit), defaultLimit)
}

func deviceInfo(ctx *gin.Context) users.DeviceInfo {
	return users.NewDeviceInfo(ctx.ClientIP(), ctx.Request.UserAgent())
}
