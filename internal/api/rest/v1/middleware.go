package v1

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/Wetooa/mentara-sub026/internal/domain/users"
	"github.com/Wetooa/mentara-sub026/internal/infrastructure/monitoring"
	"github.com/Wetooa/mentara-sub026/internal/pkg/apperr"
	"github.com/Wetooa/mentara-sub026/internal/pkg/config"
	"github.com/Wetooa/mentara-sub026/internal/pkg/logger"
	"github.com/Wetooa/mentara-sub026/internal/pkg/reqctx"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// RequestIDHeader carries the request correlation id
const RequestIDHeader = "X-Request-ID"

// AccessTokenCookie is the cookie set on login for browser clients
const AccessTokenCookie = "access_token"

const currentUserKey = "currentUser"

// RequestMetadata stores the request id, client address and user agent on the request context
func RequestMetadata() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		requestID := ctx.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		ctx.Header(RequestIDHeader, requestID)

		md := reqctx.Metadata{
			RequestID: requestID,
			IPAddress: ctx.ClientIP(),
			UserAgent: ctx.Request.UserAgent(),
		}
		ctx.Request = ctx.Request.WithContext(reqctx.WithMetadata(ctx.Request.Context(), md))
		ctx.Next()
	}
}

// AuthMiddleware resolves the caller from a bearer token or the access token cookie.
// When required is false, anonymous requests pass through without a user.
func AuthMiddleware(authService users.AuthService, required bool) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token := accessTokenFrom(ctx)
		if token == "" {
			if required {
				respondError(ctx, apperr.Unauthorized("Authentication required"))
				return
			}
			ctx.Next()
			return
		}

		user, err := authService.Authenticate(ctx.Request.Context(), token)
		if err != nil {
			if required {
				respondError(ctx, err)
				return
			}
			ctx.Next()
			return
		}

		ctx.Set(currentUserKey, user)
		ctx.Request = ctx.Request.WithContext(reqctx.WithActor(ctx.Request.Context(), user.ID, user.Role))
		ctx.Next()
	}
}

func accessTokenFrom(ctx *gin.Context) string {
	header := ctx.GetHeader("Authorization")
	if header != "" {
		scheme, token, found := strings.Cut(header, " ")
		if found && strings.EqualFold(scheme, users.TokenTypeBearer) {
			return strings.TrimSpace(token)
		}
		return ""
	}
	if cookie, err := ctx.Cookie(AccessTokenCookie); err == nil {
		return cookie
	}
	return ""
}

// RequireRoles lets through only callers whose role is one of roles
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		user := currentUser(ctx)
		if user == nil {
			respondError(ctx, apperr.Unauthorized("Authentication required"))
			return
		}
		for _, role := range roles {
			if user.Role == role {
				ctx.Next()
				return
			}
		}
		respondError(ctx, apperr.Forbidden("Insufficient permissions"))
	}
}

// currentUser returns the authenticated caller or nil
func currentUser(ctx *gin.Context) *users.User {
	value, ok := ctx.Get(currentUserKey)
	if !ok {
		return nil
	}
	user, _ := value.(*users.User)
	return user
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per caller, keyed by user id or client address
type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    rate.Limit
	burst    int
	idle     time.Duration
	now      func() time.Time
}

// NewRateLimiter creates a limiter allowing requestsPerSecond with the given burst
func NewRateLimiter(requestsPerSecond float64, burst int) *RateLimiter {
	return &RateLimiter{
		visitors: make(map[string]*visitor),
		limit:    rate.Limit(requestsPerSecond),
		burst:    burst,
		idle:     10 * time.Minute,
		now:      time.Now,
	}
}

// NewRateLimiters builds the general and the authentication limiters from settings
func NewRateLimiters(settings config.RateLimitSettings) (general, auth *RateLimiter) {
	return NewRateLimiter(settings.RequestsPerSecond, settings.Burst),
		NewRateLimiter(settings.AuthPerSecond, settings.AuthBurst)
}

// Allow reports whether key may make a request now
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	v, ok := rl.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.visitors[key] = v
	}
	v.lastSeen = rl.now()
	rl.mu.Unlock()
	return v.limiter.Allow()
}

// Cleanup forgets callers idle for longer than the idle window
func (rl *RateLimiter) Cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	cutoff := rl.now().Add(-rl.idle)
	for key, v := range rl.visitors {
		if v.lastSeen.Before(cutoff) {
			delete(rl.visitors, key)
		}
	}
}

// StartCleanup runs Cleanup every interval until ctx is done
func (rl *RateLimiter) StartCleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				rl.Cleanup()
			}
		}
	}()
}

// Middleware rejects callers over their budget with 429
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		key := ctx.ClientIP()
		if user := currentUser(ctx); user != nil {
			key = "user:" + user.ID
		}
		if !rl.Allow(key) {
			ctx.Header("Retry-After", "1")
			respondError(ctx, apperr.TooManyRequests("Too many requests, please try again later"))
			return
		}
		ctx.Next()
	}
}

// Metrics records every request on the performance dashboard and the Prometheus collectors.
// Either may be nil. Websocket sessions are not requests and are left out.
func Metrics(dashboard *monitoring.Dashboard, collectors *monitoring.Collectors) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if ctx.FullPath() == WebSocketPath {
			ctx.Next()
			return
		}

		var done func()
		if collectors != nil {
			done = collectors.BeginRequest()
		}
		start := time.Now()
		ctx.Next()
		elapsed := time.Since(start)
		if done != nil {
			done()
		}

		path := ctx.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := ctx.Writer.Status()
		if dashboard != nil {
			dashboard.RecordRequest(path, ctx.Request.Method, elapsed, status)
		}
		if collectors != nil {
			collectors.ObserveRequest(ctx.Request.Method, path, status, elapsed)
		}
	}
}

// requestErrors renders the errors attached to ctx, with stack traces where they carry one
func requestErrors(ctx *gin.Context) string {
	parts := make([]string, 0, len(ctx.Errors))
	for _, e := range ctx.Errors {
		parts = append(parts, fmt.Sprintf("%+v", e.Err))
	}
	return strings.Join(parts, "; ")
}

// AccessLog writes one record per request. Server errors are logged with their cause.
func AccessLog(log logger.Logger) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()

		status := ctx.Writer.Status()
		md := reqctx.FromContext(ctx.Request.Context())
		entry := log.With(
			"method", ctx.Request.Method,
			"path", ctx.Request.URL.Path,
			"status", status,
			"duration", time.Since(start).String(),
			"request_id", md.RequestID,
			"ip", md.IPAddress,
		)
		if md.UserID != "" {
			entry = entry.With("user_id", md.UserID)
		}

		switch {
		case status >= http.StatusInternalServerError:
			entry.Error("request failed: ", requestErrors(ctx))
		case status >= http.StatusBadRequest:
			entry.Warn("request rejected")
		default:
			entry.Debug("request served")
		}
	}
}
