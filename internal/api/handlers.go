package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/catarina-mdias/twitter-customer-support-app-sub001/internal/scoring"
	"github.com/catarina-mdias/twitter-customer-support-app-sub001/internal/service"
)

const (
	defaultCacheDuration  = 10 * time.Minute
	defaultRequestTimeout = 10 * time.Second
)

type cacheKeyType string

const (
	cacheKeyReport cacheKeyType = "http:performance_report"
)

// apiError is the failure document every error response carries. Failures
// are never embedded inside an otherwise-valid result body.
type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func errorBody(code, message string) gin.H {
	return gin.H{"error": apiError{Code: code, Message: message}}
}

type Handlers struct {
	perf     PerformanceService
	cache    Cacher
	logger   *zap.Logger
	sfGroup  singleflight.Group
	cacheTTL time.Duration
}

// NewHandlers initializes the HTTP handlers.
func NewHandlers(perf PerformanceService, cache Cacher, logger *zap.Logger, ttl time.Duration) *Handlers {
	if perf == nil {
		panic("nil PerformanceService provided to NewHandlers")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = defaultCacheDuration
	}
	return &Handlers{
		perf:     perf,
		cache:    cache,
		logger:   logger.Named("http-handler"),
		cacheTTL: ttl,
	}
}

// Register wires all routes onto the engine.
func (h *Handlers) Register(r *gin.Engine) {
	r.GET("/healthz", h.Health)

	v1 := r.Group("/api/v1")
	v1.GET("/performance", h.GetPerformanceReport)
	v1.GET("/performance/teams/:team", h.GetTeamScore)
	v1.GET("/performance/teams/:team/recommendations", h.GetTeamRecommendations)
}

func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

var windowLayouts = []string{time.RFC3339, "2006-01-02"}

func parseWindow(c *gin.Context) (start, end time.Time, err error) {
	parse := func(name string) (time.Time, error) {
		raw := c.Query(name)
		if raw == "" {
			return time.Time{}, fmt.Errorf("query parameter %q is required", name)
		}
		for _, layout := range windowLayouts {
			if t, err := time.Parse(layout, raw); err == nil {
				return t.UTC(), nil
			}
		}
		return time.Time{}, fmt.Errorf("query parameter %q must be RFC 3339 or YYYY-MM-DD", name)
	}

	if start, err = parse("start"); err != nil {
		return
	}
	if end, err = parse("end"); err != nil {
		return
	}
	if end.Before(start) {
		err = fmt.Errorf("end must not be before start")
	}
	return
}

func normalizeKey(prefix cacheKeyType, start, end time.Time) string {
	s := start.UTC().Truncate(24 * time.Hour).Format("2006-01-02")
	e := end.UTC().Truncate(24 * time.Hour).Format("2006-01-02")
	return fmt.Sprintf("%s:%s:%s", prefix, s, e)
}

func (h *Handlers) handleError(c *gin.Context, op string, err error) {
	_ = c.Error(err)

	switch c.Request.Context().Err() {
	case context.Canceled:
		h.logger.Warn("request canceled", zap.String("op", op))
		c.JSON(499, errorBody("canceled", "request canceled"))
		return
	case context.DeadlineExceeded:
		h.logger.Warn("request timeout", zap.String("op", op))
		c.JSON(http.StatusGatewayTimeout, errorBody("timeout", "request timed out"))
		return
	}

	switch {
	case errors.Is(err, service.ErrNoTickets):
		h.logger.Info("no tickets found", zap.String("op", op))
		c.JSON(http.StatusNotFound, errorBody("no_tickets", "no tickets found for the given period"))
	case errors.Is(err, service.ErrUnknownTeam):
		h.logger.Info("unknown team", zap.String("op", op))
		c.JSON(http.StatusNotFound, errorBody("unknown_team", "no such team in the given period"))
	case errors.Is(err, service.ErrStorageFailure):
		h.logger.Error("storage failure", zap.String("op", op), zap.Error(err))
		c.JSON(http.StatusInternalServerError, errorBody("storage_failure", "database error"))
	default:
		h.logger.Error("unexpected error", zap.String("op", op), zap.Error(err))
		c.JSON(http.StatusInternalServerError, errorBody("internal", fmt.Sprintf("%s failed", op)))
	}
}

// GetPerformanceReport serves the full ranked report for a window. Report
// queries are read-through cached on the day-normalized window.
func (h *Handlers) GetPerformanceReport(c *gin.Context) {
	start, end, err := parseWindow(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorBody("bad_window", err.Error()))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), defaultRequestTimeout)
	defer cancel()

	var report *scoring.Report
	if h.cache == nil {
		report, err = h.perf.GetPerformanceReport(ctx, start, end)
	} else {
		cacheKey := normalizeKey(cacheKeyReport, start, end)
		report, err = FindAndCache(ctx, h.cache, &h.sfGroup, cacheKey, h.cacheTTL, h.logger, func(fetchCtx context.Context) (*scoring.Report, error) {
			return h.perf.GetPerformanceReport(fetchCtx, start, end)
		})
	}
	if err != nil {
		h.handleError(c, "GetPerformanceReport", err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// GetTeamScore serves a single team's result for a window.
func (h *Handlers) GetTeamScore(c *gin.Context) {
	start, end, err := parseWindow(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorBody("bad_window", err.Error()))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), defaultRequestTimeout)
	defer cancel()

	score, err := h.perf.GetTeamScore(ctx, c.Param("team"), start, end)
	if err != nil {
		h.handleError(c, "GetTeamScore", err)
		return
	}

	c.JSON(http.StatusOK, score)
}

// GetTeamRecommendations serves advisory text for a team and analysis type.
func (h *Handlers) GetTeamRecommendations(c *gin.Context) {
	start, end, err := parseWindow(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorBody("bad_window", err.Error()))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), defaultRequestTimeout)
	defer cancel()

	team := c.Param("team")
	analysisType := c.Query("analysis_type")

	advice, err := h.perf.GetTeamRecommendations(ctx, team, analysisType, start, end)
	if err != nil {
		h.handleError(c, "GetTeamRecommendations", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"team":            team,
		"analysis_type":   analysisType,
		"recommendations": advice,
	})
}
