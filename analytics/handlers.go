package analytics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

// Handler serves the visit-ingest endpoint and the admin stats API.
type Handler struct {
	store   *Store
	limiter *rateLimiter
}

// NewHandler creates a Handler backed by the given store.
func NewHandler(store *Store) *Handler {
	return &Handler{
		store:   store,
		limiter: newRateLimiter(30, time.Minute),
	}
}

// RegisterRoutes mounts the public ingest endpoint and the admin-only stats
// API. adminOnly guards everything under /admin/.
func (h *Handler) RegisterRoutes(e *echo.Echo, adminOnly echo.MiddlewareFunc) {
	e.POST("/api/analytics/visit", h.Collect)
	e.GET("/admin/analytics/api/stats", h.GetStats, adminOnly)
}

// Collect records a page view sent by the client beacon.
func (h *Handler) Collect(c echo.Context) error {
	ip := c.RealIP()
	if !h.limiter.allow(ip) {
		return c.NoContent(http.StatusTooManyRequests)
	}

	ua := c.Request().UserAgent()
	if IsBot(ua) {
		// Crawlers get a 204 and no row; they would drown the stats.
		return c.NoContent(http.StatusNoContent)
	}

	var req VisitRequest
	if err := c.Bind(&req); err != nil {
		return c.NoContent(http.StatusBadRequest)
	}
	if err := validateVisitRequest(&req); err != nil {
		return c.NoContent(http.StatusBadRequest)
	}

	visit := &Visit{
		VisitorID: GenerateVisitorID(ip, ua),
		IPHash:    HashIP(ip),
		Device:    DeviceFromUserAgent(ua),
		Path:      req.Path,
		Referrer:  sanitizeReferrer(req.Referrer),
		Timestamp: time.Now(),
	}
	if err := h.store.SaveVisit(visit); err != nil {
		return c.NoContent(http.StatusInternalServerError)
	}
	return c.NoContent(http.StatusNoContent)
}

func validateVisitRequest(req *VisitRequest) error {
	req.Path = strings.TrimSpace(req.Path)
	if req.Path == "" || len(req.Path) > 512 || !strings.HasPrefix(req.Path, "/") {
		return echo.ErrBadRequest
	}
	if len(req.Referrer) > 512 {
		req.Referrer = req.Referrer[:512]
	}
	return nil
}

// sanitizeReferrer keeps only the referrer host; full URLs can carry
// query-string identifiers that have no place in the stats.
func sanitizeReferrer(ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}
	ref = strings.TrimPrefix(ref, "https://")
	ref = strings.TrimPrefix(ref, "http://")
	if idx := strings.IndexByte(ref, '/'); idx >= 0 {
		ref = ref[:idx]
	}
	return strings.ToLower(ref)
}

// GetStats returns aggregated stats as JSON. The optional days query
// parameter selects the window (default 30, max 365).
func (h *Handler) GetStats(c echo.Context) error {
	days := 30
	if v := c.QueryParam("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 365 {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "days must be between 1 and 365"})
		}
		days = n
	}
	to := time.Now()
	from := to.AddDate(0, 0, -days)
	stats, err := h.store.GetStats(from, to)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}
