package monitoring

import (
	"context"
	"time"

	"github.com/akeren/waitlist-api/config/router"
	"github.com/akeren/waitlist-api/internal/log"
	"github.com/akeren/waitlist-api/pkg/constants"
	"github.com/akeren/waitlist-api/pkg/ratelimit"
	"gorm.io/gorm"
)

type Cache interface {
	Ping(ctx context.Context) error
}

// HealthResponse is the fixed liveness body. Monitors match on it verbatim,
// so the shape must not change.
type HealthResponse struct {
	OK      bool   `json:"ok"`
	Service string `json:"service"`
}

type StatusReport struct {
	Database int `json:"database"` // 1 = healthy, 0 = unhealthy
	Cache    int `json:"cache"`    // 1 = healthy, 0 = unhealthy/not configured
	Uptime   int `json:"uptime"`   // uptime in seconds
}

type MonitoringController struct {
	db        *gorm.DB
	logger    *log.Logger
	cache     Cache
	startTime time.Time
}

func NewMonitoringController(db *gorm.DB, logger *log.Logger, cache Cache) *router.RESTController {
	ctrl := &MonitoringController{
		db:        db,
		logger:    logger,
		cache:     cache,
		startTime: time.Now(),
	}

	return router.NewRESTController(
		"MonitoringController",
		"/api",
		func(routerService *router.RouterService, controller *router.RESTController) {

			monitoringRateLimiter := createMonitoringRateLimiter()

			routerService.AddGetHandler(controller, nil, "health", func(c *router.RequestContext) *router.ServiceResult {
				return ctrl.healthCheck(c)
			})

			routerService.AddGetHandler(controller, monitoringRateLimiter, "status", func(c *router.RequestContext) *router.ServiceResult {
				return ctrl.status(routerService, c)
			})
		},
	)
}

func createMonitoringRateLimiter() ratelimit.RateLimiter {

	const statusRequestsPerMinute = 10 // status hits the DB; keep it tighter than the default

	config := &ratelimit.RateLimitConfig{
		Requests: statusRequestsPerMinute,
		Window:   time.Minute,
		Redis:    nil,
		Logger:   nil,
	}

	return ratelimit.NewRateLimiter(config)
}

// healthCheck is a pure liveness probe. It must stay dependency-free so the
// service reports healthy even when the database is down.
func (ctrl *MonitoringController) healthCheck(c *router.RequestContext) *router.ServiceResult {
	return router.OKResult(HealthResponse{OK: true, Service: constants.ServiceName})
}

func (ctrl *MonitoringController) status(
	routerService *router.RouterService,
	c *router.RequestContext,
) *router.ServiceResult {
	logger := routerService.GetLogger(c)
	logger.Info("Status endpoint called")

	return router.OKResult(ctrl.performHealthChecks(c.Request.Context(), logger))
}

func (ctrl *MonitoringController) performHealthChecks(ctx context.Context, logger *log.Logger) StatusReport {
	report := StatusReport{
		Uptime: int(time.Since(ctrl.startTime).Seconds()),
	}

	if ctrl.checkDatabase(ctx) {
		report.Database = 1
	} else {
		logger.Error("Database health check failed")
	}

	if ctrl.cache == nil {
		logger.Info("Cache not configured, cache health check skipped")
	} else if ctrl.checkCache(ctx) {
		report.Cache = 1
	} else {
		logger.Error("Cache health check failed")
	}

	return report
}

func (ctrl *MonitoringController) checkDatabase(ctx context.Context) bool {
	sqlDB, err := ctrl.db.DB()
	if err != nil {
		return false
	}

	return sqlDB.PingContext(ctx) == nil
}

func (ctrl *MonitoringController) checkCache(ctx context.Context) bool {
	return ctrl.cache.Ping(ctx) == nil
}
