package health

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/velo-ui/knowledge/internal/database"
	"github.com/velo-ui/knowledge/internal/models"
)

// HealthChecker manages health checks for all backing services.
type HealthChecker struct {
	dbManager  *database.Manager
	healthRepo models.SystemHealthRepository
	logger     *logrus.Logger
}

func NewHealthChecker(dbManager *database.Manager, healthRepo models.SystemHealthRepository, logger *logrus.Logger) *HealthChecker {
	return &HealthChecker{
		dbManager:  dbManager,
		healthRepo: healthRepo,
		logger:     logger,
	}
}

// ServiceHealth represents the health status of one service.
type ServiceHealth struct {
	Name         string `json:"name"`
	Status       string `json:"status"`
	ResponseTime int    `json:"response_time_ms"`
	Error        string `json:"error,omitempty"`
	LastChecked  string `json:"last_checked"`
}

// OverallHealth represents the overall system health.
type OverallHealth struct {
	Status   string          `json:"status"`
	Services []ServiceHealth `json:"services"`
	Uptime   string          `json:"uptime"`
}

// CheckPostgreSQL pings the corpus database.
func (h *HealthChecker) CheckPostgreSQL() ServiceHealth {
	return h.check("postgresql", h.dbManager.PingDatabase)
}

// CheckRedis pings the cache.
func (h *HealthChecker) CheckRedis() ServiceHealth {
	return h.check("redis", h.dbManager.PingRedis)
}

func (h *HealthChecker) check(name string, ping func() error) ServiceHealth {
	start := time.Now()
	err := ping()
	responseTime := int(time.Since(start).Milliseconds())

	status := "healthy"
	errorMsg := ""
	if err != nil {
		status = "unhealthy"
		errorMsg = err.Error()
		h.logger.WithError(err).WithField("service", name).Error("Health check failed")
	}

	h.healthRepo.UpdateServiceHealth(name, status, responseTime, errorMsg)

	return ServiceHealth{
		Name:         name,
		Status:       status,
		ResponseTime: responseTime,
		Error:        errorMsg,
		LastChecked:  time.Now().Format(time.RFC3339),
	}
}

// CheckAll runs every health check and folds the statuses.
func (h *HealthChecker) CheckAll() OverallHealth {
	services := []ServiceHealth{
		h.CheckPostgreSQL(),
		h.CheckRedis(),
	}

	overallStatus := "healthy"
	for _, service := range services {
		if service.Status == "unhealthy" {
			overallStatus = "unhealthy"
			break
		}
		if service.Status == "degraded" && overallStatus == "healthy" {
			overallStatus = "degraded"
		}
	}

	return OverallHealth{
		Status:   overallStatus,
		Services: services,
		Uptime:   h.getUptime(),
	}
}

var startTime = time.Now()

func (h *HealthChecker) getUptime() string {
	return time.Since(startTime).Round(time.Second).String()
}
