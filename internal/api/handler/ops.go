// Package handler provides HTTP handlers for the VoltRoute API.
package handler

import (
	"net/http"
	"sort"
	"time"

	"github.com/voltroute/voltroute/internal/api/models"
	"github.com/voltroute/voltroute/internal/api/response"
	"github.com/voltroute/voltroute/internal/provider/fallback"
)

// OpsHandler handles operational endpoints.
type OpsHandler struct {
	name      string
	version   string
	buildTime string
	registry  *fallback.Registry
}

// NewOpsHandler creates a new OpsHandler.
func NewOpsHandler(name, version, buildTime string, registry *fallback.Registry) *OpsHandler {
	return &OpsHandler{
		name:      name,
		version:   version,
		buildTime: buildTime,
		registry:  registry,
	}
}

// HealthCheck handles GET /v1/ops/health - liveness check.
func (h *OpsHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	health := models.Health{
		Status: models.HealthStatusOK,
		Time:   models.Timestamp(time.Now()),
		Details: map[string]interface{}{
			"version":   h.version,
			"buildTime": h.buildTime,
		},
	}
	response.JSON(w, r, http.StatusOK, health)
}

// ReadinessCheck handles GET /v1/ops/ready - readiness check.
// The planner can always serve from its built-in datasets, so readiness does
// not depend on upstream providers.
func (h *OpsHandler) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	health := models.Health{
		Status: models.HealthStatusOK,
		Time:   models.Timestamp(time.Now()),
	}
	response.JSON(w, r, http.StatusOK, health)
}

// SystemStatus handles GET /v1/ops/status - per-provider health.
// The service is DEGRADED when any provider's last call failed; fallback
// datasets keep it serving either way.
func (h *OpsHandler) SystemStatus(w http.ResponseWriter, r *http.Request) {
	status := models.SystemStatus{
		Status: models.HealthStatusOK,
		Time:   models.Timestamp(time.Now()),
	}

	providers := h.registry.GetAllHealth()
	sort.Slice(providers, func(i, j int) bool { return providers[i].Name < providers[j].Name })

	status.Providers = make([]models.ProviderStatus, 0, len(providers))
	for _, p := range providers {
		ps := models.ProviderStatus{
			Provider:  p.Name,
			Status:    models.HealthStatusOK,
			Successes: int64(p.Successes),
			Failures:  int64(p.Failures),
		}
		if p.LastSuccessAt != nil {
			t := models.Timestamp(*p.LastSuccessAt)
			ps.LastSuccessAt = &t
		}
		if p.LastFailureAt != nil {
			t := models.Timestamp(*p.LastFailureAt)
			ps.LastFailureAt = &t
		}
		if !p.IsHealthy() {
			ps.Status = models.HealthStatusDegraded
			status.Status = models.HealthStatusDegraded
			if p.LastError != "" {
				msg := p.LastError
				ps.Message = &msg
			}
		}
		status.Providers = append(status.Providers, ps)
	}

	response.JSON(w, r, http.StatusOK, status)
}

// ServiceInfo handles GET /v1/ops/info - build information.
func (h *OpsHandler) ServiceInfo(w http.ResponseWriter, r *http.Request) {
	info := models.ServiceInfo{
		Name:      h.name,
		Version:   h.version,
		BuildTime: h.buildTime,
	}
	response.JSON(w, r, http.StatusOK, info)
}
