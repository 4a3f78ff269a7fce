package handlers

import (
	"context"
	"os"
	"runtime"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/shirou/gopsutil/v4/process"
)

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	version   string
	startTime time.Time
	locales   []string
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(version string) *HealthHandler {
	return &HealthHandler{
		version:   version,
		startTime: time.Now(),
	}
}

// WithLocales sets the locales reported as having bundled data.
func (h *HealthHandler) WithLocales(locales []string) *HealthHandler {
	h.locales = locales
	return h
}

// LivezInput is the input for the liveness endpoint.
type LivezInput struct{}

// LivezResponse is the liveness body.
type LivezResponse struct {
	Status string `json:"status"`
}

// LivezOutput is the output for the liveness endpoint.
type LivezOutput struct {
	Body LivezResponse
}

// HealthInput is the input for the health check endpoint.
type HealthInput struct{}

// HealthOutput is the output for the health check endpoint.
type HealthOutput struct {
	Body HealthResponse
}

// HealthResponse describes the running service.
type HealthResponse struct {
	Status        string            `json:"status"`
	Timestamp     string            `json:"timestamp"`
	Version       string            `json:"version"`
	Uptime        string            `json:"uptime"`
	UptimeSeconds float64           `json:"uptime_seconds"`
	Goroutines    int               `json:"goroutines"`
	Memory        ProcessMemoryInfo `json:"memory"`
	Locales       []string          `json:"locales,omitempty"`
}

// ProcessMemoryInfo reports memory held by this process.
type ProcessMemoryInfo struct {
	RSSMB       float64 `json:"rss_mb"`
	VMSMB       float64 `json:"vms_mb"`
	HeapAllocMB float64 `json:"heap_alloc_mb"`
	Percentage  float32 `json:"percentage_of_system"`
}

// Register registers the health routes with the API.
func (h *HealthHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "getLivez",
		Method:      "GET",
		Path:        "/livez",
		Summary:     "Liveness probe",
		Tags:        []string{"System"},
	}, h.GetLivez)

	huma.Register(api, huma.Operation{
		OperationID: "getHealth",
		Method:      "GET",
		Path:        "/health",
		Summary:     "Health check",
		Description: "Returns the health status of the service including process metrics",
		Tags:        []string{"System"},
	}, h.GetHealth)
}

// GetLivez reports that the process is serving requests.
func (h *HealthHandler) GetLivez(_ context.Context, _ *LivezInput) (*LivezOutput, error) {
	return &LivezOutput{Body: LivezResponse{Status: "ok"}}, nil
}

// GetHealth returns the health status of the service.
func (h *HealthHandler) GetHealth(ctx context.Context, _ *HealthInput) (*HealthOutput, error) {
	now := time.Now()
	uptime := now.Sub(h.startTime)

	return &HealthOutput{
		Body: HealthResponse{
			Status:        "healthy",
			Timestamp:     now.UTC().Format(time.RFC3339),
			Version:       h.version,
			Uptime:        uptime.Round(time.Second).String(),
			UptimeSeconds: uptime.Seconds(),
			Goroutines:    runtime.NumGoroutine(),
			Memory:        h.getProcessMemoryInfo(ctx),
			Locales:       h.locales,
		},
	}, nil
}

// getProcessMemoryInfo returns process-specific memory information.
// Fields the platform cannot report stay zero.
func (h *HealthHandler) getProcessMemoryInfo(ctx context.Context) ProcessMemoryInfo {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	info := ProcessMemoryInfo{
		HeapAllocMB: float64(ms.HeapAlloc) / 1024 / 1024,
	}

	proc, err := process.NewProcessWithContext(ctx, int32(os.Getpid())) //nolint:gosec // pid fits in int32
	if err != nil {
		return info
	}

	memInfo, err := proc.MemoryInfoWithContext(ctx)
	if err == nil && memInfo != nil {
		info.RSSMB = float64(memInfo.RSS) / 1024 / 1024
		info.VMSMB = float64(memInfo.VMS) / 1024 / 1024
	}
	if pct, err := proc.MemoryPercentWithContext(ctx); err == nil {
		info.Percentage = pct
	}

	return info
}
