package server

import (
	"net/http"
	"runtime"
	"time"

	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/aristath/covercall/internal/modules/strikes"
	"github.com/aristath/covercall/internal/utils"
)

// SystemHandlers serves process and host status
type SystemHandlers struct {
	log         zerolog.Logger
	engine      *strikes.Engine
	startupTime time.Time
	sampleStats func() (float64, float64)
}

// SystemStatusResponse is the body of GET /api/system/status
type SystemStatusResponse struct {
	Status      string       `json:"status"`
	Version     string       `json:"version"`
	GoVersion   string       `json:"go_version"`
	Goroutines  int          `json:"goroutines"`
	SystemStats SystemStats  `json:"system_stats"`
	Engine      EngineStatus `json:"engine"`
}

// SystemStats reports host load
type SystemStats struct {
	UptimeHours float64 `json:"uptime_hours"`
	CPUPercent  float64 `json:"cpu_percent"`
	RAMPercent  float64 `json:"ram_percent"`
}

// EngineStatus summarizes the active engine calibration
type EngineStatus struct {
	DefaultTargetProbability float64 `json:"default_target_probability"`
	DefaultHorizons          []int   `json:"default_horizons"`
	RiskFreeRate             float64 `json:"risk_free_rate"`
	MaxParallelHorizons      int     `json:"max_parallel_horizons"`
}

// NewSystemHandlers creates a new system handlers instance
func NewSystemHandlers(log zerolog.Logger, engine *strikes.Engine) *SystemHandlers {
	h := &SystemHandlers{
		log:         log.With().Str("handler", "system").Logger(),
		engine:      engine,
		startupTime: time.Now(),
	}
	h.sampleStats = h.getSystemStats
	return h
}

// HandleSystemStatus returns uptime, host load and engine defaults
func (h *SystemHandlers) HandleSystemStatus(w http.ResponseWriter, r *http.Request) {
	cpuPercent, ramPercent := h.sampleStats()

	response := SystemStatusResponse{
		Status:     "ok",
		Version:    Version,
		GoVersion:  runtime.Version(),
		Goroutines: runtime.NumGoroutine(),
		SystemStats: SystemStats{
			UptimeHours: time.Since(h.startupTime).Hours(),
			CPUPercent:  cpuPercent,
			RAMPercent:  ramPercent,
		},
	}

	if h.engine != nil {
		cfg := h.engine.Config()
		response.Engine = EngineStatus{
			DefaultTargetProbability: cfg.DefaultTargetProbability,
			DefaultHorizons:          cfg.DefaultHorizons,
			RiskFreeRate:             cfg.RiskFreeRate,
			MaxParallelHorizons:      cfg.MaxParallelHorizons,
		}
	}

	utils.WriteResponse(w, r, http.StatusOK, response, h.log)
}

// getSystemStats calculates CPU and RAM usage percentages.
// CPU is sampled over 100ms so the endpoint stays responsive.
func (h *SystemHandlers) getSystemStats() (float64, float64) {
	cpuPercent, err := cpu.Percent(100*time.Millisecond, false)
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to get CPU percentage")
		cpuPercent = []float64{0}
	}

	memStat, err := mem.VirtualMemory()
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to get memory statistics")
		return 0, 0
	}

	cpuAvg := 0.0
	if len(cpuPercent) > 0 {
		cpuAvg = cpuPercent[0]
	}

	return cpuAvg, memStat.UsedPercent
}
