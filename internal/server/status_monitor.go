package server

import (
	"context"
	"math"
	"time"

	"github.com/rs/zerolog"
)

// loadChangeThreshold is the move in percentage points that gets logged.
const loadChangeThreshold = 10.0

// StatusMonitor periodically samples host load and logs significant changes
type StatusMonitor struct {
	systemHandlers *SystemHandlers
	log            zerolog.Logger

	// Track previous state
	sampled bool
	lastCPU float64
	lastRAM float64
}

// NewStatusMonitor creates a new status monitor
func NewStatusMonitor(systemHandlers *SystemHandlers, log zerolog.Logger) *StatusMonitor {
	return &StatusMonitor{
		systemHandlers: systemHandlers,
		log:            log.With().Str("component", "status_monitor").Logger(),
	}
}

// Start begins periodic status monitoring until ctx is cancelled
func (m *StatusMonitor) Start(ctx context.Context, interval time.Duration) {
	go m.monitor(ctx, interval)
}

// monitor runs the periodic monitoring loop
func (m *StatusMonitor) monitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// Do initial check
	m.checkStatus()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.checkStatus()
		}
	}
}

// checkStatus samples load and reports whether it moved past the threshold
func (m *StatusMonitor) checkStatus() bool {
	if m.systemHandlers == nil {
		return false
	}

	cpuPercent, ramPercent := m.systemHandlers.sampleStats()

	changed := !m.sampled ||
		math.Abs(cpuPercent-m.lastCPU) >= loadChangeThreshold ||
		math.Abs(ramPercent-m.lastRAM) >= loadChangeThreshold

	if changed {
		m.log.Info().
			Float64("cpu_percent", cpuPercent).
			Float64("ram_percent", ramPercent).
			Msg("Host load changed")
	}

	m.sampled = true
	m.lastCPU = cpuPercent
	m.lastRAM = ramPercent
	return changed
}
