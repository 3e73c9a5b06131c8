package server

import (
	"encoding/json"
	"net/http"
	"runtime"
	"time"

	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/aristath/fundadvisor/internal/modules/funds"
)

// SystemHandlers handles system monitoring endpoints
type SystemHandlers struct {
	log           zerolog.Logger
	startupTime   time.Time
	dataset       *funds.Dataset
	datasetSource string
	statsFunc     func() (float64, float64) // cpu and ram percentages, swappable in tests
}

// NewSystemHandlers creates a new system handlers instance
func NewSystemHandlers(log zerolog.Logger, dataset *funds.Dataset, datasetSource string) *SystemHandlers {
	h := &SystemHandlers{
		log:           log.With().Str("handler", "system").Logger(),
		startupTime:   time.Now(),
		dataset:       dataset,
		datasetSource: datasetSource,
	}
	h.statsFunc = h.getSystemStats
	return h
}

// SystemStatusResponse represents system status
type SystemStatusResponse struct {
	Status        string   `json:"status"` // "healthy" or "degraded"
	DatasetSource string   `json:"dataset_source"`
	FundCount     int      `json:"fund_count"`
	Categories    []string `json:"categories"`
	UptimeSeconds float64  `json:"uptime_seconds"`
	CPUPercent    float64  `json:"cpu_percent"`
	RAMPercent    float64  `json:"ram_percent"`
	Goroutines    int      `json:"goroutines"`
}

// HandleSystemStatus returns dataset and host status
// GET /api/system/status
func (h *SystemHandlers) HandleSystemStatus(w http.ResponseWriter, r *http.Request) {
	h.log.Debug().Msg("Getting system status")

	cpuPercent, ramPercent := h.statsFunc()

	response := SystemStatusResponse{
		Status:        "healthy",
		DatasetSource: h.datasetSource,
		Categories:    []string{},
		UptimeSeconds: time.Since(h.startupTime).Seconds(),
		CPUPercent:    cpuPercent,
		RAMPercent:    ramPercent,
		Goroutines:    runtime.NumGoroutine(),
	}

	if h.dataset == nil || h.dataset.Len() == 0 {
		response.Status = "degraded"
	} else {
		response.FundCount = h.dataset.Len()
		response.Categories = h.dataset.Categories()
	}

	h.writeJSON(w, response)
}

// getSystemStats calculates CPU and RAM usage percentages
// Uses a short 100ms CPU sample to keep the endpoint responsive
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

func (h *SystemHandlers) writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
