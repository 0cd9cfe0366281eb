package adminapi

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/load"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/mdnsbridge/mdnsbridge/internal/listener"
)

// Handler holds the dependencies the admin endpoints read from; it never
// mutates listener state, only reports it.
type Handler struct {
	stats     *listener.Stats
	recent    *RecentBuffer
	startTime time.Time
}

// NewHandler builds a Handler. recent may be nil, in which case /debug/
// always reports zero recent summaries.
func NewHandler(stats *listener.Stats, recent *RecentBuffer) *Handler {
	return &Handler{stats: stats, recent: recent, startTime: time.Now()}
}

// Health godoc
// @Summary Liveness check
// @Description Reports ok as soon as the process is up, independent of whether any datagram has ever been received.
// @Tags system
// @Produce json
// @Success 200 {object} adminapi.StatusResponse
// @Router /healthz [get]
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, StatusResponse{Status: "ok"})
}

// Statsz godoc
// @Summary Rolling bridge statistics
// @Description Returns datagram counters by outcome plus host CPU/memory metrics.
// @Tags system
// @Produce json
// @Success 200 {object} adminapi.StatsResponse
// @Router /statsz [get]
func (h *Handler) Statsz(c *gin.Context) {
	uptime := time.Since(h.startTime)

	resp := StatsResponse{
		Uptime:        uptime.Round(time.Second).String(),
		UptimeSeconds: int64(uptime.Seconds()),
		StartTime:     h.startTime,
	}

	if h.stats != nil {
		snap := h.stats.Snapshot()
		resp.Seen = snap.Seen
		resp.Parsed = snap.Parsed
		resp.Dropped = snap.Dropped
		resp.RateLimited = snap.RateLimited
		for kind, count := range snap.ParseErrors {
			resp.ParseErrors = append(resp.ParseErrors, ParseErrorCount{Kind: kind, Count: count})
		}
	}

	resp.Host.NumCPU = runtime.NumCPU()
	if vm, err := mem.VirtualMemory(); err == nil {
		resp.Host.MemTotalMB = float64(vm.Total) / 1024 / 1024
		resp.Host.MemUsedMB = float64(vm.Used) / 1024 / 1024
		resp.Host.MemUsedPercent = vm.UsedPercent
	}
	if pct, err := cpu.Percent(200*time.Millisecond, false); err == nil && len(pct) > 0 {
		resp.Host.CPUUsedPercent = pct[0]
	}
	if avg, err := load.Avg(); err == nil {
		resp.Host.LoadAverage1Min = avg.Load1
	}

	c.JSON(http.StatusOK, resp)
}

// RecentJSON serves the last N decoded summaries as JSON. The embedded
// /debug/ static page (see debug.go) polls this endpoint from the
// browser rather than the server rendering HTML itself.
// @Summary Recently decoded datagrams
// @Description Returns the most recently decoded mDNS summaries, newest first.
// @Tags debug
// @Produce json
// @Success 200 {array} summary.Summary
// @Router /debug/recent.json [get]
func (h *Handler) RecentJSON(c *gin.Context) {
	if h.recent == nil {
		c.JSON(http.StatusOK, []any{})
		return
	}
	c.JSON(http.StatusOK, h.recent.Recent())
}
