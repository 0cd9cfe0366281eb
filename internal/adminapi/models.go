package adminapi

import "time"

// StatusResponse mirrors the teacher's liveness response shape.
type StatusResponse struct {
	Status string `json:"status"`
}

// ParseErrorCount names one wire.Kind and how many datagrams were
// dropped for it.
type ParseErrorCount struct {
	Kind  string `json:"kind"`
	Count uint64 `json:"count"`
}

// HostStats carries the gopsutil-sourced host metrics, same field shape
// as the teacher's models.CPUStats/MemoryStats.
type HostStats struct {
	NumCPU          int     `json:"num_cpu"`
	CPUUsedPercent  float64 `json:"cpu_used_percent"`
	MemTotalMB      float64 `json:"mem_total_mb"`
	MemUsedMB       float64 `json:"mem_used_mb"`
	MemUsedPercent  float64 `json:"mem_used_percent"`
	LoadAverage1Min float64 `json:"load_average_1min"`
}

// StatsResponse is the /statsz payload: rolling listener counters plus
// host metrics.
type StatsResponse struct {
	Uptime        string            `json:"uptime"`
	UptimeSeconds int64             `json:"uptime_seconds"`
	StartTime     time.Time         `json:"start_time"`
	Seen          uint64            `json:"datagrams_seen"`
	Parsed        uint64            `json:"datagrams_parsed"`
	Dropped       uint64            `json:"datagrams_dropped"`
	RateLimited   uint64            `json:"datagrams_rate_limited"`
	ParseErrors   []ParseErrorCount `json:"parse_errors,omitempty"`
	Host          HostStats         `json:"host"`
}
