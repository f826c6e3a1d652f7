// Package entity defines data structures shared by the web layer.
package entity

// Msg is the standard API response envelope.
type Msg struct {
	Success bool   `json:"success"`
	Msg     string `json:"msg"`
	Obj     any    `json:"obj"`
}

// Status is a point-in-time snapshot of the host and the panel, served to
// authenticated principals.
type Status struct {
	Uptime       uint64  `json:"uptime"`
	CpuPercent   float64 `json:"cpuPercent"`
	MemCurrent   uint64  `json:"memCurrent"`
	MemTotal     uint64  `json:"memTotal"`
	UserCount    int64   `json:"userCount"`
	ActiveLogins int64   `json:"activeLogins"`
	Version      string  `json:"version"`
}
