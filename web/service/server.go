package service

import (
	"user-admin/config"
	"user-admin/database"
	"user-admin/database/model"
	"user-admin/logger"
	"user-admin/web/entity"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
	"go.uber.org/atomic"
)

// activeLogins counts principals that logged in and have not logged out.
var activeLogins = atomic.NewInt64(0)

// SessionOpened records a successful login.
func SessionOpened() { activeLogins.Inc() }

// SessionClosed records a logout. Sessions that silently expire are not
// observed, so the gauge is an upper bound.
func SessionClosed() {
	if activeLogins.Dec() < 0 {
		activeLogins.Store(0)
	}
}

// ServerService produces host and panel status snapshots.
type ServerService struct{}

func (s *ServerService) GetStatus() *entity.Status {
	status := &entity.Status{
		Version:      config.GetVersion(),
		ActiveLogins: activeLogins.Load(),
	}

	if uptime, err := host.Uptime(); err != nil {
		logger.Warning("get uptime failed:", err)
	} else {
		status.Uptime = uptime
	}

	if percents, err := cpu.Percent(0, false); err != nil {
		logger.Warning("get cpu percent failed:", err)
	} else if len(percents) > 0 {
		status.CpuPercent = percents[0]
	}

	if memInfo, err := mem.VirtualMemory(); err != nil {
		logger.Warning("get virtual memory failed:", err)
	} else {
		status.MemCurrent = memInfo.Used
		status.MemTotal = memInfo.Total
	}

	var count int64
	if err := database.GetDB().Model(&model.User{}).Count(&count).Error; err != nil {
		logger.Warning("count users failed:", err)
	} else {
		status.UserCount = count
	}

	return status
}

// GetLogs exposes the in-memory log buffer to the panel.
func (s *ServerService) GetLogs(count int, level string) []string {
	return logger.GetLogs(count, level)
}
