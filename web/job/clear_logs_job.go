// Package job contains the scheduled maintenance jobs of the panel.
package job

import (
	"user-admin/logger"
)

// ClearLogsJob truncates the log file so it does not grow unbounded.
type ClearLogsJob struct{}

func NewClearLogsJob() *ClearLogsJob {
	return new(ClearLogsJob)
}

func (j *ClearLogsJob) Run() {
	if err := logger.TruncateLogFile(); err != nil {
		logger.Warning("clear logs failed:", err)
	}
}
