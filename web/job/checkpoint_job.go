package job

import (
	"user-admin/database"
	"user-admin/logger"
)

// CheckpointJob periodically flushes the sqlite WAL into the main
// database file.
type CheckpointJob struct{}

func NewCheckpointJob() *CheckpointJob {
	return new(CheckpointJob)
}

func (j *CheckpointJob) Run() {
	if err := database.Checkpoint(); err != nil {
		logger.Warning("wal checkpoint failed:", err)
	}
}
