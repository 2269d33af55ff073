package model

// TaskStatus is the lifecycle state of a download task
type TaskStatus string

const (
	TaskStatusPending     TaskStatus = "Pending"     // queued, waiting for a slot
	TaskStatusStarting    TaskStatus = "Starting"    // request sent
	TaskStatusDownloading TaskStatus = "Downloading" // body is being written
	TaskStatusStopping    TaskStatus = "Stopping"    // cancel requested
	TaskStatusStopped     TaskStatus = "Stopped"
	TaskStatusCompleted   TaskStatus = "Completed"
	TaskStatusError       TaskStatus = "Error"
)

// String returns the string representation of TaskStatus
func (ts TaskStatus) String() string {
	return string(ts)
}

// IsActive reports whether a worker goroutine owns the task
func (ts TaskStatus) IsActive() bool {
	return ts == TaskStatusStarting || ts == TaskStatusDownloading || ts == TaskStatusStopping
}

// IsFinished reports whether the task reached a terminal state
func (ts TaskStatus) IsFinished() bool {
	return ts == TaskStatusCompleted || ts == TaskStatusStopped || ts == TaskStatusError
}

// CanStop reports whether a stop request would change anything
func (ts TaskStatus) CanStop() bool {
	return ts == TaskStatusPending || ts == TaskStatusStarting || ts == TaskStatusDownloading
}

// CanRetry reports whether the task may be queued again
func (ts TaskStatus) CanRetry() bool {
	return ts == TaskStatusStopped || ts == TaskStatusError
}
