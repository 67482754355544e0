package tasks

// TaskSchedulerInterface defines the interface for task scheduling operations.
// Used by the main application to manage background ingestion.
// Example usage:
//
//	scheduler := NewScheduler(ingestor, feedURLs)
//	scheduler.Start()
//	defer scheduler.Stop()
type TaskSchedulerInterface interface {
	Start()
	Stop()
	EnqueueTask(task TaskInterface) error
}
