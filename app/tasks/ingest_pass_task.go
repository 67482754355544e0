package tasks

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/petropulse/petropulse/app/ingest"
)

type IngestPassTask struct {
	Task
	ingestor *ingest.Ingestor
	feedURLs []string
	opts     ingest.Options
}

func NewIngestPassTask(ingestor *ingest.Ingestor, feedURLs []string, opts ingest.Options) *IngestPassTask {
	return &IngestPassTask{
		Task:     NewTask(TaskTypeIngestPass, "all feeds"),
		ingestor: ingestor,
		feedURLs: feedURLs,
		opts:     opts,
	}
}

func (t *IngestPassTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	stats, err := t.ingestor.Run(ctx, t.feedURLs, t.opts)
	if err != nil {
		return fmt.Errorf("ingestion pass failed: %w", err)
	}

	slog.Info("Task completed",
		"type", "IngestPass",
		"duration", t.GetDuration(),
		"fetched", stats.Fetched,
		"stored", stats.Stored)

	return nil
}
