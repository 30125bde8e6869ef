package services

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/tablecraft/insight-engine/pkg/models"
	"github.com/tablecraft/insight-engine/pkg/services/workqueue"
)

// InsightResultSink collects per-file reports from analysis tasks. Tasks
// may finish in any order under a throttled queue, so the sink is safe
// for concurrent writers and reports are retrieved by file key.
type InsightResultSink struct {
	mu      sync.Mutex
	reports map[string]*models.FileInsightReport
}

// NewInsightResultSink creates an empty result sink.
func NewInsightResultSink() *InsightResultSink {
	return &InsightResultSink{
		reports: make(map[string]*models.FileInsightReport),
	}
}

// Put stores a report, keyed by the file it was built from.
func (s *InsightResultSink) Put(report *models.FileInsightReport) {
	if report == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports[report.FileKey] = report
}

// Get returns the report for a file key, or nil if none was collected.
func (s *InsightResultSink) Get(fileKey string) *models.FileInsightReport {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reports[fileKey]
}

// Len returns the number of collected reports.
func (s *InsightResultSink) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.reports)
}

// InsightAnalysisTask builds the statistical insight report for a single
// file's records. Each task constructs its own builder: the builder and
// the aggregators underneath it are single-writer, so sharing one across
// tasks would race when the queue runs them in parallel.
type InsightAnalysisTask struct {
	workqueue.BaseTask
	file   models.FileRecords
	sink   *InsightResultSink
	logger *zap.Logger
}

// NewInsightAnalysisTask creates an analysis task for one file.
func NewInsightAnalysisTask(file models.FileRecords, sink *InsightResultSink, logger *zap.Logger) *InsightAnalysisTask {
	return &InsightAnalysisTask{
		BaseTask: workqueue.NewBaseTask(fmt.Sprintf("Analyze %s", models.NormalizeTableName(file.FileKey))),
		file:     file,
		sink:     sink,
		logger:   logger,
	}
}

// Execute implements workqueue.Task.
func (t *InsightAnalysisTask) Execute(ctx context.Context, enqueuer workqueue.TaskEnqueuer) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	builder := NewInsightReportBuilder(t.logger)
	report := builder.BuildReport(t.file)
	t.sink.Put(report)
	return nil
}
