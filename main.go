package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/tablecraft/insight-engine/pkg/config"
	"github.com/tablecraft/insight-engine/pkg/logging"
	"github.com/tablecraft/insight-engine/pkg/models"
	"github.com/tablecraft/insight-engine/pkg/services"
	"github.com/tablecraft/insight-engine/pkg/services/workqueue"
	"github.com/tablecraft/insight-engine/pkg/snapshot"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	// Load configuration
	cfg, err := config.Load(Version)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.NewLogger(cfg.Env, cfg.Log.Level)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("analysis run failed", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("loading snapshot",
		zap.String("path", cfg.SnapshotPath),
		zap.String("version", cfg.Version))

	snap, err := snapshot.Load(cfg.SnapshotPath)
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}

	index := services.BuildRelationshipIndex(snap.Relationships)
	logger.Info("relationship index built",
		zap.Int("relationships", index.Size()),
		zap.Int("tables", len(index.Tables())))

	if cfg.Impact.IsRequested() {
		runImpactQuery(cfg, logger, index)
	}

	return runFileReports(ctx, cfg, logger, snap)
}

// runImpactQuery analyzes the configured edit and prints the impact
// report together with the dependency neighborhood of the edited table.
func runImpactQuery(cfg *config.Config, logger *zap.Logger, index *services.RelationshipIndex) {
	analyzer := services.NewImpactAnalyzer(index, logger)

	var report *models.ImpactReport
	if cfg.Impact.IsUpdate() {
		report = analyzer.AnalyzeUpdateImpact(cfg.Impact.Table, cfg.Impact.Field, cfg.Impact.Value, cfg.Impact.NewValue)
	} else {
		report = analyzer.AnalyzeDeleteImpact(cfg.Impact.Table, cfg.Impact.Field, cfg.Impact.Value)
	}
	fmt.Println(services.RenderImpactReport(report))

	depGraph := analyzer.BuildDependencyGraph(cfg.Impact.Table, cfg.Analysis.GraphDepth)
	cycles := analyzer.FindReferenceCycles(depGraph)
	fmt.Println(services.RenderDependencyGraph(depGraph, cycles))
}

// runFileReports builds a statistical insight report for every file in
// the snapshot and prints them in snapshot order.
func runFileReports(ctx context.Context, cfg *config.Config, logger *zap.Logger, snap *models.DataSnapshot) error {
	if len(snap.Files) == 0 {
		logger.Info("snapshot has no files, skipping per-file analysis")
		return nil
	}

	var opts []workqueue.QueueOption
	if cfg.Analysis.MaxConcurrent > 1 {
		opts = append(opts, workqueue.WithStrategy(workqueue.NewThrottledStrategy(cfg.Analysis.MaxConcurrent)))
	}
	queue := workqueue.New(logger, opts...)
	sink := services.NewInsightResultSink()

	for _, file := range snap.Files {
		queue.Enqueue(services.NewInsightAnalysisTask(file, sink, logger))
	}

	if err := queue.Wait(ctx); err != nil {
		return fmt.Errorf("analysis queue: %w", err)
	}

	// Render in snapshot order regardless of completion order.
	for i := range snap.Files {
		report := sink.Get(snap.Files[i].FileKey)
		if report == nil {
			continue
		}
		fmt.Println(services.RenderInsightReport(report))
	}

	progress := queue.Progress()
	logger.Info("analysis complete",
		zap.Int("files", progress.Total),
		zap.Int("completed", progress.Completed),
		zap.Int("failed", progress.Failed))
	return nil
}
