// cmd/recipe-egress/main.go
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/plateful/recipe-egress/pkg/analytics"
	"github.com/plateful/recipe-egress/pkg/config"
	"github.com/plateful/recipe-egress/pkg/connector"
	"github.com/plateful/recipe-egress/pkg/mapper"
	"github.com/plateful/recipe-egress/pkg/model"
	"github.com/plateful/recipe-egress/pkg/sink"
	"github.com/plateful/recipe-egress/pkg/table"
	"github.com/plateful/recipe-egress/pkg/validator"

	exportpkg "github.com/plateful/recipe-egress/pkg/export"
)

func main() {
	// .env is optional; real environments set variables directly
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	logger, err := buildLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	stage := "all"
	if len(os.Args) > 1 {
		stage = os.Args[1]
	}

	ctx := context.Background()

	switch stage {
	case "export":
		err = runExport(ctx, cfg, logger)
	case "validate":
		err = runValidate(cfg, logger)
	case "analyze":
		err = runAnalyze(cfg, logger)
	case "all":
		err = runExport(ctx, cfg, logger)
		if err == nil {
			err = runValidate(cfg, logger)
		}
		if err == nil {
			err = runAnalyze(cfg, logger)
		}
	default:
		fmt.Fprintf(os.Stderr, "usage: %s [export|validate|analyze|all]\n", os.Args[0])
		os.Exit(1)
	}

	// Only fatal/setup errors reach here; data-quality failures are
	// reported in the artifacts and still exit 0
	if err != nil {
		logger.Error("Run failed", zap.String("stage", stage), zap.Error(err))
		os.Exit(1)
	}
}

// buildLogger constructs the zap logger from config
func buildLogger(cfg *config.Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.LogFormat == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}

// runExport reads the document store and writes the normalized tables
func runExport(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	factory := connector.NewConnectorFactory(cfg, logger)

	source, err := factory.CreateDocumentSource(ctx)
	if err != nil {
		return err
	}
	defer source.Close()

	if err := source.Validate(ctx); err != nil {
		return err
	}

	postgres, err := factory.CreatePostgresConnector(ctx)
	if err != nil {
		return err
	}
	if postgres != nil {
		defer postgres.Close()
	}

	writer, err := sink.NewOutputWriter(cfg.OutputDir, logger)
	if err != nil {
		return err
	}

	manager, err := exportpkg.NewExportManager(
		source,
		mapper.NewRowMapper(logger),
		writer,
		postgres,
		cfg,
		logger,
	)
	if err != nil {
		return err
	}

	result, err := manager.Run(ctx)
	if err != nil {
		return err
	}

	for _, t := range []string{
		model.TableRecipes, model.TableIngredients, model.TableSteps,
		model.TableInteractions, model.TableUsers,
	} {
		logger.Info("Exported table",
			zap.String("table", t),
			zap.Int("rows", result.RowCounts[t]))
	}

	return nil
}

// loadTables reads the five table artifacts back from the output directory
func loadTables(writer *sink.OutputWriter) ([]*table.Table, error) {
	names := []string{
		model.TableRecipes, model.TableIngredients, model.TableSteps,
		model.TableInteractions, model.TableUsers,
	}

	tables := make([]*table.Table, 0, len(names))
	for _, name := range names {
		t, err := writer.ReadTable(name)
		if err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	return tables, nil
}

// runValidate validates the exported tables and writes the validation
// artifacts
func runValidate(cfg *config.Config, logger *zap.Logger) error {
	writer, err := sink.NewOutputWriter(cfg.OutputDir, logger)
	if err != nil {
		return err
	}
	if err := writer.EnsureDir(); err != nil {
		return err
	}

	tables, err := loadTables(writer)
	if err != nil {
		return err
	}

	v, err := validator.NewValidator(logger)
	if err != nil {
		return err
	}

	result := v.ValidateAll(tables)

	if err := writer.WriteViolationsCSV(result.Violations); err != nil {
		return err
	}
	if err := writer.WriteSummaryCSV(result.Summaries); err != nil {
		return err
	}
	if err := writer.WriteValidationJSON(result.Report); err != nil {
		return err
	}

	if result.Report.Passed() {
		logger.Info("Validation passed: all rows valid")
	} else {
		logger.Warn("Validation found invalid rows",
			zap.Int("invalid_records", result.Report.InvalidCount))
	}

	return nil
}

// runAnalyze computes analytics over the exported tables and writes the
// text report
func runAnalyze(cfg *config.Config, logger *zap.Logger) error {
	writer, err := sink.NewOutputWriter(cfg.OutputDir, logger)
	if err != nil {
		return err
	}
	if err := writer.EnsureDir(); err != nil {
		return err
	}

	tables, err := loadTables(writer)
	if err != nil {
		return err
	}

	engine, err := analytics.NewEngine(logger)
	if err != nil {
		return err
	}

	summary := engine.Compute(tables[0], tables[1], tables[2], tables[3], tables[4])
	report := analytics.RenderReport(summary)

	if err := writer.WriteAnalyticsSummary(report); err != nil {
		return err
	}

	logger.Info("Analytics completed",
		zap.Int("recipes", summary.RecipeCount),
		zap.Float64("prep_likes_correlation", summary.PrepLikesCorrelation))

	return nil
}
