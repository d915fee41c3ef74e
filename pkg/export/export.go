// pkg/export/export.go
package export

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/plateful/recipe-egress/pkg/config"
	"github.com/plateful/recipe-egress/pkg/connector"
	"github.com/plateful/recipe-egress/pkg/mapper"
	"github.com/plateful/recipe-egress/pkg/model"
	"github.com/plateful/recipe-egress/pkg/sink"
	"github.com/plateful/recipe-egress/pkg/table"
)

// ExportManager orchestrates one export run: read the document store, map
// every document to a normalized row, assemble the tables, and write the
// table artifacts.
type ExportManager struct {
	source    connector.DocumentSource
	rowMapper *mapper.RowMapper
	writer    *sink.OutputWriter
	postgres  *connector.PostgresConnector // nil when the relational load is disabled
	cfg       *config.Config
	logger    *zap.Logger
}

// NewExportManager creates a new export manager
func NewExportManager(
	source connector.DocumentSource,
	rowMapper *mapper.RowMapper,
	writer *sink.OutputWriter,
	postgres *connector.PostgresConnector,
	cfg *config.Config,
	logger *zap.Logger,
) (*ExportManager, error) {
	if source == nil {
		return nil, errors.New("document source cannot be nil")
	}
	if rowMapper == nil {
		return nil, errors.New("row mapper cannot be nil")
	}
	if writer == nil {
		return nil, errors.New("output writer cannot be nil")
	}
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	return &ExportManager{
		source:    source,
		rowMapper: rowMapper,
		writer:    writer,
		postgres:  postgres,
		cfg:       cfg,
		logger:    logger,
	}, nil
}

// childSet holds one parent's fetched sub-collections
type childSet struct {
	ingredients []model.Document
	steps       []model.Document
}

// Run executes the export. An unreachable store is fatal; a failed child
// fetch for a single parent degrades to "no children" with a warning.
func (m *ExportManager) Run(ctx context.Context) (*ExportResult, error) {
	result := NewExportResult()
	m.logger.Info("Starting export", zap.String("runID", result.RunID))

	asm, err := m.assemble(ctx, result)
	if err != nil {
		result.Complete(false)
		return result, err
	}

	if err := m.writer.EnsureDir(); err != nil {
		result.Complete(false)
		return result, err
	}

	for _, t := range asm.Tables() {
		if err := m.writer.WriteTable(t); err != nil {
			result.Complete(false)
			return result, err
		}
		result.SetRowCount(t.Name, t.Len())
	}

	if m.postgres != nil {
		loaded, err := m.loadPostgres(ctx, asm.Tables())
		if err != nil {
			result.Complete(false)
			return result, err
		}
		result.RowsLoaded = loaded
	}

	result.Complete(true)
	m.logger.Info("Export completed",
		zap.String("runID", result.RunID),
		zap.Int("totalRows", result.TotalRows()),
		zap.Int("warnings", len(result.Warnings)),
		zap.Duration("duration", result.Duration))

	return result, nil
}

// assemble reads the store and builds the five normalized tables
func (m *ExportManager) assemble(ctx context.Context, result *ExportResult) (*table.Assembler, error) {
	recipeDocs, err := m.source.List(ctx, m.cfg.RecipesCollection)
	if err != nil {
		result.AddError(NewErrorRecord(err, ErrorCategoryCollectionLevel).
			WithCollection(m.cfg.RecipesCollection))
		return nil, fmt.Errorf("failed to read recipes: %w", err)
	}

	interactionDocs, err := m.source.List(ctx, m.cfg.InteractionsCollection)
	if err != nil {
		result.AddError(NewErrorRecord(err, ErrorCategoryCollectionLevel).
			WithCollection(m.cfg.InteractionsCollection))
		return nil, fmt.Errorf("failed to read interactions: %w", err)
	}

	userDocs, err := m.source.List(ctx, m.cfg.UsersCollection)
	if err != nil {
		result.AddError(NewErrorRecord(err, ErrorCategoryCollectionLevel).
			WithCollection(m.cfg.UsersCollection))
		return nil, fmt.Errorf("failed to read users: %w", err)
	}

	m.logger.Info("Read source collections",
		zap.Int("recipes", len(recipeDocs)),
		zap.Int("interactions", len(interactionDocs)),
		zap.Int("users", len(userDocs)))

	recipeRows := make([]model.RecipeRow, len(recipeDocs))
	for i, doc := range recipeDocs {
		recipeRows[i] = m.rowMapper.MapRecipe(doc)
	}

	children, err := m.fetchChildren(ctx, recipeDocs, result)
	if err != nil {
		return nil, err
	}

	// Merge in source record order so table ordering stays deterministic
	// regardless of fetch completion order
	asm := table.NewAssembler()
	for i, row := range recipeRows {
		asm.AddRecipe(row)
		for j, doc := range children[i].ingredients {
			asm.AddIngredient(m.rowMapper.MapIngredient(row.RecipeID, j, doc))
		}
		for _, doc := range children[i].steps {
			asm.AddStep(m.rowMapper.MapStep(row.RecipeID, doc))
		}
	}
	for _, doc := range interactionDocs {
		asm.AddInteraction(m.rowMapper.MapInteraction(doc))
	}
	for _, doc := range userDocs {
		asm.AddUser(m.rowMapper.MapUser(doc))
	}

	return asm, nil
}

// fetchChildren reads each recipe's sub-collections with bounded
// concurrency. Results land in a slice indexed by source position.
func (m *ExportManager) fetchChildren(
	ctx context.Context,
	recipeDocs []model.Document,
	result *ExportResult,
) ([]childSet, error) {
	children := make([]childSet, len(recipeDocs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(m.cfg.FetchConcurrency)

	for i, doc := range recipeDocs {
		i, doc := i, doc
		g.Go(func() error {
			children[i] = childSet{
				ingredients: m.fetchSub(gctx, doc.ID, m.cfg.IngredientsSub, result),
				steps:       m.fetchSub(gctx, doc.ID, m.cfg.StepsSub, result),
			}
			return nil
		})
	}

	// Workers never return errors: per-parent failures degrade to empty
	// child sets. Wait still surfaces context cancellation.
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("child fetch aborted: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("child fetch aborted: %w", err)
	}

	return children, nil
}

// fetchSub reads one sub-collection for one parent, degrading to empty on
// failure. FetchTimeout bounds the call so one hung fetch cannot stall the
// run.
func (m *ExportManager) fetchSub(
	ctx context.Context,
	parentID, sub string,
	result *ExportResult,
) []model.Document {
	if m.cfg.FetchTimeout > 0 {
		fetchCtx, cancel := context.WithTimeout(ctx, m.cfg.FetchTimeout)
		defer cancel()
		ctx = fetchCtx
	}

	docs, err := m.source.ListChildren(ctx, m.cfg.RecipesCollection, parentID, sub)
	if err != nil {
		m.logger.Warn("Child fetch failed, treating as no children",
			zap.String("parent", parentID),
			zap.String("subcollection", sub),
			zap.Error(err))
		result.AddError(NewErrorRecord(err, ErrorCategoryChildFetch).
			WithCollection(sub).
			WithParent(parentID))
		result.AddWarning(fmt.Sprintf("no %s found for %s: %v", sub, parentID, err))
		return nil
	}
	return docs
}

// loadPostgres mirrors the exported tables into PostgreSQL
func (m *ExportManager) loadPostgres(ctx context.Context, tables []*table.Table) (int64, error) {
	if err := m.postgres.Validate(ctx); err != nil {
		return 0, fmt.Errorf("postgres validation failed: %w", err)
	}

	var total int64
	for _, t := range tables {
		if err := m.postgres.CreateTableIfNotExists(ctx, t.Name, t.Columns); err != nil {
			return total, err
		}

		loaded, err := m.postgres.ReplaceRows(ctx, t.Name, t.Columns, t.Rows, 1000)
		if err != nil {
			return total, fmt.Errorf("failed to load table %s: %w", t.Name, err)
		}
		total += loaded

		m.logger.Info("Loaded table into PostgreSQL",
			zap.String("table", t.Name),
			zap.Int64("rows", loaded))
	}

	return total, nil
}
