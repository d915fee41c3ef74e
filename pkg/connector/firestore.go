// pkg/connector/firestore.go
package connector

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"go.uber.org/zap"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"github.com/plateful/recipe-egress/pkg/config"
	"github.com/plateful/recipe-egress/pkg/model"
)

// FirestoreConnector implements the DocumentSource interface for Firestore
type FirestoreConnector struct {
	client *firestore.Client
	logger *zap.Logger
	cfg    *config.FirestoreConfig
}

// NewFirestoreConnector creates and initializes a new Firestore connector
func NewFirestoreConnector(ctx context.Context, cfg *config.FirestoreConfig) (*FirestoreConnector, error) {
	logger := zap.L().Named("firestore-connector")

	// Log connection attempt (without credentials)
	logger.Info("Connecting to Firestore",
		zap.String("project", cfg.ProjectID),
		zap.String("emulator", cfg.EmulatorHost))

	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	// The client picks up FIRESTORE_EMULATOR_HOST from the environment on
	// its own; nothing extra to wire here.
	client, err := firestore.NewClient(ctx, cfg.ProjectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firestore client: %w", err)
	}

	return &FirestoreConnector{
		client: client,
		logger: logger,
		cfg:    cfg,
	}, nil
}

// List returns every document of a top-level collection in store iteration order
func (c *FirestoreConnector) List(ctx context.Context, collection string) ([]model.Document, error) {
	readCtx, cancel := context.WithTimeout(ctx, c.cfg.QueryTimeout)
	defer cancel()

	docs, err := c.drain(c.client.Collection(collection).Documents(readCtx))
	if err != nil {
		return nil, fmt.Errorf("failed to list collection %s: %w", collection, err)
	}

	c.logger.Debug("Listed collection",
		zap.String("collection", collection),
		zap.Int("documents", len(docs)))

	return docs, nil
}

// ListChildren returns the documents of a sub-collection under one parent
func (c *FirestoreConnector) ListChildren(ctx context.Context, collection, parentID, sub string) ([]model.Document, error) {
	readCtx, cancel := context.WithTimeout(ctx, c.cfg.QueryTimeout)
	defer cancel()

	ref := c.client.Collection(collection).Doc(parentID).Collection(sub)
	docs, err := c.drain(ref.Documents(readCtx))
	if err != nil {
		return nil, fmt.Errorf("failed to list %s/%s/%s: %w", collection, parentID, sub, err)
	}

	return docs, nil
}

// drain consumes a document iterator into raw documents, preserving
// iteration order
func (c *FirestoreConnector) drain(it *firestore.DocumentIterator) ([]model.Document, error) {
	defer it.Stop()

	docs := make([]model.Document, 0)
	for {
		snap, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}

		docs = append(docs, model.Document{
			ID:     snap.Ref.ID,
			Fields: snap.Data(),
		})
	}

	return docs, nil
}

// Validate verifies the store is reachable by listing root collections
func (c *FirestoreConnector) Validate(ctx context.Context) error {
	readCtx, cancel := context.WithTimeout(ctx, c.cfg.QueryTimeout)
	defer cancel()

	it := c.client.Collections(readCtx)
	if _, err := it.Next(); err != nil && err != iterator.Done {
		return fmt.Errorf("firestore validation failed: %w", err)
	}

	c.logger.Info("Firestore connection validated",
		zap.String("project", c.cfg.ProjectID))

	return nil
}

// Close closes the Firestore client
func (c *FirestoreConnector) Close() error {
	c.logger.Info("Closing Firestore client")
	return c.client.Close()
}
