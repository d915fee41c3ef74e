// pkg/connector/factory.go
package connector

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/plateful/recipe-egress/pkg/config"
)

// ConnectorFactory creates data store connectors
type ConnectorFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewConnectorFactory creates a new connector factory
func NewConnectorFactory(cfg *config.Config, logger *zap.Logger) *ConnectorFactory {
	return &ConnectorFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateDocumentSource creates a new Firestore-backed document source
func (f *ConnectorFactory) CreateDocumentSource(ctx context.Context) (DocumentSource, error) {
	f.logger.Info("Creating Firestore connector")

	conn, err := NewFirestoreConnector(ctx, f.cfg.Firestore)
	if err != nil {
		return nil, fmt.Errorf("failed to create Firestore connector: %w", err)
	}

	return conn, nil
}

// CreatePostgresConnector creates the optional PostgreSQL sink connector.
// Returns nil without error when the relational load is not configured.
func (f *ConnectorFactory) CreatePostgresConnector(ctx context.Context) (*PostgresConnector, error) {
	if f.cfg.Postgres == nil {
		return nil, nil
	}

	f.logger.Info("Creating PostgreSQL connector")

	conn, err := NewPostgresConnector(ctx, f.cfg.Postgres)
	if err != nil {
		return nil, fmt.Errorf("failed to create PostgreSQL connector: %w", err)
	}

	return conn, nil
}
