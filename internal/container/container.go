// Package container wires the CLI's dependencies from configuration.
package container

import (
	"fmt"
	"net/http"

	"fjacquet/fiobank/internal/config"
	"fjacquet/fiobank/internal/logging"
	"fjacquet/fiobank/internal/transport"
	"fjacquet/fiobank/pkg/fiobank"
)

// Container holds all application dependencies and provides methods to access them.
//
// Container is immutable after creation - all fields are private and can only
// be accessed through getter methods.
type Container struct {
	logger logging.Logger
	config *config.Config
	client *fiobank.Client
}

// NewContainer creates and wires all application dependencies.
//
// Parameters:
//   - cfg: Application configuration
//
// Returns:
//   - *Container: Fully wired container with all dependencies
//   - error: Any error encountered during dependency creation
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	return NewContainerWithLogger(cfg, config.ConfigureLoggingFromConfig(cfg))
}

// NewContainerWithLogger is NewContainer with an explicit logger.
func NewContainerWithLogger(cfg *config.Config, logger logging.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	if cfg.API.Token == "" {
		return nil, fmt.Errorf("API token is required (set FIO_TOKEN or pass --token)")
	}

	retry := transport.RetryPolicy{
		MaxAttempts:  cfg.Retry.MaxAttempts,
		InitialDelay: cfg.InitialDelay(),
		MaxDelay:     cfg.MaxDelay(),
	}
	httpClient := &http.Client{Timeout: cfg.Timeout()}
	fetcher := transport.NewHTTPFetcher(cfg.API.BaseURL, cfg.API.Token, httpClient, retry, logger)

	mode := fiobank.NumericFloat
	if cfg.API.Decimal {
		mode = fiobank.NumericDecimal
	}
	client := fiobank.New(cfg.API.Token,
		fiobank.WithFetcher(fetcher),
		fiobank.WithLogger(logger),
		fiobank.WithNumericMode(mode),
	)

	logger.Debug("Container initialized",
		logging.Field{Key: logging.FieldMode, Value: mode.String()},
		logging.Field{Key: logging.FieldAttempt, Value: retry.MaxAttempts})

	return &Container{
		logger: logger,
		config: cfg,
		client: client,
	}, nil
}

// GetLogger returns the application logger.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the configuration the container was built from.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetClient returns the statement client.
func (c *Container) GetClient() *fiobank.Client {
	return c.client
}
