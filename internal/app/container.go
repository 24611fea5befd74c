package app

import (
	"context"
	"fmt"

	"github.com/acme/voice-call-runner/internal/artifact"
	"github.com/acme/voice-call-runner/internal/config"
	"github.com/acme/voice-call-runner/internal/domain"
	"github.com/acme/voice-call-runner/internal/lifecycle"
	"github.com/acme/voice-call-runner/internal/repository"
	"github.com/acme/voice-call-runner/internal/repository/localfs"
	"github.com/acme/voice-call-runner/internal/telephony"
	telephonyMock "github.com/acme/voice-call-runner/internal/telephony/mock"
	"github.com/acme/voice-call-runner/internal/telephony/retell"
	"github.com/acme/voice-call-runner/pkg/logger"
)

// Container wires together the run's dependencies.
type Container struct {
	Config     *config.Config
	Logger     *logger.Logger
	Provider   telephony.Provider
	Fetcher    *artifact.Fetcher
	Store      repository.ArtifactStore
	Controller *lifecycle.Controller
}

// Build constructs a container for the given configuration path.
func Build(ctx context.Context, configPath string) (*Container, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	lg, err := logger.New(cfg.App.Env)
	if err != nil {
		return nil, err
	}

	var provider telephony.Provider
	switch cfg.Provider.Name {
	case "retell", "":
		provider = retell.NewClient(cfg.Provider)
	case "mock":
		provider = telephonyMock.NewProvider()
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Provider.Name)
	}

	store, err := localfs.NewStore(cfg.Storage.CallLogDir)
	if err != nil {
		return nil, fmt.Errorf("bootstrap artifact store: %w", err)
	}

	fetcher := artifact.NewFetcher(cfg.Provider.RequestTimeout, lg)

	return &Container{
		Config:     cfg,
		Logger:     lg,
		Provider:   provider,
		Fetcher:    fetcher,
		Store:      store,
		Controller: lifecycle.NewController(provider, fetcher, store, lg),
	}, nil
}

// Request builds the immutable call request from configuration.
func (c *Container) Request() domain.CallRequest {
	return domain.CallRequest{
		FromNumber:       c.Config.Call.FromNumber,
		ToNumber:         c.Config.Call.ToNumber,
		DynamicVariables: c.Config.Call.DynamicVariables,
	}
}

// Params builds the lifecycle parameters from configuration.
func (c *Container) Params() lifecycle.Params {
	return lifecycle.Params{
		MaxWait:            c.Config.Poll.MaxWait,
		PollInterval:       c.Config.Poll.Interval,
		ScrubSensitiveData: c.Config.Call.ScrubSensitiveData,
	}
}

// Close releases held resources.
func (c *Container) Close(ctx context.Context) error {
	if c.Logger != nil {
		c.Logger.Sync()
	}
	return nil
}
