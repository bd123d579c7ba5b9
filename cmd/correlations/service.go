package main

import (
	"context"

	"github.com/viant/correlations"
	"go.uber.org/zap"
)

// newServiceFunc builds the service commands run against. Tests replace it.
var newServiceFunc = defaultNewService

func newService(ctx context.Context, opts *globalOptions) (*correlations.Service, error) {
	return newServiceFunc(ctx, opts)
}

func defaultNewService(ctx context.Context, opts *globalOptions) (*correlations.Service, error) {
	config, err := loadConfig(ctx, opts)
	if err != nil {
		return nil, err
	}
	logger := zap.NewNop()
	if opts.verbose {
		if logger, err = zap.NewDevelopment(); err != nil {
			return nil, err
		}
	}
	return correlations.New(ctx, correlations.WithConfig(config), correlations.WithLogger(logger))
}

func loadConfig(ctx context.Context, opts *globalOptions) (*correlations.Config, error) {
	config := correlations.DefaultConfig()
	if opts.configURL != "" {
		var err error
		if config, err = correlations.LoadConfig(ctx, opts.configURL); err != nil {
			return nil, err
		}
	}
	if opts.url != "" {
		config.Backend.URL = opts.url
	}
	if opts.orgID != "" {
		config.Backend.OrgID = opts.orgID
	}
	if opts.policy != "" {
		config.Resolution.Policy = opts.policy
	}
	config.Registry.URLs = append(config.Registry.URLs, opts.datasources...)
	return config, config.Validate()
}
