// Package config loads snowpack model parameters from configuration sources.
package config

import "github.com/chrissnell/snowbalance/pkg/snowpack"

// ParamsProvider defines the interface for parameter sources
type ParamsProvider interface {
	// LoadParams returns a validated parameter set
	LoadParams() (*snowpack.Params, error)
}

// DefaultProvider supplies the published default parameters
type DefaultProvider struct{}

// LoadParams returns snowpack.DefaultParams
func (DefaultProvider) LoadParams() (*snowpack.Params, error) {
	params := snowpack.DefaultParams()
	return &params, nil
}

// NewProvider returns a YAML provider for filename, or the defaults when
// filename is empty
func NewProvider(filename string) ParamsProvider {
	if filename == "" {
		return DefaultProvider{}
	}
	return NewYAMLProvider(filename)
}
