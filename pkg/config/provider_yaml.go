package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/chrissnell/snowbalance/pkg/snowpack"
)

// YAMLProvider implements ParamsProvider for YAML parameter files.
// Keys left out of the file keep their default values.
type YAMLProvider struct {
	filename string
}

// AccumulationYAML holds the snowfall thresholds in ˚C
type AccumulationYAML struct {
	ThresholdUpper *float64 `yaml:"threshold-upper,omitempty"`
	ThresholdLower *float64 `yaml:"threshold-lower,omitempty"`
}

// MeltYAML holds the melt thresholds in ˚C and the melt rate
type MeltYAML struct {
	ThresholdMin *float64 `yaml:"threshold-min,omitempty"`
	ThresholdMax *float64 `yaml:"threshold-max,omitempty"`
	MeltRate     *float64 `yaml:"melt-rate,omitempty"`
}

// SublimationYAML holds the sublimation snow cover threshold
type SublimationYAML struct {
	ThresholdSnowCover *float64 `yaml:"threshold-snowcover,omitempty"`
}

// ParamsYAML is the layout of a parameter file
type ParamsYAML struct {
	Accumulation AccumulationYAML `yaml:"accumulation,omitempty"`
	Melt         MeltYAML         `yaml:"melt,omitempty"`
	Sublimation  SublimationYAML  `yaml:"sublimation,omitempty"`
}

// NewYAMLProvider creates a new YAML parameter provider
func NewYAMLProvider(filename string) *YAMLProvider {
	return &YAMLProvider{
		filename: filename,
	}
}

// LoadParams reads the parameter file, applies it over the defaults and
// validates the result
func (y *YAMLProvider) LoadParams() (*snowpack.Params, error) {
	cfgFile, err := os.ReadFile(y.filename)
	if err != nil {
		return nil, err
	}

	params, err := ParseParams(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", y.filename, err)
	}
	return params, nil
}

// ParseParams decodes YAML parameter data over the defaults and validates
// the result
func ParseParams(data []byte) (*snowpack.Params, error) {
	var yamlParams ParamsYAML
	if err := yaml.UnmarshalStrict(data, &yamlParams); err != nil {
		return nil, fmt.Errorf("failed to parse parameters: %w", err)
	}

	params := snowpack.DefaultParams()
	yamlParams.apply(&params)

	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &params, nil
}

func (p ParamsYAML) apply(params *snowpack.Params) {
	set := func(dst *float64, v *float64) {
		if v != nil {
			*dst = *v
		}
	}

	set(&params.Accumulation.ThresholdUpper, p.Accumulation.ThresholdUpper)
	set(&params.Accumulation.ThresholdLower, p.Accumulation.ThresholdLower)
	set(&params.Melt.ThresholdMin, p.Melt.ThresholdMin)
	set(&params.Melt.ThresholdMax, p.Melt.ThresholdMax)
	set(&params.Melt.MeltRate, p.Melt.MeltRate)
	set(&params.Sublimation.ThresholdSnowCover, p.Sublimation.ThresholdSnowCover)
}
