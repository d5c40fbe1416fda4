package cmd

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/netsim-lab/tracecomp/analysis"
)

// ProtocolConfig names one trace to analyse and the packet type to filter on.
type ProtocolConfig struct {
	Name       string `yaml:"name"`       // display name, e.g. "TCP"
	Tag        string `yaml:"tag"`        // packet type in field 4, e.g. "tcp" or "cbr"
	Trace      string `yaml:"trace"`      // primary trace file; must exist
	Throughput string `yaml:"throughput"` // optional "time value" file
}

// RunConfig represents the full run configuration YAML structure.
// All top-level sections must be listed to satisfy KnownFields(true) strict parsing.
type RunConfig struct {
	OriginNode string           `yaml:"origin_node"`
	FarEndNode string           `yaml:"far_end_node"`
	Strict     bool             `yaml:"strict"`
	OutDir     string           `yaml:"out_dir"`
	Protocols  []ProtocolConfig `yaml:"protocols"`
}

// DefaultRunConfig compares a TCP and a CBR-over-UDP trace in the working directory.
func DefaultRunConfig() RunConfig {
	return RunConfig{
		OriginNode: analysis.DefaultOriginNode,
		FarEndNode: analysis.DefaultFarEndNode,
		OutDir:     "results",
		Protocols: []ProtocolConfig{
			{Name: "TCP", Tag: "tcp", Trace: "tcp_output.tr", Throughput: "tcp_throughput.tr"},
			{Name: "UDP", Tag: "cbr", Trace: "udp_output.tr", Throughput: "udp_throughput.tr"},
		},
	}
}

// LoadRunConfig overlays the YAML file at path onto DefaultRunConfig.
// A protocols list in the file replaces the default list entirely.
// Uses strict field checking: typos must cause errors.
func LoadRunConfig(path string) (RunConfig, error) {
	cfg := DefaultRunConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading run config: %w", err)
	}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("parsing run config: %w", err)
	}
	return cfg, nil
}

// EngineConfig returns the flow engine settings for one protocol.
func (c RunConfig) EngineConfig(p ProtocolConfig) analysis.EngineConfig {
	return analysis.EngineConfig{
		ProtocolTag: p.Tag,
		OriginNode:  c.OriginNode,
		FarEndNode:  c.FarEndNode,
		Strict:      c.Strict,
	}
}

// Validate checks protocol entries and the engine settings derived from them.
func (c RunConfig) Validate() error {
	if len(c.Protocols) == 0 {
		return fmt.Errorf("no protocols configured")
	}
	seen := make(map[string]bool, len(c.Protocols))
	for i, p := range c.Protocols {
		if p.Name == "" {
			return fmt.Errorf("protocols[%d]: name must not be empty", i)
		}
		if seen[p.Name] {
			return fmt.Errorf("protocols[%d]: duplicate name %q", i, p.Name)
		}
		seen[p.Name] = true
		if p.Trace == "" {
			return fmt.Errorf("protocol %s: trace path must not be empty", p.Name)
		}
		if err := c.EngineConfig(p).Validate(); err != nil {
			return fmt.Errorf("protocol %s: %w", p.Name, err)
		}
	}
	return nil
}
