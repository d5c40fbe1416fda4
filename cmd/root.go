package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	// CLI flags for the analyze command
	configPath  string   // Optional YAML run config
	outDir      string   // Directory for JSON, CSV and chart artifacts
	logLevel    string   // Log verbosity level
	strictMode  bool     // Drop a pending send after its first RTT match
	originNode  string   // Sentinel origin node id
	farEndNode  string   // Sentinel far-end node id
	protocolArg []string // NAME:TAG:TRACE[:THROUGHPUT], replaces configured protocols
	writeJSON   bool     // Write summary.json
	writeCSV    bool     // Write per-series CSV tables
	noCharts    bool     // Skip PNG chart rendering
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "tracecomp",
	Short: "Per-flow RTT, delay, jitter, throughput and loss from network simulator traces",
}

// parseProtocolFlag parses NAME:TAG:TRACE[:THROUGHPUT].
func parseProtocolFlag(s string) (ProtocolConfig, error) {
	parts := strings.Split(s, ":")
	if len(parts) < 3 || len(parts) > 4 {
		return ProtocolConfig{}, fmt.Errorf("protocol %q: want NAME:TAG:TRACE[:THROUGHPUT]", s)
	}
	p := ProtocolConfig{Name: parts[0], Tag: parts[1], Trace: parts[2]}
	if len(parts) == 4 {
		p.Throughput = parts[3]
	}
	return p, nil
}

// buildRunConfig merges defaults, the optional config file and explicitly set flags.
func buildRunConfig(cmd *cobra.Command) (RunConfig, error) {
	cfg := DefaultRunConfig()
	if configPath != "" {
		loaded, err := LoadRunConfig(configPath)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("out") {
		cfg.OutDir = outDir
	}
	if flags.Changed("strict") {
		cfg.Strict = strictMode
	}
	if flags.Changed("origin") {
		cfg.OriginNode = originNode
	}
	if flags.Changed("far-end") {
		cfg.FarEndNode = farEndNode
	}
	if len(protocolArg) > 0 {
		cfg.Protocols = nil
		for _, s := range protocolArg {
			p, err := parseProtocolFlag(s)
			if err != nil {
				return cfg, err
			}
			cfg.Protocols = append(cfg.Protocols, p)
		}
	}
	return cfg, nil
}

// analyzeCmd parses the configured traces and prints the comparison
var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze trace files and compare protocols",
	Run: func(cmd *cobra.Command, args []string) {
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		cfg, err := buildRunConfig(cmd)
		if err != nil {
			logrus.Fatalf("Unable to load run config: %v", err)
		}

		logrus.Infof("Network Performance Analysis: %d protocols, origin=%s, far-end=%s, strict=%v",
			len(cfg.Protocols), cfg.OriginNode, cfg.FarEndNode, cfg.Strict)

		opts := OutputOptions{JSON: writeJSON, CSV: writeCSV, Charts: !noCharts}
		if _, err := runAnalysis(cfg, opts, os.Stdout); err != nil {
			logrus.Fatalf("Analysis failed: %v", err)
		}

		logrus.Infof("Analysis complete. Results saved in %s", cfg.OutDir)
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	analyzeCmd.Flags().StringVar(&configPath, "config", "", "YAML run config (protocols, sentinel nodes, output dir)")
	analyzeCmd.Flags().StringVar(&outDir, "out", "results", "Output directory for JSON, CSV and charts")
	analyzeCmd.Flags().StringVar(&logLevel, "log", "info", "Log level (trace, debug, info, warn, error, fatal, panic)")
	analyzeCmd.Flags().BoolVar(&strictMode, "strict", false, "Remove a pending send after its first round-trip match")
	analyzeCmd.Flags().StringVar(&originNode, "origin", "0", "Origin node id (sender, RTT receiver)")
	analyzeCmd.Flags().StringVar(&farEndNode, "far-end", "1", "Far-end node id (one-way delay receiver)")
	analyzeCmd.Flags().StringArrayVar(&protocolArg, "protocol", nil, "Protocol to analyze as NAME:TAG:TRACE[:THROUGHPUT]; repeatable")
	analyzeCmd.Flags().BoolVar(&writeJSON, "json", false, "Write summary.json to the output directory")
	analyzeCmd.Flags().BoolVar(&writeCSV, "csv", false, "Write per-series time,value CSV tables")
	analyzeCmd.Flags().BoolVar(&noCharts, "no-charts", false, "Skip PNG chart rendering")

	// Attach `analyze` as a subcommand to `root`
	rootCmd.AddCommand(analyzeCmd)
}
