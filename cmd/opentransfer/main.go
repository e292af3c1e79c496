package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/rgehrsitz/opentransfer/internal/calculation"
	"github.com/rgehrsitz/opentransfer/internal/compare"
	"github.com/rgehrsitz/opentransfer/internal/config"
	"github.com/rgehrsitz/opentransfer/internal/domain"
	"github.com/rgehrsitz/opentransfer/internal/metrics"
	"github.com/rgehrsitz/opentransfer/internal/output"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// simpleCLILogger implements calculation.Logger using the standard log package
type simpleCLILogger struct{}

func (simpleCLILogger) Debugf(format string, args ...any) { log.Printf("DEBUG: "+format, args...) }
func (simpleCLILogger) Infof(format string, args ...any)  { log.Printf("INFO: "+format, args...) }
func (simpleCLILogger) Warnf(format string, args ...any)  { log.Printf("WARN: "+format, args...) }
func (simpleCLILogger) Errorf(format string, args ...any) { log.Printf("ERROR: "+format, args...) }

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "opentransfer %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.String()
	}
	return ""
}

// fileExists checks if a file exists
func fileExists(filename string) bool {
	_, err := os.Stat(filename)
	return !os.IsNotExist(err)
}

// loadRegulatory resolves the reference tables: the --regulatory-config file,
// else regulatory.yaml in the working directory, else the built-in tables.
// A broken implicit file falls back to the built-in tables with a notice.
func loadRegulatory(cmd *cobra.Command) (*domain.RegulatoryConfig, error) {
	regulatoryFile, _ := cmd.Flags().GetString("regulatory-config")
	if regulatoryFile != "" {
		return config.LoadRegulatoryFromFile(regulatoryFile)
	}
	if !fileExists(config.DefaultRegulatoryFile) {
		return domain.DefaultRegulatoryConfig(), nil
	}

	rc, err := config.LoadRegulatoryFromFile(config.DefaultRegulatoryFile)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Failed to load %s: %v\n", config.DefaultRegulatoryFile, err)
		fmt.Fprintln(cmd.ErrOrStderr(), "Falling back to built-in reference tables...")
		return domain.DefaultRegulatoryConfig(), nil
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Loaded regulatory config from: %s\n", config.DefaultRegulatoryFile)
	return rc, nil
}

// fileExtension maps a formatter to the extension used by --save
func fileExtension(name string) string {
	switch name {
	case "json", "csv":
		return name
	}
	return "txt"
}

// writeMetrics dumps every gathered metric family in the text exposition format
func writeMetrics(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}

var rootCmd = &cobra.Command{
	Use:           "opentransfer",
	Short:         "FIFA solidarity and training compensation calculator",
	Long:          "Computes solidarity contribution and training compensation for international player transfers and screens the transfer for compliance issues",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var calculateCmd = &cobra.Command{
	Use:   "calculate [case-file]",
	Short: "Calculate solidarity and training compensation for a transfer case",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		inputFile := args[0]

		outputFormat, _ := cmd.Flags().GetString("format")
		f := output.GetFormatterByName(outputFormat)
		if f == nil {
			return fmt.Errorf("unknown format %q (available: %s)", outputFormat, strings.Join(output.FormatterNames(), ", "))
		}

		rules, err := loadRegulatory(cmd)
		if err != nil {
			return err
		}

		parser := config.NewInputParser()
		input, err := parser.LoadFromFile(inputFile)
		if err != nil {
			return err
		}

		engine := calculation.NewCalculationEngineWithConfig(rules)
		debugMode, _ := cmd.Flags().GetBool("debug")
		if debugMode {
			engine.SetLogger(simpleCLILogger{})
		}
		engine.Debug = debugMode

		withMetrics, _ := cmd.Flags().GetBool("metrics")
		registry := prometheus.NewRegistry()
		if withMetrics {
			engine.SetMetrics(metrics.New(registry))
		}

		result, err := engine.Calculate(context.Background(), input)
		if err != nil {
			return err
		}

		save, _ := cmd.Flags().GetBool("save")
		if save {
			filename, err := output.WriteFormatted(f, result, fileExtension(f.Name()))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Audit written to %s\n", filename)
		} else {
			data, err := f.Format(result)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), string(data))
		}

		if withMetrics {
			return writeMetrics(cmd.ErrOrStderr(), registry)
		}
		return nil
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate [case-file]",
	Short: "Validate a case file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		inputFile := args[0]

		parser := config.NewInputParser()
		input, err := parser.LoadFromFile(inputFile)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Case file %s is valid (%d registration records, %d agents)\n",
			inputFile, len(input.RegistrationHistory), len(input.Agents))
		return nil
	},
}

var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "Print the active reference tables as YAML",
	Long:  "Prints the solidarity schedule, training cost tables and compliance thresholds in effect. The output is a valid regulatory config file.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rules, err := loadRegulatory(cmd)
		if err != nil {
			return err
		}

		data, err := yaml.Marshal(rules)
		if err != nil {
			return fmt.Errorf("failed to encode reference tables: %w", err)
		}
		fmt.Fprint(cmd.OutOrStdout(), string(data))
		return nil
	},
}

var compareCmd = &cobra.Command{
	Use:   "compare [case-file]",
	Short: "Compare a case under alternative reference tables",
	Long: `Runs the same case under the active reference tables and under each --with file,
then reports how the classification, totals and compliance verdict change.

Examples:
  opentransfer compare case.yaml --with regulatory-2026.yaml
  opentransfer compare case.yaml --with strict.yaml --with lenient.yaml --format csv`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		inputFile := args[0]

		withFiles, _ := cmd.Flags().GetStringArray("with")
		if len(withFiles) == 0 {
			return fmt.Errorf("at least one --with regulatory file is required")
		}

		rules, err := loadRegulatory(cmd)
		if err != nil {
			return err
		}
		base := compare.RuleSet{Name: "active", Rules: rules}
		if f, _ := cmd.Flags().GetString("regulatory-config"); f != "" {
			base.Name = ruleSetName(f)
		}

		alternatives := make([]compare.RuleSet, 0, len(withFiles))
		for _, f := range withFiles {
			alt, err := config.LoadRegulatoryFromFile(f)
			if err != nil {
				return err
			}
			alternatives = append(alternatives, compare.RuleSet{Name: ruleSetName(f), Rules: alt})
		}

		parser := config.NewInputParser()
		input, err := parser.LoadFromFile(inputFile)
		if err != nil {
			return err
		}

		ce := compare.NewCompareEngine()
		if debugMode, _ := cmd.Flags().GetBool("debug"); debugMode {
			ce.Logger = simpleCLILogger{}
		}

		compSet, err := ce.Compare(context.Background(), input, base, alternatives)
		if err != nil {
			return err
		}
		compSet.CaseFile = inputFile

		var out string
		outputFormat, _ := cmd.Flags().GetString("format")
		switch outputFormat {
		case "table":
			out = (&compare.TableFormatter{}).Format(compSet)
		case "compact":
			out = (&compare.TableFormatter{}).FormatCompact(compSet) + "\n"
		case "csv":
			out, err = (&compare.CSVFormatter{}).Format(compSet)
		case "json":
			out, err = (&compare.JSONFormatter{Pretty: true}).Format(compSet)
			out += "\n"
		default:
			return fmt.Errorf("unknown format %q (available: table, compact, csv, json)", outputFormat)
		}
		if err != nil {
			return fmt.Errorf("failed to format comparison: %w", err)
		}

		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

// ruleSetName labels a regulatory file by its base name
func ruleSetName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}

func init() {
	calculateCmd.Flags().StringP("format", "f", "console", "Output format: console, console-plain, json, csv")
	calculateCmd.Flags().String("regulatory-config", "", "Regulatory config file (defaults to regulatory.yaml if present)")
	calculateCmd.Flags().Bool("debug", false, "Log intermediate calculation values")
	calculateCmd.Flags().Bool("metrics", false, "Dump calculation metrics to stderr after the run")
	calculateCmd.Flags().Bool("save", false, "Write the audit to a timestamped file instead of stdout")

	tablesCmd.Flags().String("regulatory-config", "", "Regulatory config file (defaults to regulatory.yaml if present)")

	compareCmd.Flags().StringArray("with", nil, "Alternative regulatory config file (repeatable)")
	compareCmd.Flags().String("regulatory-config", "", "Base regulatory config file (defaults to regulatory.yaml if present)")
	compareCmd.Flags().StringP("format", "f", "table", "Output format: table, compact, csv, json")
	compareCmd.Flags().Bool("debug", false, "Log each rule set's totals")

	rootCmd.AddCommand(calculateCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(tablesCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(versionCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
