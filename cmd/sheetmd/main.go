// Package main provides the CLI entry point for sheetmd.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/ukaji3/sheetmd-go/internal/config"
	"github.com/ukaji3/sheetmd-go/internal/logging"
	"github.com/ukaji3/sheetmd-go/pkg/sheetmd"
	"github.com/ukaji3/sheetmd-go/pkg/sheetmd/models"
	"github.com/ukaji3/sheetmd-go/pkg/sheetmd/output"
	"github.com/ukaji3/sheetmd-go/pkg/sheetmd/parser"
)

var (
	configPath string
	flagValues config.Config
	filterArgs []string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("Error: "+err.Error()))
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sheetmd [workbook]",
		Short: "Convert spreadsheet workbooks to Markdown or HTML",
		Long: `sheetmd reads every sheet of a workbook and renders each one as a
Markdown table. The result is printed as Markdown, as a self-contained minified
HTML page, or as JSON. --filter and --columns apply to every format; --heading
is ignored for JSON.

Supported inputs: ` + strings.Join(parser.SupportedExtensions(), " "),
		Args:          cobra.ExactArgs(1),
		RunE:          run,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.Flags()
	flags.StringVar(&configPath, "config", "", "YAML config file (default: $"+config.EnvConfigPath+")")
	flags.StringVarP(&flagValues.Output, "output", "o", "", "Output file path (default: stdout)")
	flags.StringVar(&flagValues.Format, "format", config.FormatHTML, "Output format: markdown, html, json")
	flags.StringVar(&flagValues.Title, "title", "", "HTML document title (default: input file name)")
	flags.StringVar(&flagValues.Sheet, "sheet", "", "Convert only the sheet with this exact name")
	flags.StringVar(&flagValues.Heading, "heading", "", "Heading used instead of sheet names (markdown, html)")
	flags.StringSliceVar(&flagValues.Columns, "columns", nil, "Columns to output, in order")
	flags.StringArrayVar(&filterArgs, "filter", nil, "Keep rows matching key=value (regular expressions, repeatable)")
	flags.BoolVar(&flagValues.Sanitize, "sanitize", false, "Strip unsafe HTML from the rendered page")
	flags.BoolVar(&flagValues.RawValues, "raw", false, "Use unformatted cell values")
	flags.BoolVar(&flagValues.Pretty, "pretty", false, "Pretty-print JSON output")
	flags.StringVar(&flagValues.Log.Level, "log-level", "warn", "Log level: debug, info, warn, error")
	flags.StringVar(&flagValues.Log.Format, "log-format", "text", "Log format: text, json")

	return rootCmd
}

func run(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	logger := logging.Setup(cfg.Log.Level, cfg.Log.Format, os.Stderr)

	ro := cfg.RenderOptions()
	opts := sheetmd.Options{
		SheetName:   ro.SheetName,
		RawValues:   cfg.RawValues,
		MaxFileSize: cfg.MaxFileSize,
		Logger:      logger,
	}

	result, err := sheetmd.Extract(inputPath, opts)
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}
	reportFailures(cmd.ErrOrStderr(), result)

	var data []byte
	if cfg.Format == config.FormatJSON {
		result, err = sheetmd.Project(result, ro)
		if err != nil {
			return fmt.Errorf("filtering failed: %w", err)
		}
		data, err = output.ToJSON(result, cfg.Pretty)
		if err != nil {
			return fmt.Errorf("serialization failed: %w", err)
		}
	} else {
		data, err = render(cfg, result, ro, inputPath)
		if err != nil {
			return err
		}
	}

	data = append(data, '\n')
	logger.Debug("writing output", "format", cfg.Format, "bytes", len(data))
	return writeOutput(cmd.OutOrStdout(), cfg.Output, data)
}

// render produces the Markdown document, wrapped in an HTML page unless the
// format is markdown.
func render(cfg *config.Config, result models.WorkbookResult, ro models.RenderOptions, inputPath string) ([]byte, error) {
	md, err := sheetmd.RenderMarkdown(result, ro)
	if err != nil {
		return nil, fmt.Errorf("markdown rendering failed: %w", err)
	}
	if cfg.Format == config.FormatMarkdown {
		return []byte(md), nil
	}

	title := cfg.Title
	if title == "" {
		title = filepath.Base(inputPath)
	}
	page, err := output.HTML(md, title, output.HTMLOptions{Sanitize: cfg.Sanitize})
	if err != nil {
		return nil, fmt.Errorf("html rendering failed: %w", err)
	}
	return []byte(page), nil
}

// resolveConfig loads the config file and applies the flags the user set explicitly.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("output") {
		cfg.Output = flagValues.Output
	}
	if flags.Changed("format") {
		cfg.Format = flagValues.Format
	}
	if flags.Changed("title") {
		cfg.Title = flagValues.Title
	}
	if flags.Changed("sheet") {
		cfg.Sheet = flagValues.Sheet
	}
	if flags.Changed("heading") {
		cfg.Heading = flagValues.Heading
	}
	if flags.Changed("columns") {
		cfg.Columns = flagValues.Columns
	}
	if flags.Changed("filter") {
		cfg.Filters = cfg.Filters[:0:0]
		for _, expr := range filterArgs {
			f, err := config.ParseFilter(expr)
			if err != nil {
				return nil, err
			}
			cfg.Filters = append(cfg.Filters, f)
		}
	}
	if flags.Changed("sanitize") {
		cfg.Sanitize = flagValues.Sanitize
	}
	if flags.Changed("raw") {
		cfg.RawValues = flagValues.RawValues
	}
	if flags.Changed("pretty") {
		cfg.Pretty = flagValues.Pretty
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = flagValues.Log.Level
	}
	if flags.Changed("log-format") {
		cfg.Log.Format = flagValues.Log.Format
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// reportFailures prints one warning line per sheet that could not be converted.
func reportFailures(w io.Writer, result models.WorkbookResult) {
	for _, f := range result.Failures() {
		fmt.Fprintln(w, warnStyle.Render("warning: ")+f.Message())
	}
}

func writeOutput(stdout io.Writer, path string, data []byte) error {
	if path == "" {
		_, err := stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	slog.Debug("wrote output file", "path", path)
	return nil
}
