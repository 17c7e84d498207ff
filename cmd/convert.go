// Package cmd — convert command.
// This is the main command that orchestrates the pipeline:
// load → (extract → normalize for HTML) → front matter → engine → render → write.
//
// It handles flag validation, renderer selection, and single / folder modes.
package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/mdconvert/config"
	"github.com/gaurav-prasanna/mdconvert/core"
	"github.com/gaurav-prasanna/mdconvert/core/doc"
	"github.com/gaurav-prasanna/mdconvert/core/extract"
	"github.com/gaurav-prasanna/mdconvert/core/header"
	"github.com/gaurav-prasanna/mdconvert/core/markdown"
	"github.com/gaurav-prasanna/mdconvert/core/normalize"
	"github.com/gaurav-prasanna/mdconvert/core/output"
	"github.com/gaurav-prasanna/mdconvert/core/render"
	"github.com/gaurav-prasanna/mdconvert/core/source"
	"github.com/gaurav-prasanna/mdconvert/crawl"
)

// Flag variables.
var (
	flagDOCX      bool
	flagPDF       bool
	flagJSON      bool
	flagText      bool
	flagRecursive bool
	flagOutputDir string
	flagConfig    string
	flagNoHeader  bool
	flagIndent    int
	flagTabWidth  int
	flagTimeout   time.Duration
	flagVerbose   bool
)

var convertCmd = &cobra.Command{
	Use:   "convert <path|url>",
	Short: "Convert a Markdown file, folder or URL to the specified output format",
	Long: `Convert loads a Markdown document (HTML inputs are reduced to their main
content and normalized to Markdown first), prepends a header block with the
title, source and conversion warnings, and writes the chosen output format.

Examples:
  mdconvert convert README.md --docx
  mdconvert convert notes.md --pdf --output_dir ./out
  mdconvert convert ./docs --recursive --json
  mdconvert convert https://example.com/guide.md --text --no-header`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	// Output format flags (mutually exclusive).
	convertCmd.Flags().BoolVar(&flagDOCX, "docx", false, "Output Word document (default format)")
	convertCmd.Flags().BoolVar(&flagPDF, "pdf", false, "Output PDF")
	convertCmd.Flags().BoolVar(&flagJSON, "json", false, "Output structured JSON")
	convertCmd.Flags().BoolVar(&flagText, "text", false, "Output plain text")

	// Mode flags.
	convertCmd.Flags().BoolVar(&flagRecursive, "recursive", false, "Convert every document under a folder, including subfolders")

	// Output directory.
	convertCmd.Flags().StringVar(&flagOutputDir, "output_dir", "", "Output directory (default: current directory)")

	// Conversion tuning.
	convertCmd.Flags().StringVar(&flagConfig, "config", "", "Config file (default: mdconvert.yaml in the config dir or .)")
	convertCmd.Flags().BoolVar(&flagNoHeader, "no-header", false, "Omit the header block")
	convertCmd.Flags().IntVar(&flagIndent, "indent", markdown.DefaultIndentUnit, "Columns per list nesting level")
	convertCmd.Flags().IntVar(&flagTabWidth, "tab_width", 0, "Columns a tab counts for in list indentation (default: one indent level)")
	convertCmd.Flags().DurationVar(&flagTimeout, "timeout", 30*time.Second, "HTTP timeout for URL inputs")
	convertCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log debug detail to stderr")
}

func runConvert(cmd *cobra.Command, args []string) error {
	location := args[0]

	// --- Validate flags ---
	if err := validateFlags(); err != nil {
		return err
	}

	cfg, err := config.Load(flagConfig, cmd.Flags())
	if err != nil {
		return err
	}
	if f := selectedFormat(); f != "" {
		cfg.Format = f
	}

	logger := newLogger(cmd.ErrOrStderr(), flagVerbose)

	p, err := newPipeline(cfg, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	info, statErr := os.Stat(location)
	isDir := statErr == nil && info.IsDir()
	if cfg.Recursive && !isDir {
		return fmt.Errorf("--recursive requires a folder, got %s", location)
	}
	if isDir {
		_, err := p.runFolder(ctx, location, cfg.Recursive)
		return err
	}
	return p.runOne(ctx, location)
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// pipeline holds the components for one run.
type pipeline struct {
	loader     core.Loader
	extractor  core.Extractor
	normalizer core.Normalizer
	engine     *markdown.Engine
	renderer   core.Renderer
	writer     *output.Writer
	header     header.Options
	logger     *slog.Logger
	out        io.Writer
	now        func() time.Time
}

func newPipeline(cfg *config.Config, logger *slog.Logger) (*pipeline, error) {
	renderer, err := selectRenderer(cfg)
	if err != nil {
		return nil, err
	}

	writer, err := output.New(cfg.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("initializing output writer: %w", err)
	}

	return &pipeline{
		loader: source.New(
			source.WithTimeout(cfg.HTTP.Timeout),
			source.WithUserAgent(cfg.HTTP.UserAgent),
		),
		extractor:  extract.New(),
		normalizer: normalize.New(),
		engine: markdown.New(markdown.Options{
			IndentUnit: cfg.Markdown.IndentUnit,
			TabWidth:   cfg.Markdown.TabWidth,
		}),
		renderer: renderer,
		writer:   writer,
		header: header.Options{
			Enabled:      cfg.Header.Enabled,
			SourceNotice: cfg.Header.SourceNotice,
			Metadata:     cfg.Header.Metadata,
			Warnings:     cfg.Header.Warnings,
		},
		logger: logger,
		out:    os.Stdout,
		now:    time.Now,
	}, nil
}

// runOne processes a single file or URL through the pipeline.
func (p *pipeline) runOne(ctx context.Context, location string) error {
	data, err := p.process(ctx, location)
	if err != nil {
		return err
	}

	path, err := p.writer.Write(location, data, p.renderer.Extension())
	if err != nil {
		return err
	}
	fmt.Fprintf(p.out, "✓ Written: %s\n", path)
	return nil
}

// runFolder discovers documents under root and processes each through the
// pipeline, mirroring the folder layout. It returns the number of failures.
func (p *pipeline) runFolder(ctx context.Context, root string, recursive bool) (int, error) {
	fmt.Fprintf(p.out, "Discovering documents in %s...\n", root)

	files, err := crawl.Discover(ctx, root, recursive)
	if err != nil {
		return 0, fmt.Errorf("discovering documents: %w", err)
	}

	fmt.Fprintf(p.out, "Found %d documents to process\n", len(files))

	var errCount int
	for i, path := range files {
		if err := ctx.Err(); err != nil {
			return errCount, err
		}
		fmt.Fprintf(p.out, "[%d/%d] Processing %s\n", i+1, len(files), path)

		data, err := p.process(ctx, path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "  ✗ Error: %v\n", err)
			errCount++
			continue
		}

		out, err := p.writer.WriteMirrored(root, path, data, p.renderer.Extension())
		if err != nil {
			fmt.Fprintf(os.Stderr, "  ✗ Write error: %v\n", err)
			errCount++
			continue
		}
		fmt.Fprintf(p.out, "  ✓ Written: %s\n", out)
	}

	if errCount > 0 {
		fmt.Fprintf(os.Stderr, "\n%d/%d documents failed\n", errCount, len(files))
	}
	return errCount, nil
}

// process runs a single location through the full pipeline.
func (p *pipeline) process(ctx context.Context, location string) ([]byte, error) {
	// 1. Load
	src, err := p.loader.Load(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	p.logger.Debug("loaded", "source", src.Location, "format", src.Format, "bytes", src.Size)

	text := src.Text
	var htmlTitle, htmlLang string

	// 2. HTML inputs: extract main content and normalize to Markdown
	if src.Format == core.FormatHTML {
		content, title, err := p.extractor.Extract(src.Text)
		if err != nil {
			return nil, fmt.Errorf("extract: %w", err)
		}
		text, err = p.normalizer.Normalize(content)
		if err != nil {
			return nil, fmt.Errorf("normalize: %w", err)
		}
		htmlTitle = title
		htmlLang = extract.Language(src.Text)
	}

	// 3. Front matter feeds the header; a broken block is left in the body.
	fm, body, err := header.ParseFrontMatter(text)
	if err != nil {
		p.logger.Warn("ignoring front matter", "source", src.Location, "err", err)
	}
	meta := header.NewMetadata(src, fm, htmlTitle, p.now())
	if meta.Language == "" {
		meta.Language = htmlLang
	}

	// 4. Convert
	result := p.engine.ConvertFunc(body, func(diags []markdown.Diagnostic) []doc.Node {
		meta.Warnings = diagnosticStrings(diags)
		return header.Build(meta, meta.Warnings, p.header)
	})
	for _, d := range result.Diagnostics {
		p.logger.Warn("conversion warning", "source", src.Location, "line", d.Line+1, "kind", d.Kind.String(), "detail", d.Detail)
	}
	if result.Empty() {
		p.logger.Warn("document has no content", "source", src.Location)
	}

	// 5. Render to output format
	data, err := p.renderer.Render(result.Nodes, meta)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	p.logger.Debug("rendered", "source", src.Location, "nodes", len(result.Nodes), "bytes", len(data))

	return data, nil
}

func diagnosticStrings(diags []markdown.Diagnostic) []string {
	if len(diags) == 0 {
		return nil
	}
	out := make([]string, len(diags))
	for i, d := range diags {
		out[i] = d.String()
	}
	return out
}

// validateFlags checks that at most one output format is chosen and that
// the numeric tuning flags are usable.
func validateFlags() error {
	formatCount := 0
	for _, set := range []bool{flagDOCX, flagPDF, flagJSON, flagText} {
		if set {
			formatCount++
		}
	}
	if formatCount > 1 {
		return fmt.Errorf("only one output format allowed per run (got %d)", formatCount)
	}
	if flagIndent < 1 {
		return fmt.Errorf("--indent must be at least 1")
	}
	if flagTabWidth < 0 {
		return fmt.Errorf("--tab_width cannot be negative")
	}
	return nil
}

// selectedFormat returns the format chosen on the command line, if any.
func selectedFormat() string {
	switch {
	case flagDOCX:
		return "docx"
	case flagPDF:
		return "pdf"
	case flagJSON:
		return "json"
	case flagText:
		return "text"
	default:
		return ""
	}
}

// selectRenderer creates the appropriate Renderer for the configured format.
func selectRenderer(cfg *config.Config) (core.Renderer, error) {
	switch cfg.Format {
	case "docx":
		return render.NewDOCXRenderer(render.DOCXOptions{
			Font:     cfg.DOCX.Font,
			CodeFont: cfg.DOCX.CodeFont,
			FontSize: cfg.DOCX.FontSize,
		}), nil
	case "pdf":
		return render.NewPDFRenderer(render.PDFOptions{
			PageSize:    cfg.PDF.PageSize,
			Orientation: cfg.PDF.Orientation,
		}), nil
	case "json":
		return render.NewJSONRenderer(), nil
	case "text":
		return render.NewTextRenderer(), nil
	default:
		return nil, fmt.Errorf("no renderer for format %q", cfg.Format)
	}
}
