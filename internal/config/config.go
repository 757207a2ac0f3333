// Package config loads the optional YAML configuration of the textfmt CLI.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/ByLCY/textfmt/layout"
	canvasrenderer "github.com/ByLCY/textfmt/renderer/canvas"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound = errors.New("config file not found")
	ErrConfigParse    = errors.New("failed to parse config")
	ErrInvalidConfig  = errors.New("invalid config")
)

// MaxInputSize limits config files to 1MB.
const MaxInputSize = 1 << 20

// Config holds the initial formatting parameters and PDF settings.
type Config struct {
	Document DocumentConfig `yaml:"document"`
	Endnotes layout.State   `yaml:"endnotes"`
	PDF      PDFConfig      `yaml:"pdf"`
}

// DocumentConfig is the main text's initial state plus the page height.
type DocumentConfig struct {
	layout.State `yaml:",inline"`
	TextHeight   int `yaml:"textHeight"` // 0 = unbounded
}

// PDFConfig defines page geometry and font for --format pdf.
type PDFConfig struct {
	PageSize    string `yaml:"pageSize"`    // "a4", "a5", "letter", "legal"
	Orientation string `yaml:"orientation"` // "portrait", "landscape"
	Margin      string `yaml:"margin"`      // length, e.g. "18mm", "0.75in"
	Font        string `yaml:"font"`        // built-in monospace font
	FontSize    string `yaml:"fontSize"`    // length, e.g. "10pt"
	LineHeight  string `yaml:"lineHeight"`  // factor ("1.2x") or length ("12pt")
	Title       string `yaml:"title"`
	Author      string `yaml:"author"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Document: DocumentConfig{State: layout.DocumentDefaults()},
		Endnotes: layout.EndnoteDefaults(),
		PDF: PDFConfig{
			PageSize:    "a4",
			Orientation: "portrait",
			Margin:      "18mm",
			Font:        "lmmono10",
			FontSize:    "10pt",
			LineHeight:  "1.2x",
		},
	}
}

// Load reads path and overlays it onto Default. An empty path returns the defaults.
// Unknown keys are rejected.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if len(data) > MaxInputSize {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", ErrConfigParse, path, MaxInputSize)
	}
	if len(data) > 0 {
		if err := yaml.UnmarshalWithOptions(data, cfg, yaml.Strict()); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate applies the same constraints as the formatter's setters and
// checks that the PDF settings describe a usable page.
func (c *Config) Validate() error {
	if err := c.Document.Validate(); err != nil {
		return fmt.Errorf("%w: document: %w", ErrInvalidConfig, err)
	}
	if c.Document.TextHeight < 0 {
		return fmt.Errorf("%w: document: %w: %d", ErrInvalidConfig, layout.ErrInvalidTextHeight, c.Document.TextHeight)
	}
	if err := c.Endnotes.Validate(); err != nil {
		return fmt.Errorf("%w: endnotes: %w", ErrInvalidConfig, err)
	}
	if _, err := c.RendererOptions(); err != nil {
		return err
	}
	return nil
}

// RendererOptions converts the pdf section into canvas renderer options.
func (c *Config) RendererOptions() (canvasrenderer.Options, error) {
	opts := canvasrenderer.Options{
		PageSize:    c.PDF.PageSize,
		Orientation: c.PDF.Orientation,
		Font:        c.PDF.Font,
	}
	var err error
	if opts.Margin, err = canvasrenderer.ParseLength(c.PDF.Margin); err != nil {
		return opts, fmt.Errorf("%w: pdf.margin: %w", ErrInvalidConfig, err)
	}
	if opts.FontSize, err = canvasrenderer.ParseLength(c.PDF.FontSize); err != nil {
		return opts, fmt.Errorf("%w: pdf.fontSize: %w", ErrInvalidConfig, err)
	}
	if opts.LineHeight, err = canvasrenderer.ParseLineHeight(c.PDF.LineHeight); err != nil {
		return opts, fmt.Errorf("%w: pdf.lineHeight: %w", ErrInvalidConfig, err)
	}
	if _, err := canvasrenderer.NewRenderer(opts); err != nil {
		return opts, fmt.Errorf("%w: pdf: %w", ErrInvalidConfig, err)
	}
	return opts, nil
}

// Meta returns the PDF document metadata.
func (c *Config) Meta() layout.DocumentMeta {
	return layout.DocumentMeta{Title: c.PDF.Title, Author: c.PDF.Author, Creator: "textfmt"}
}
