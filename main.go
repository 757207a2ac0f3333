package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/ByLCY/textfmt/internal/config"
	"github.com/ByLCY/textfmt/layout"
	"github.com/ByLCY/textfmt/renderer"
	canvasrenderer "github.com/ByLCY/textfmt/renderer/canvas"
	"github.com/ByLCY/textfmt/typeset"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "textfmt: %v\n", err)
		os.Exit(exitCodeFor(err))
	}
}

// cliFlags 保存命令行参数。
type cliFlags struct {
	in, out string
	format  string
	config  string
	debug   string
	width   int
	height  int
	quiet   bool

	widthSet, heightSet bool
}

func parseFlags(args []string, stderr io.Writer) (*cliFlags, error) {
	f := &cliFlags{}
	fs := flag.NewFlagSet("textfmt", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "用法: textfmt [flags] [INPUT [OUTPUT]]")
		fs.PrintDefaults()
	}
	fs.StringVarP(&f.in, "in", "i", "", "输入文件路径（- 表示标准输入）")
	fs.StringVarP(&f.out, "out", "o", "", "输出文件路径（- 表示标准输出）")
	fs.StringVarP(&f.format, "format", "f", "text", "输出格式：text 或 pdf")
	fs.StringVarP(&f.config, "config", "c", "", "YAML 配置文件路径")
	fs.StringVar(&f.debug, "debug", "", "分页结果调试 JSON 输出路径")
	fs.IntVar(&f.width, "width", 0, "初始行宽，覆盖配置文件")
	fs.IntVar(&f.height, "height", 0, "每页行数，覆盖配置文件（0 表示不限）")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "不输出可恢复错误的诊断信息")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}
	rest := fs.Args()
	if len(rest) > 2 {
		return nil, fmt.Errorf("%w: 多余的参数 %s", ErrUsage, strings.Join(rest[2:], " "))
	}
	if f.in == "" && len(rest) > 0 {
		f.in = rest[0]
	}
	if f.out == "" && len(rest) > 1 {
		f.out = rest[1]
	}
	if f.in == "" {
		f.in = "-"
	}
	if f.out == "" {
		f.out = "-"
	}
	f.widthSet = fs.Changed("width")
	f.heightSet = fs.Changed("height")
	return f, nil
}

// run 串联配置、解析排版与输出。
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	flags, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	format := strings.ToLower(flags.format)
	if format != "text" && format != "pdf" {
		return fmt.Errorf("%w: %s", ErrUnknownFormat, flags.format)
	}

	cfg, err := config.Load(flags.config)
	if err != nil {
		return err
	}
	if flags.widthSet {
		cfg.Document.TextWidth = flags.width
	}
	if flags.heightSet {
		cfg.Document.TextHeight = flags.height
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := log.New(stderr, "textfmt: ", 0)
	if flags.quiet {
		logger.SetOutput(io.Discard)
	}

	in, name, closeIn, err := openInput(flags.in, stdin)
	if err != nil {
		return err
	}
	defer closeIn()

	opts := typeset.Options{
		Document:   cfg.Document.State,
		Endnotes:   cfg.Endnotes,
		TextHeight: cfg.Document.TextHeight,
		Filename:   name,
		Logger:     logger,
	}

	if format == "text" && flags.debug == "" {
		return runText(in, flags.out, stdout, opts)
	}

	var r renderer.Renderer
	if format == "pdf" {
		ropts, err := cfg.RendererOptions()
		if err != nil {
			return err
		}
		cr, err := canvasrenderer.NewRenderer(ropts)
		if err != nil {
			return fmt.Errorf("%w: %w", config.ErrInvalidConfig, err)
		}
		if opts.TextHeight == 0 {
			opts.TextHeight = cr.LinesPerPage()
		}
		r = cr
	}

	out := layout.NewCollector()
	ctrl, err := typeset.Format(in, out, opts)
	if err != nil {
		return fmt.Errorf("排版 %s 失败: %w", name, err)
	}
	result := out.Result()
	result.Endnotes = len(ctrl.Session().Endnotes())
	result.Meta = cfg.Meta()
	if result.Meta.Title == "" && name != "-" {
		result.Meta.Title = strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	}

	if flags.debug != "" {
		if err := writeDebug(result, flags.debug); err != nil {
			return err
		}
	}

	var data []byte
	if r == nil {
		data = []byte(out.String())
	} else {
		if data, err = r.Render(result); err != nil {
			return fmt.Errorf("渲染 PDF 失败: %w", err)
		}
	}
	return writeOutput(flags.out, stdout, data)
}

// runText 把排版结果先写入内存，排版成功后才一次性写到输出；
// 致命错误时不产生任何输出。
func runText(in io.Reader, outPath string, stdout io.Writer, opts typeset.Options) error {
	var buf bytes.Buffer
	sink := layout.NewWriterSink(&buf)
	if _, err := typeset.Format(in, sink, opts); err != nil {
		return fmt.Errorf("排版 %s 失败: %w", opts.Filename, err)
	}
	return writeOutput(outPath, stdout, buf.Bytes())
}

func openInput(path string, stdin io.Reader) (io.Reader, string, func(), error) {
	if path == "-" {
		return stdin, "-", func() {}, nil
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, path, nil, fmt.Errorf("%w: %w", ErrReadInput, err)
	}
	return file, path, func() { file.Close() }, nil
}

func openOutput(path string, stdout io.Writer) (io.Writer, func() error, error) {
	if path == "-" {
		return stdout, func() error { return nil }, nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("%w: 创建输出目录失败: %w", ErrWriteOutput, err)
		}
	}
	file, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	return file, file.Close, nil
}

func writeOutput(path string, stdout io.Writer, data []byte) error {
	w, closeOut, err := openOutput(path, stdout)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		closeOut()
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	if err := closeOut(); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	return nil
}

func writeDebug(result *layout.Result, debugPath string) error {
	if err := os.MkdirAll(filepath.Dir(debugPath), 0o755); err != nil {
		return fmt.Errorf("%w: 创建调试目录失败: %w", ErrWriteOutput, err)
	}
	if err := layout.WriteDebugJSON(result, debugPath); err != nil {
		return fmt.Errorf("%w: 输出调试 JSON 失败: %w", ErrWriteOutput, err)
	}
	return nil
}
