package canvasrenderer

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"math"
	"strings"
	"sync"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"

	"github.com/ByLCY/textfmt/fonts"
	"github.com/ByLCY/textfmt/layout"
	"github.com/ByLCY/textfmt/renderer"
)

var (
	ErrUnknownPageSize    = errors.New("unknown page size")
	ErrUnknownOrientation = errors.New("unknown orientation")
	ErrPageTooSmall       = errors.New("page has no room for text")
)

// 常用纸张尺寸（mm，纵向）。
var pageSizes = map[string][2]float64{
	"a4":     {210, 297},
	"a5":     {148, 210},
	"letter": {215.9, 279.4},
	"legal":  {215.9, 355.6},
}

// Options configures the canvas renderer.
type Options struct {
	PageSize    string // a4 / a5 / letter / legal
	Orientation string // portrait / landscape
	Margin      Length
	Font        string // fonts 包中的内置等宽字体名
	FontSize    Length
	LineHeight  LineHeightSpec
}

// DefaultOptions 返回 A4 纵向、18mm 边距、10pt lmmono10、1.2 倍行高。
func DefaultOptions() Options {
	return Options{
		PageSize:    "a4",
		Orientation: "portrait",
		Margin:      Length{Value: 18, Unit: UnitMM},
		Font:        fonts.Default,
		FontSize:    Length{Value: 10, Unit: UnitPT},
		LineHeight:  LineHeightSpec{Kind: LineHeightFactor, Factor: 1.2},
	}
}

// Renderer draws formatted pages via github.com/tdewolff/canvas.
// Each line is drawn verbatim in a monospace face, so the character columns
// computed by the formatter stay aligned on the page.
type Renderer struct {
	opts          Options
	width, height float64 // mm
	lineHeight    float64 // mm

	fontMu sync.Mutex
	family *canvas.FontFamily
}

var _ renderer.Renderer = (*Renderer)(nil)

// NewRenderer validates opts and creates a renderer.
func NewRenderer(opts Options) (*Renderer, error) {
	def := DefaultOptions()
	if opts.PageSize == "" {
		opts.PageSize = def.PageSize
	}
	if opts.Orientation == "" {
		opts.Orientation = def.Orientation
	}
	if opts.Font == "" {
		opts.Font = def.Font
	}
	if opts.FontSize.IsZero() {
		opts.FontSize = def.FontSize
	}
	size, ok := pageSizes[strings.ToLower(opts.PageSize)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPageSize, opts.PageSize)
	}
	w, h := size[0], size[1]
	switch strings.ToLower(opts.Orientation) {
	case "portrait":
	case "landscape":
		w, h = h, w
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownOrientation, opts.Orientation)
	}
	r := &Renderer{
		opts:       opts,
		width:      w,
		height:     h,
		lineHeight: opts.LineHeight.ResolveMM(opts.FontSize),
	}
	if r.LinesPerPage() < 1 || r.width-2*opts.Margin.ToMM() <= 0 {
		return nil, fmt.Errorf("%w: %s %s margin %s", ErrPageTooSmall, opts.PageSize, opts.Orientation, opts.Margin)
	}
	if _, err := fonts.Load(opts.Font); err != nil {
		return nil, err
	}
	return r, nil
}

// PageSize 返回页面宽高（mm）。
func (r *Renderer) PageSize() (width, height float64) { return r.width, r.height }

// LinesPerPage 返回一页可容纳的行数。
func (r *Renderer) LinesPerPage() int {
	if r.lineHeight <= 0 {
		return 0
	}
	usable := r.height - 2*r.opts.Margin.ToMM()
	return int(math.Floor(usable/r.lineHeight + 1e-9))
}

// Render renders the result into a PDF byte slice. A formatter page longer
// than LinesPerPage continues on the next PDF page.
func (r *Renderer) Render(result *layout.Result) ([]byte, error) {
	if result == nil {
		return nil, fmt.Errorf("渲染结果为空")
	}
	face, err := r.fontFace()
	if err != nil {
		return nil, err
	}

	var sheets [][]string
	per := r.LinesPerPage()
	for _, page := range result.Pages {
		lines := page.Lines
		for len(lines) > per {
			sheets = append(sheets, lines[:per])
			lines = lines[per:]
		}
		sheets = append(sheets, lines)
	}
	if len(sheets) == 0 {
		sheets = append(sheets, nil)
	}

	var buf bytes.Buffer
	writer := pdf.New(&buf, r.width, r.height, nil)
	r.applyMeta(writer, result.Meta)
	for i, lines := range sheets {
		if i > 0 {
			writer.NewPage(r.width, r.height)
		}
		c := canvas.New(r.width, r.height)
		ctx := canvas.NewContext(c)
		ctx.SetCoordSystem(canvas.CartesianIV) // 使坐标以左上角为原点
		r.drawLines(ctx, face, lines)
		c.RenderTo(writer)
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("写入 PDF 失败: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) applyMeta(writer *pdf.PDF, meta layout.DocumentMeta) {
	if writer == nil {
		return
	}
	writer.SetInfo(meta.Title, "", "", meta.Author, meta.Creator)
}

// drawLines 自上而下逐行绘制；行首空格换算为横向偏移，空行只占位。
func (r *Renderer) drawLines(ctx *canvas.Context, face *canvas.FontFace, lines []string) {
	margin := r.opts.Margin.ToMM()
	space := face.TextWidth(" ")
	ascent := face.Metrics().Ascent
	cursorY := margin
	for _, line := range lines {
		body := strings.TrimLeft(line, " ")
		if body != "" {
			x := margin + float64(len(line)-len(body))*space
			ctx.DrawText(x, cursorY+ascent, canvas.NewTextLine(face, body, canvas.Left))
		}
		cursorY += r.lineHeight
	}
}

func (r *Renderer) fontFace() (*canvas.FontFace, error) {
	family, err := r.ensureFontFamily()
	if err != nil {
		return nil, err
	}
	return family.Face(r.opts.FontSize.ToPT(), textColor(), canvas.FontRegular, canvas.FontNormal), nil
}

func (r *Renderer) ensureFontFamily() (*canvas.FontFamily, error) {
	r.fontMu.Lock()
	defer r.fontMu.Unlock()

	if r.family != nil {
		return r.family, nil
	}
	data, err := fonts.Load(r.opts.Font)
	if err != nil {
		return nil, err
	}
	family := canvas.NewFontFamily(r.opts.Font)
	if err := family.LoadFont(data, 0, canvas.FontRegular); err != nil {
		return nil, fmt.Errorf("加载字体 %s 失败: %w", r.opts.Font, err)
	}
	r.family = family
	return family, nil
}

func textColor() color.Color {
	return canvas.RGBA(30.0/255.0, 30.0/255.0, 30.0/255.0, 1.0)
}
