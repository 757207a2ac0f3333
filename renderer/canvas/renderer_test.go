package canvasrenderer

import (
	"bytes"
	"errors"
	"testing"

	"github.com/ByLCY/textfmt/layout"
)

func TestRenderProducesPDF(t *testing.T) {
	r, err := NewRenderer(DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	res := &layout.Result{
		Pages: []layout.Page{
			{Lines: []string{"   The quick  brown fox", "", "jumps over the lazy dog[1]"}},
			{Lines: []string{"[1] A note."}},
		},
		Meta: layout.DocumentMeta{Title: "Sample", Author: "tester"},
	}
	out, err := r.Render(res)
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Fatalf("expected PDF header, got %q", out[:min(len(out), 8)])
	}
}

func TestRenderEmptyResult(t *testing.T) {
	r, err := NewRenderer(Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out, err := r.Render(&layout.Result{})
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Fatalf("expected PDF output for empty document")
	}
	if _, err := r.Render(nil); err == nil {
		t.Fatalf("expected error for nil result")
	}
}

// 纸张 297mm，边距 18mm，10pt*1.2 行高约 4.233mm：可用 261mm 共 61 行。
func TestLinesPerPage(t *testing.T) {
	r, err := NewRenderer(DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := r.LinesPerPage(); got != 61 {
		t.Fatalf("LinesPerPage: got=%d want=61", got)
	}

	opts := DefaultOptions()
	opts.Orientation = "landscape"
	opts.LineHeight = LineHeightSpec{Kind: LineHeightAbsolute, Len: Length{Value: 6, Unit: UnitMM}}
	r, err = NewRenderer(opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	w, h := r.PageSize()
	if w != 297 || h != 210 {
		t.Fatalf("landscape a4 should be 297x210, got %gx%g", w, h)
	}
	// (210 - 36) / 6 = 29
	if got := r.LinesPerPage(); got != 29 {
		t.Fatalf("LinesPerPage: got=%d want=29", got)
	}
}

func TestNewRendererRejectsBadOptions(t *testing.T) {
	cases := []struct {
		name string
		mod  func(*Options)
		want error
	}{
		{"page size", func(o *Options) { o.PageSize = "b7" }, ErrUnknownPageSize},
		{"orientation", func(o *Options) { o.Orientation = "sideways" }, ErrUnknownOrientation},
		{"margin", func(o *Options) { o.Margin = Length{Value: 200, Unit: UnitMM} }, ErrPageTooSmall},
	}
	for _, tc := range cases {
		opts := DefaultOptions()
		tc.mod(&opts)
		if _, err := NewRenderer(opts); !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
	opts := DefaultOptions()
	opts.Font = "comic-sans"
	if _, err := NewRenderer(opts); err == nil {
		t.Fatalf("expected unknown font error")
	}
}
