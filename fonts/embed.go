package fonts

import (
	"fmt"
	"sort"
	"strings"

	"github.com/go-fonts/latin-modern/lmmono10italic"
	"github.com/go-fonts/latin-modern/lmmono10regular"
	"github.com/go-fonts/latin-modern/lmmono12regular"
	"github.com/go-fonts/latin-modern/lmmono8regular"
	"github.com/go-fonts/latin-modern/lmmono9regular"
)

// Default 是 PDF 输出默认使用的等宽字体。
const Default = "lmmono10"

// 内置等宽字体：按字符计算的行宽在 PDF 中才能保持列对齐。
var monoFaces = map[string][]byte{
	"lmmono8":        lmmono8regular.TTF,
	"lmmono9":        lmmono9regular.TTF,
	"lmmono10":       lmmono10regular.TTF,
	"lmmono10italic": lmmono10italic.TTF,
	"lmmono12":       lmmono12regular.TTF,
}

// Load 返回内置字体的字节数据，name 可写为 "builtin:lmmono10" 或直接 "lmmono10"。
func Load(name string) ([]byte, error) {
	key := strings.ToLower(strings.TrimPrefix(name, "builtin:"))
	if key == "" {
		key = Default
	}
	data, ok := monoFaces[key]
	if !ok {
		return nil, fmt.Errorf("读取内置字体 %s 失败: 未知字体（可选: %s）", name, strings.Join(Names(), ", "))
	}
	return data, nil
}

// Names 返回全部内置字体名称（已排序）。
func Names() []string {
	out := make([]string, 0, len(monoFaces))
	for name := range monoFaces {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
