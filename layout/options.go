package layout

// 默认排版参数：正文与脚注（endnote）各一套。
const (
	DefaultTextWidth = 72
	DefaultParIndent = 3
)

// DocumentDefaults 返回正文的默认参数。
func DocumentDefaults() State {
	return State{
		TextWidth: DefaultTextWidth,
		Indent:    0,
		ParIndent: DefaultParIndent,
		ParSkip:   0,
		Fill:      true,
		Justify:   true,
	}
}

// EndnoteDefaults 返回脚注模板的默认参数。
func EndnoteDefaults() State {
	return State{
		TextWidth: DefaultTextWidth,
		Fill:      true,
		Justify:   true,
	}
}

// Options 配置一个 LineAssembler。
type Options struct {
	State State
	// Collect 为 true 时只累积单词，不输出任何行（脚注正文的子解析使用）。
	Collect bool
}
