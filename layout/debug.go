package layout

import (
	"encoding/json"
	"os"
)

// debugDocument 是调试 JSON 的顶层结构，附带便于比对的统计数据。
type debugDocument struct {
	*Result
	PageCount int `json:"pageCount"`
	LineCount int `json:"lineCount"`
}

// WriteDebugJSON 将分页结果输出为 JSON，便于调试或比对。
func WriteDebugJSON(res *Result, path string) error {
	if res == nil {
		return nil
	}
	doc := debugDocument{
		Result:    res,
		PageCount: len(res.Pages),
		LineCount: res.LineCount(),
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
