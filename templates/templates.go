package templates

import (
	"embed"
	"html/template"
	"time"

	"werkzeug_dashboard/dashboard"
)

//go:embed *.html
var files embed.FS

// Funcs 模板里用到的格式化函数
func Funcs() template.FuncMap {
	return template.FuncMap{
		"date":     dashboard.FormatDate,
		"datetime": dashboard.FormatDateTime,
		"days":     dashboard.DaysLabel,
		"clock": func(t time.Time) string {
			return t.Format("15:04")
		},
		// 条形图宽度（百分比）
		"percent": func(n, total int) int {
			if total <= 0 {
				return 0
			}
			return n * 100 / total
		},
	}
}

func Parse() (*template.Template, error) {
	return template.New("").Funcs(Funcs()).ParseFS(files, "*.html")
}
