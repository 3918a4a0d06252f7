package models

import (
	"encoding/json"
	"regexp"
	"strings"
)

// 后端 record ID：24 位十六进制，位于 URL 末尾
var recordIDPattern = regexp.MustCompile(`(?i)([a-f0-9]{24})$`)

// ExtractRecordID 从引用 URL 末尾取出 record ID；取不到返回 ("", false)
func ExtractRecordID(ref string) (string, bool) {
	if ref == "" {
		return "", false
	}
	m := recordIDPattern.FindStringSubmatch(ref)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// BuildRecordURL 构造写入引用字段时后端需要的 URL
func BuildRecordURL(baseURL, collectionID, recordID string) string {
	return strings.TrimRight(baseURL, "/") + "/apps/" + collectionID + "/records/" + recordID
}

// Ref 引用字段：保留原始 URL，同时带上解析出的 ID。
// ID 为空表示引用无法解析。
type Ref struct {
	URL string
	ID  string
}

func ParseRef(raw string) Ref {
	id, _ := ExtractRecordID(raw)
	return Ref{URL: raw, ID: id}
}

func NewRef(baseURL, collectionID, recordID string) *Ref {
	return &Ref{URL: BuildRecordURL(baseURL, collectionID, recordID), ID: recordID}
}

// RefID nil 安全
func RefID(r *Ref) string {
	if r == nil {
		return ""
	}
	return r.ID
}

func (r Ref) MarshalJSON() ([]byte, error) { return json.Marshal(r.URL) }

// 非字符串的引用当作不存在，不影响整条记录
func (r *Ref) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		*r = Ref{}
		return nil
	}
	*r = ParseRef(s)
	return nil
}
