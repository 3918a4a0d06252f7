package models

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Record 后端返回的通用记录外壳；对外输出 record_id
type Record[F any] struct {
	ID        string  `json:"record_id"`
	CreatedAt string  `json:"createdat"`
	UpdatedAt *string `json:"updatedat"`
	Fields    F       `json:"fields"`
}

// 后端单条记录的 ID 在 "id"，本服务输出的在 "record_id"
type recordWire[F any] struct {
	ID        string  `json:"id"`
	RecordID  string  `json:"record_id"`
	CreatedAt string  `json:"createdat"`
	UpdatedAt *string `json:"updatedat"`
	Fields    F       `json:"fields"`
}

func (r *Record[F]) UnmarshalJSON(b []byte) error {
	var w recordWire[F]
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	id := w.RecordID
	if id == "" {
		id = w.ID
	}
	*r = Record[F]{ID: id, CreatedAt: w.CreatedAt, UpdatedAt: w.UpdatedAt, Fields: w.Fields}
	return nil
}

// 五种记录：Lagerorte / Mitarbeiter / Werkzeuge / Werkzeugausgabe / Werkzeugrueckgabe
type (
	Location = Record[LocationFields]
	Employee = Record[EmployeeFields]
	Tool     = Record[ToolFields]
	Checkout = Record[CheckoutFields]
	Return   = Record[ReturnFields]
)

// FlexInt 接受 JSON 整数、小数（截断）或数字字符串；其它值视为未设置
type FlexInt int

func (n *FlexInt) UnmarshalJSON(b []byte) error {
	if v, ok := parseFlexInt(b); ok {
		*n = v
	}
	return nil
}

func parseFlexInt(b []byte) (FlexInt, bool) {
	s, ok := scalarText(b)
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return FlexInt(math.Trunc(f)), true
}

// parseDecimal 数字或数字字符串；空值和无法解析的值返回 nil
func parseDecimal(b []byte) *decimal.Decimal {
	s, ok := scalarText(b)
	if !ok {
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil
	}
	return &d
}

// scalarText 取出数字或字符串的文本；null、空串、对象、数组返回 false
func scalarText(b []byte) (string, bool) {
	s := strings.TrimSpace(string(b))
	if s == "" || s == "null" || s[0] == '{' || s[0] == '[' {
		return "", false
	}
	if s[0] == '"' {
		unq, err := strconv.Unquote(s)
		if err != nil {
			return "", false
		}
		s = strings.TrimSpace(unq)
	}
	return s, s != ""
}

func (n FlexInt) MarshalJSON() ([]byte, error) { return json.Marshal(int(n)) }
