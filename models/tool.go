package models

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

type Condition string

const (
	ConditionNew          Condition = "neu"
	ConditionVeryGood     Condition = "sehr_gut"
	ConditionGood         Condition = "gut"
	ConditionSatisfactory Condition = "befriedigend"
	ConditionSufficient   Condition = "ausreichend"
	ConditionDefective    Condition = "defekt"
)

// Conditions 固定顺序，直方图按此输出
var Conditions = []Condition{
	ConditionNew,
	ConditionVeryGood,
	ConditionGood,
	ConditionSatisfactory,
	ConditionSufficient,
	ConditionDefective,
}

func (c Condition) Valid() bool {
	for _, v := range Conditions {
		if c == v {
			return true
		}
	}
	return false
}

func (c Condition) Label() string {
	switch c {
	case ConditionNew:
		return "Neu"
	case ConditionVeryGood:
		return "Sehr gut"
	case ConditionGood:
		return "Gut"
	case ConditionSatisfactory:
		return "Befriedigend"
	case ConditionSufficient:
		return "Ausreichend"
	case ConditionDefective:
		return "Defekt"
	}
	return string(c)
}

type ToolFields struct {
	Name                string           `json:"werkzeugname,omitempty"`
	Manufacturer        string           `json:"hersteller,omitempty"`
	Model               string           `json:"modell,omitempty"`
	SerialNumber        string           `json:"seriennummer,omitempty"`
	AcquiredOn          string           `json:"anschaffungsdatum,omitempty"`
	AcquisitionPrice    *decimal.Decimal `json:"anschaffungspreis,omitempty"`
	CurrentLocation     *Ref             `json:"aktueller_lagerort,omitempty"`
	Condition           Condition        `json:"zustand,omitempty"`
	MaintenanceInterval *FlexInt         `json:"wartungsintervall_monate,omitempty"`
	NextMaintenance     string           `json:"naechste_wartung,omitempty"`
	Notes               string           `json:"notizen,omitempty"`
}

// 价格和保养间隔在后端里可能是空串或任意文本，解析不了就留空
func (f *ToolFields) UnmarshalJSON(b []byte) error {
	type plain ToolFields
	var aux struct {
		plain
		AcquisitionPrice    json.RawMessage `json:"anschaffungspreis"`
		MaintenanceInterval json.RawMessage `json:"wartungsintervall_monate"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	*f = ToolFields(aux.plain)
	f.AcquisitionPrice = parseDecimal(aux.AcquisitionPrice)
	if n, ok := parseFlexInt(aux.MaintenanceInterval); ok {
		f.MaintenanceInterval = &n
	}
	return nil
}
