package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToolDecodeCoercion(t *testing.T) {
	var tool Tool
	require.NoError(t, json.Unmarshal([]byte(`{
		"createdat": "2026-01-05T08:00:00",
		"updatedat": null,
		"fields": {
			"werkzeugname": "Bohrhammer",
			"anschaffungspreis": 349.9,
			"wartungsintervall_monate": 6.0,
			"zustand": "sehr_gut",
			"naechste_wartung": "2026-11-01"
		}
	}`), &tool))

	assert.Equal(t, "Bohrhammer", tool.Fields.Name)
	require.NotNil(t, tool.Fields.AcquisitionPrice)
	assert.Equal(t, "349.9", tool.Fields.AcquisitionPrice.String())
	require.NotNil(t, tool.Fields.MaintenanceInterval)
	assert.Equal(t, FlexInt(6), *tool.Fields.MaintenanceInterval)
	assert.Equal(t, ConditionVeryGood, tool.Fields.Condition)
	assert.Nil(t, tool.UpdatedAt)
	assert.Nil(t, tool.Fields.CurrentLocation)
}

func TestFlexInt(t *testing.T) {
	cases := map[string]int{
		`12`:    12,
		`3.7`:   3,
		`"24"`:  24,
		`" 9 "`: 9,
		`"1e1"`: 10,
		`-2.9`:  -2,
	}
	for in, want := range cases {
		var n FlexInt
		require.NoError(t, json.Unmarshal([]byte(in), &n), in)
		assert.Equal(t, FlexInt(want), n, in)
	}

	// 无法解析：不报错，保持原值
	for _, in := range []string{`"six"`, `true`, `""`, `{"x": 1}`, `[1]`, `"NaN"`} {
		n := FlexInt(7)
		require.NoError(t, json.Unmarshal([]byte(in), &n), in)
		assert.Equal(t, FlexInt(7), n, in)
	}
}

func TestToolLooseFieldsStayUnset(t *testing.T) {
	cases := map[string]string{
		"empty price":      `{"werkzeugname": "Flex", "anschaffungspreis": ""}`,
		"text price":       `{"werkzeugname": "Flex", "anschaffungspreis": "ca. 80 Euro"}`,
		"object price":     `{"werkzeugname": "Flex", "anschaffungspreis": {"betrag": 80}}`,
		"text interval":    `{"werkzeugname": "Flex", "wartungsintervall_monate": "n/a"}`,
		"bool interval":    `{"werkzeugname": "Flex", "wartungsintervall_monate": false}`,
		"object location":  `{"werkzeugname": "Flex", "aktueller_lagerort": {"x": 1}}`,
		"numeric location": `{"werkzeugname": "Flex", "aktueller_lagerort": 42}`,
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			var f ToolFields
			require.NoError(t, json.Unmarshal([]byte(in), &f))
			assert.Equal(t, "Flex", f.Name)
			assert.Nil(t, f.AcquisitionPrice)
			assert.Nil(t, f.MaintenanceInterval)
			assert.Empty(t, RefID(f.CurrentLocation))
		})
	}
}

func TestToolIntervalAsString(t *testing.T) {
	var f ToolFields
	require.NoError(t, json.Unmarshal([]byte(`{"wartungsintervall_monate": "12", "anschaffungspreis": 0}`), &f))
	require.NotNil(t, f.MaintenanceInterval)
	assert.Equal(t, FlexInt(12), *f.MaintenanceInterval)
	require.NotNil(t, f.AcquisitionPrice)
	assert.True(t, f.AcquisitionPrice.IsZero())
}

func TestRecordID(t *testing.T) {
	// 后端单条记录带 "id"
	var tool Tool
	require.NoError(t, json.Unmarshal([]byte(`{"id": "65a1b2c3d4e5f60718293a4b", "fields": {"werkzeugname": "Flex"}}`), &tool))
	assert.Equal(t, "65a1b2c3d4e5f60718293a4b", tool.ID)
	assert.Equal(t, "Flex", tool.Fields.Name)

	// 对外输出 record_id，并能读回
	out, err := json.Marshal(tool)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"record_id":"65a1b2c3d4e5f60718293a4b"`)
	assert.NotContains(t, string(out), `"id":`)

	var back Tool
	require.NoError(t, json.Unmarshal(out, &back))
	assert.Equal(t, tool.ID, back.ID)
}

func TestStringPriceDecodes(t *testing.T) {
	var f ToolFields
	require.NoError(t, json.Unmarshal([]byte(`{"anschaffungspreis": "1299.00"}`), &f))
	require.NotNil(t, f.AcquisitionPrice)
	assert.Equal(t, "1299", f.AcquisitionPrice.String())
}

func TestEnums(t *testing.T) {
	assert.True(t, ConditionDefective.Valid())
	assert.False(t, Condition("kaputt").Valid())
	assert.Equal(t, "Sehr gut", ConditionVeryGood.Label())

	assert.True(t, ReturnDamaged.NeedsDamageReport())
	assert.True(t, ReturnDefective.NeedsDamageReport())
	assert.False(t, ReturnLightWear.NeedsDamageReport())
	assert.False(t, ReturnCondition("").Valid())

	assert.True(t, LocationVehicle.Valid())
	assert.Equal(t, "Werkstatt", LocationWorkshop.Label())
	assert.True(t, DeptMaintenance.Valid())
	assert.False(t, Department("it").Valid())
}

func TestEmployeeNames(t *testing.T) {
	e := EmployeeFields{FirstName: "Jürgen", LastName: "Schmidt"}
	assert.Equal(t, "Jürgen Schmidt", e.FullName())
	assert.Equal(t, "J. Schmidt", e.ShortName())
	assert.Equal(t, "JS", e.Initials())

	assert.Equal(t, "Schmidt", EmployeeFields{LastName: "Schmidt"}.ShortName())
	assert.Equal(t, "", EmployeeFields{}.Initials())
}
