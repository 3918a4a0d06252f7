package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const base = "https://my.living-apps.de/rest"

func TestExtractRecordID(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
		ok   bool
	}{
		{"record url", base + "/apps/697b868cc0013ffdb5f1e82d/records/65a1b2c3d4e5f60718293a4b", "65a1b2c3d4e5f60718293a4b", true},
		{"upper case", base + "/apps/x/records/65A1B2C3D4E5F60718293A4B", "65A1B2C3D4E5F60718293A4B", true},
		{"bare id", "65a1b2c3d4e5f60718293a4b", "65a1b2c3d4e5f60718293a4b", true},
		{"longer hex tail keeps last 24", "ff65a1b2c3d4e5f60718293a4b", "65a1b2c3d4e5f60718293a4b", true},
		{"empty", "", "", false},
		{"too short", base + "/apps/x/records/65a1b2c3", "", false},
		{"trailing slash", base + "/apps/x/records/65a1b2c3d4e5f60718293a4b/", "", false},
		{"non hex", base + "/apps/x/records/65a1b2c3d4e5f60718293a4z", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ExtractRecordID(tc.in)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestBuildRecordURLRoundTrip(t *testing.T) {
	ids := []string{
		"000000000000000000000000",
		"65a1b2c3d4e5f60718293a4b",
		"ffffffffffffffffffffffff",
	}
	for _, id := range ids {
		url := BuildRecordURL(base, "697b868cc0013ffdb5f1e82d", id)
		assert.Equal(t, base+"/apps/697b868cc0013ffdb5f1e82d/records/"+id, url)

		got, ok := ExtractRecordID(url)
		require.True(t, ok)
		assert.Equal(t, id, got)
	}
}

func TestBuildRecordURLTrimsSlash(t *testing.T) {
	assert.Equal(t, base+"/apps/a/records/b", BuildRecordURL(base+"/", "a", "b"))
}

func TestRefJSON(t *testing.T) {
	var f CheckoutFields
	require.NoError(t, json.Unmarshal([]byte(`{
		"werkzeug": "`+base+`/apps/697b868cc0013ffdb5f1e82d/records/65a1b2c3d4e5f60718293a4b",
		"mitarbeiter": "broken",
		"geplantes_rueckgabedatum": "2026-10-20"
	}`), &f))

	require.NotNil(t, f.Tool)
	assert.Equal(t, "65a1b2c3d4e5f60718293a4b", f.Tool.ID)
	require.NotNil(t, f.Employee)
	assert.Empty(t, f.Employee.ID)
	assert.Equal(t, "broken", f.Employee.URL)

	out, err := json.Marshal(f)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"werkzeug": "`+base+`/apps/697b868cc0013ffdb5f1e82d/records/65a1b2c3d4e5f60718293a4b",
		"mitarbeiter": "broken",
		"geplantes_rueckgabedatum": "2026-10-20"
	}`, string(out))
}

func TestRefAbsent(t *testing.T) {
	var f ReturnFields
	require.NoError(t, json.Unmarshal([]byte(`{"werkzeugausgabe": null}`), &f))
	assert.Nil(t, f.Checkout)
	assert.Empty(t, RefID(f.Checkout))
}

func TestRefNonStringIsAbsent(t *testing.T) {
	for _, in := range []string{`{"url": "x"}`, `17`, `true`, `["65a1b2c3d4e5f60718293a4b"]`} {
		var f CheckoutFields
		require.NoError(t, json.Unmarshal([]byte(`{"werkzeug": `+in+`, "verwendungszweck": "Montage"}`), &f), in)
		assert.Empty(t, RefID(f.Tool), in)
		assert.Equal(t, "Montage", f.Purpose, in)
	}
}
