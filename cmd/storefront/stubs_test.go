package main

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Every stub that cmd_make.go renders must exist in the embedded FS.
func TestEmbeddedStubsRender(t *testing.T) {
	data := StubData{
		Name:       "Widget",
		Lower:      "widget",
		StructName: "M_20260101000000_create_widgets_table",
	}

	for _, name := range []string{"model", "controller", "service", "migration", "seeder", "test_scenario"} {
		out, err := renderStub(name, data)
		require.NoError(t, err, name)
		assert.NotEmpty(t, out, name)
	}
}

func TestModelStubUsesName(t *testing.T) {
	out, err := renderStub("model", StubData{Name: "Widget", Lower: "widget"})
	require.NoError(t, err)
	assert.Contains(t, out, "type Widget struct")
	assert.Contains(t, out, "gorm.Model")
}

func TestMigrationStubRegistersItself(t *testing.T) {
	out, err := renderStub("migration", StubData{
		Name:       "20260101000000_create_widgets_table",
		StructName: "M_20260101000000_create_widgets_table",
	})
	require.NoError(t, err)
	assert.Contains(t, out, `migration.Register("20260101000000_create_widgets_table"`)
	assert.Contains(t, out, "type M_20260101000000_create_widgets_table struct{}")
}

func TestScenarioStubIsValidJSON(t *testing.T) {
	out, err := renderStub("test_scenario", StubData{Name: "Widget", Lower: "widget"})
	require.NoError(t, err)

	var scenarios []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &scenarios))
	assert.NotEmpty(t, scenarios)
	assert.Equal(t, "/widgets", scenarios[0]["requestUrl"])
}
