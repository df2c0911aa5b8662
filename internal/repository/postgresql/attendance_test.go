package postgresql

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/formdata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeClockRecords(t *testing.T) {
	tests := []struct {
		name string
		data string
		want int
	}{
		{"empty column", "", 0},
		{"json null", "null", 0},
		{"empty array", "[]", 0},
		{"object instead of array", `{"in_time":"2024-02-01T09:00:00Z"}`, 0},
		{"garbage", "not json", 0},
		{"two sessions", `[{"in_time":"2024-02-01T09:00:00Z","out_time":"2024-02-01T12:00:00Z"},{"in_time":"2024-02-01T13:00:00Z"}]`, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sessions := decodeClockRecords("rec-1", []byte(tt.data))
			assert.Len(t, sessions, tt.want)
		})
	}
}

func TestDecodeFormData_KeepsConvertibleFields(t *testing.T) {
	schema := formdata.Schema{
		{Name: "hours", Kind: formdata.KindNumber},
		{Name: "remote", Kind: formdata.KindBool},
	}

	values := decodeFormData("rec-1", []byte(`{"hours":"eight","remote":true}`), schema)

	require.NotNil(t, values)
	assert.NotContains(t, values, "hours")
	assert.True(t, values["remote"].Bool)

	assert.Empty(t, decodeFormData("rec-2", []byte("{"), schema))
}

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func TestDecodeFormData_ReportsMissingRequiredFields(t *testing.T) {
	logs := captureLogs(t)
	schema := formdata.Schema{
		{Name: "project", Kind: formdata.KindString, Required: true},
		{Name: "hours", Kind: formdata.KindNumber},
	}

	values := decodeFormData("rec-1", []byte(`{"hours":8}`), schema)

	assert.Equal(t, 8.0, values["hours"].Number)
	assert.Contains(t, logs.String(), "Form data is incomplete")
	assert.Contains(t, logs.String(), "project: project is required")
}

func TestDecodeFormData_CompleteRecordLogsNothing(t *testing.T) {
	logs := captureLogs(t)
	schema := formdata.Schema{{Name: "project", Kind: formdata.KindString, Required: true}}

	values := decodeFormData("rec-1", []byte(`{"project":"Apollo"}`), schema)

	assert.Equal(t, "Apollo", values["project"].String)
	assert.Empty(t, logs.String())
}
