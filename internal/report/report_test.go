package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"horas/internal/core"
	"horas/internal/services"
)

func fixture(t *testing.T) (services.MonthSummary, services.YearSummary, services.BuildResult) {
	t.Helper()
	rows := [][]string{
		{"Día", "Fecha", "Entrada", "Salida"},
		{"", "05/01/2026", "08:00", "17:00"},
		{"", "06/01/2026", "09:00", "13:00"},
		{"", "06/01/2026", "09:00", "19:00"},
		{"", "07/01/2025", "09:00", "19:00"},
	}
	res := services.BuildRecords(rows, 2026)
	return services.SummarizeMonth(res.Timesheet, time.January, 1), services.SummarizeYear(res.Timesheet), res
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"table", FormatTable, false},
		{" JSON ", FormatJSON, false},
		{"yaml", FormatYAML, false},
		{"csv", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMonthTable(t *testing.T) {
	m, _, _ := fixture(t)
	l := core.MustLocale("es")

	var buf bytes.Buffer
	if err := Month(&buf, FormatTable, services.NewMonthView(m, l, false)); err != nil {
		t.Fatalf("Month() error = %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Enero 2026", "month_total", "12.0h", "Semana 2", "Del 05/01 al 11/01", "08:00 – 17:00"} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q:\n%s", want, out)
		}
	}
}

func TestMonthJSONAndYAML(t *testing.T) {
	m, _, _ := fixture(t)
	v := services.NewMonthView(m, core.MustLocale("en"), false)

	var buf bytes.Buffer
	if err := Month(&buf, FormatJSON, v); err != nil {
		t.Fatalf("Month(json) error = %v", err)
	}
	var got services.MonthView
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal json: %v", err)
	}
	if got.Total != 12 || got.Label != "January 2026" {
		t.Fatalf("json month = %+v", got)
	}

	buf.Reset()
	if err := Month(&buf, FormatYAML, v); err != nil {
		t.Fatalf("Month(yaml) error = %v", err)
	}
	var doc map[string]any
	if err := yaml.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("unmarshal yaml: %v", err)
	}
	if doc["label"] != "January 2026" || doc["days_with_shift"] != 2 {
		t.Fatalf("yaml month = %v", doc)
	}
}

func TestYearTable(t *testing.T) {
	_, y, _ := fixture(t)

	var buf bytes.Buffer
	if err := Year(&buf, FormatTable, services.NewYearView(y, core.MustLocale("es"))); err != nil {
		t.Fatalf("Year() error = %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "year_total") || !strings.Contains(out, "Diciembre") {
		t.Fatalf("unexpected year table:\n%s", out)
	}
	if got := strings.Count(out, "\n"); got < 12 {
		t.Fatalf("expected a line per month, got %d lines", got)
	}
}

func TestIssues(t *testing.T) {
	_, _, res := fixture(t)
	report := res.Report(core.LoadReport{Source: "memory", Year: 2026})

	var buf bytes.Buffer
	if err := Issues(&buf, FormatTable, report); err != nil {
		t.Fatalf("Issues() error = %v", err)
	}
	out := buf.String()
	for _, want := range []string{"LINE", string(core.IssueDuplicateDate), string(core.IssueOutOfYear)} {
		if !strings.Contains(out, want) {
			t.Errorf("issues table missing %q:\n%s", want, out)
		}
	}

	buf.Reset()
	if err := Issues(&buf, FormatJSON, core.LoadReport{}); err != nil {
		t.Fatalf("Issues(json) error = %v", err)
	}
	if strings.TrimSpace(buf.String()) != "[]" {
		t.Fatalf("empty issues should encode as [], got %q", buf.String())
	}
}
