package service

import (
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestSanitizeExtraction(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "json fence",
			input: "```json\n[{\"Vendor Name\":\"Tesco\"}]\n```",
			want:  `[{"Vendor Name":"Tesco"}]`,
		},
		{
			name:  "bare fence",
			input: "```\n[{}]\n```",
			want:  "[{}]",
		},
		{
			name:  "no fence",
			input: "  [{\"a\":1}]  ",
			want:  `[{"a":1}]`,
		},
		{
			name:  "empty",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sanitizeExtraction(tt.input)
			if got != tt.want {
				t.Errorf("sanitizeExtraction(%q) = %q, want %q", tt.input, got, tt.want)
			}
			// Sanitizing twice must change nothing.
			if again := sanitizeExtraction(got); again != got {
				t.Errorf("sanitizeExtraction is not idempotent: %q -> %q", got, again)
			}
		})
	}
}

func TestParseBillRecords(t *testing.T) {
	t.Run("selects first record", func(t *testing.T) {
		record, err := parseBillRecords(`[{"Vendor Name":"First"},{"Vendor Name":"Second"}]`)
		if err != nil {
			t.Fatalf("parseBillRecords failed: %v", err)
		}
		if record[fieldVendorName] != "First" {
			t.Errorf("expected first record, got vendor %q", record[fieldVendorName])
		}
	})

	t.Run("stringifies numeric values", func(t *testing.T) {
		record, err := parseBillRecords(`[{"Total Amount":12.5}]`)
		if err != nil {
			t.Fatalf("parseBillRecords failed: %v", err)
		}
		if record[fieldTotalAmount] != "12.5" {
			t.Errorf("expected numeric amount stringified, got %q", record[fieldTotalAmount])
		}
	})

	failures := []struct {
		name  string
		input string
	}{
		{"not json", "not json"},
		{"empty array", "[]"},
		{"top-level object", `{"Vendor Name":"Tesco"}`},
		{"empty input", ""},
	}

	for _, tt := range failures {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseBillRecords(tt.input)
			if !errors.Is(err, ErrMalformedExtraction) {
				t.Errorf("parseBillRecords(%q) error = %v, want ErrMalformedExtraction", tt.input, err)
			}
		})
	}
}

func TestNormalizeBillRecord(t *testing.T) {
	logger := zap.NewNop()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("full record", func(t *testing.T) {
		record := billRecord{
			fieldVendorName:      "Coffee Shop",
			fieldExpenseType:     "Food & Drink",
			fieldExpenseCategory: "Dining",
			fieldBillDate:        "25/04/24",
			fieldTotalAmount:     "  12.50 ",
		}

		data := normalizeBillRecord(record, now, logger)

		if data.Title != "Coffee Shop" {
			t.Errorf("title = %q", data.Title)
		}
		if data.Amount != 12.50 {
			t.Errorf("amount = %v, want 12.50", data.Amount)
		}
		if data.Category != "Dining" {
			t.Errorf("category = %q", data.Category)
		}
		if data.Description != "Food & Drink" {
			t.Errorf("description = %q", data.Description)
		}
		want := time.Date(2024, 4, 25, 0, 0, 0, 0, time.UTC)
		if !data.Date.Equal(want) {
			t.Errorf("date = %v, want %v", data.Date, want)
		}
	})

	t.Run("empty record gets all fallbacks", func(t *testing.T) {
		data := normalizeBillRecord(billRecord{}, now, logger)

		if data.Title != defaultVendor {
			t.Errorf("title = %q, want %q", data.Title, defaultVendor)
		}
		if data.Amount != 0 {
			t.Errorf("amount = %v, want 0", data.Amount)
		}
		if data.Category != defaultCategory {
			t.Errorf("category = %q, want %q", data.Category, defaultCategory)
		}
		if data.Description != defaultDescription {
			t.Errorf("description = %q, want %q", data.Description, defaultDescription)
		}
		if !data.Date.Equal(now) {
			t.Errorf("date = %v, want normalization time %v", data.Date, now)
		}
	})

	t.Run("unparsable date falls back to now", func(t *testing.T) {
		record := billRecord{fieldBillDate: "not-a-date"}
		data := normalizeBillRecord(record, now, logger)
		if !data.Date.Equal(now) {
			t.Errorf("date = %v, want %v", data.Date, now)
		}
	})
}

func TestParseBillAmount(t *testing.T) {
	tests := []struct {
		input  string
		want   float64
		wantOK bool
	}{
		{"12.50", 12.50, true},
		{"  12.50 ", 12.50, true},
		{"1,234.50", 1234.50, true},
		{"1 234.50", 1234.50, true},
		{"0", 0, true},
		{"abc", 0, false},
		{"", 0, false},
		{"-5.00", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := parseBillAmount(tt.input)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("parseBillAmount(%q) = (%v, %v), want (%v, %v)", tt.input, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
