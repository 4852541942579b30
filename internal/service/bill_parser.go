package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"expense-tracker/internal/models"

	"go.uber.org/zap"
)

// ErrMalformedExtraction means the model responded but its payload could
// not be read as a non-empty list of bill records.
var ErrMalformedExtraction = errors.New("malformed bill extraction payload")

// Field names the extraction prompt asks the model to use.
const (
	fieldVendorName      = "Vendor Name"
	fieldExpenseType     = "Type of the Expense"
	fieldExpenseCategory = "Category of the Expense"
	fieldBillDate        = "Bill Date"
	fieldTotalAmount     = "Total Amount"
)

// Fallbacks applied when a field is absent or unreadable. The pipeline
// prefers producing some expense record over rejecting ambiguous input.
const (
	defaultVendor      = "Unknown Vendor"
	defaultCategory    = "Other"
	defaultDescription = "General"

	// Bills carry dates as day/month/2-digit-year.
	billDateLayout = "02/01/06"
)

// billRecord is one parsed field/value mapping from the model's response.
// Any key may be absent or hold free-form text.
type billRecord map[string]string

// sanitizeExtraction strips markdown code fences the model sometimes wraps
// around its JSON payload. Total and idempotent.
func sanitizeExtraction(text string) string {
	s := strings.ReplaceAll(text, "```json\n", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

// parseBillRecords reads the sanitized payload as a JSON array of records
// and returns the first one. The model is instructed to return a single
// bill; additional entries are discarded rather than merged.
func parseBillRecords(sanitized string) (billRecord, error) {
	var records []map[string]any
	if err := json.Unmarshal([]byte(sanitized), &records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedExtraction, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: no bill records in payload", ErrMalformedExtraction)
	}

	record := make(billRecord, len(records[0]))
	for key, value := range records[0] {
		record[key] = stringifyField(value)
	}
	return record, nil
}

// stringifyField flattens a JSON value to text. Models occasionally return
// amounts as numbers instead of strings.
func stringifyField(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case nil:
		return ""
	default:
		b, _ := json.Marshal(v)
		return string(b)
	}
}

// normalizeBillRecord maps a bill record into a store-ready expense. It
// never fails: every field has a deterministic fallback, and each applied
// fallback is logged so a defaulted value can be told apart from a genuine
// one downstream.
func normalizeBillRecord(record billRecord, now time.Time, logger *zap.Logger) *models.ExpenseData {
	data := &models.ExpenseData{}

	data.Title = sanitizeUTF8(strings.TrimSpace(record[fieldVendorName]))
	if data.Title == "" {
		data.Title = defaultVendor
		logger.Warn("Bill field defaulted", zap.String("field", "title"), zap.String("fallback", defaultVendor))
	}

	amount, ok := parseBillAmount(record[fieldTotalAmount])
	if !ok {
		logger.Warn("Bill field defaulted",
			zap.String("field", "amount"),
			zap.String("raw_value", record[fieldTotalAmount]),
		)
	}
	data.Amount = amount

	data.Category = sanitizeUTF8(strings.TrimSpace(record[fieldExpenseCategory]))
	if data.Category == "" {
		data.Category = defaultCategory
		logger.Warn("Bill field defaulted", zap.String("field", "category"), zap.String("fallback", defaultCategory))
	}

	data.Description = sanitizeUTF8(strings.TrimSpace(record[fieldExpenseType]))
	if data.Description == "" {
		data.Description = defaultDescription
		logger.Warn("Bill field defaulted", zap.String("field", "description"), zap.String("fallback", defaultDescription))
	}

	date, err := time.Parse(billDateLayout, strings.TrimSpace(record[fieldBillDate]))
	if err != nil {
		// Unreadable bill dates become the ingestion time, not a zero value.
		date = now
		logger.Warn("Bill field defaulted",
			zap.String("field", "date"),
			zap.String("raw_value", record[fieldBillDate]),
		)
	}
	data.Date = date

	return data
}

// parseBillAmount turns free-form amount text into a non-negative number.
// Whitespace and thousands separators are stripped first; anything still
// unparsable yields zero with ok=false.
func parseBillAmount(raw string) (float64, bool) {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, raw)
	cleaned = strings.ReplaceAll(cleaned, ",", "")

	if cleaned == "" {
		return 0, false
	}

	amount, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || amount < 0 {
		return 0, false
	}
	return amount, true
}
