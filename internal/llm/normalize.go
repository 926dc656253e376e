package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
	hjson "github.com/hjson/hjson-go/v4"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/joseph-ayodele/revenue-parser/internal/common"
	"github.com/joseph-ayodele/revenue-parser/internal/entity"
)

// balanceTolerance is the slack, in currency units, before the advisory checks warn.
const balanceTolerance = 0.01

// Normalized is a validated record plus what the normalizer had to change or
// could not confirm. Neither list makes the record invalid.
type Normalized struct {
	Record      entity.RevenueRecord
	Adjustments []string
	Warnings    []string
}

// Normalizer turns raw model text into a RevenueRecord.
type Normalizer struct {
	schema *jsonschema.Schema
	logger *slog.Logger
}

func NewNormalizer(logger *slog.Logger) *Normalizer {
	if logger == nil {
		logger = slog.Default()
	}
	schema, err := CompileSchema(BuildRevenueJSONSchema())
	if err != nil {
		// the schema is a package constant; failing here is a programming error
		panic(err)
	}
	return &Normalizer{schema: schema, logger: logger}
}

// Normalize parses raw, fails with MalformedResponse or IncompleteExtraction, and
// otherwise defaults every optional field instead of rejecting the record.
func (n *Normalizer) Normalize(raw string) (Normalized, error) {
	body := StripCodeFences(raw)

	obj, via, err := decodeObject(body)
	if err != nil {
		n.logger.Error("llm.normalize.malformed", "error", err, "raw_len", len(raw))
		return Normalized{}, common.MalformedResponseError(raw, err)
	}

	var out Normalized
	if via != "" {
		out.Adjustments = append(out.Adjustments, "decoded via "+via)
	}
	out.Adjustments = append(out.Adjustments, sanitizeRecord(obj)...)

	if err := n.schema.Validate(obj); err != nil {
		n.logger.Error("llm.normalize.incomplete", "error", err, "missing", missingRequired(obj))
		return Normalized{}, common.IncompleteExtractionError(raw,
			fmt.Errorf("missing or invalid required fields %v: %w", missingRequired(obj), err))
	}

	out.Record = buildRecord(obj)
	out.Warnings = balanceWarnings(out.Record)

	if len(out.Adjustments) > 0 {
		n.logger.Warn("llm.normalize.sanitized", "changed", out.Adjustments)
	}
	if len(out.Warnings) > 0 {
		n.logger.Warn("llm.normalize.balance_mismatch", "warnings", out.Warnings)
	}
	n.logger.Info("llm.normalize.ok",
		"company", out.Record.Company,
		"period", out.Record.Period,
		"line_items", len(out.Record.LineItems),
		"total_revenue", out.Record.TotalRevenue,
	)
	return out, nil
}

// decodeObject parses strict JSON first, then falls back to json-repair and Hjson for
// payloads that at least look like an object. via names the fallback that worked.
func decodeObject(body string) (map[string]any, string, error) {
	trimmedBody := strings.TrimSpace(body)
	if trimmedBody == "" {
		return nil, "", errors.New("empty body")
	}
	if strings.HasPrefix(trimmedBody, "[") {
		return nil, "", errors.New("top-level value is an array, want an object")
	}

	var m map[string]any
	strictErr := json.Unmarshal([]byte(body), &m)
	if strictErr == nil && m != nil {
		return m, "", nil
	}

	candidate, trimmed := outermostObject(body)
	if !strings.HasPrefix(strings.TrimSpace(candidate), "{") {
		if strictErr == nil {
			strictErr = errors.New("not a JSON object")
		}
		return nil, "", strictErr
	}
	if trimmed {
		m = nil
		if err := json.Unmarshal([]byte(candidate), &m); err == nil && m != nil {
			return m, "object extraction", nil
		}
	}

	// repair fixes syntax noise only; a cut-off object would lose data silently
	if err := checkComplete(candidate); err != nil {
		return nil, "", err
	}

	if repaired, err := jsonrepair.RepairJSON(candidate); err == nil {
		m = nil
		if err := json.Unmarshal([]byte(repaired), &m); err == nil && m != nil {
			return m, "json-repair", nil
		}
	}

	var h any
	if err := hjson.Unmarshal([]byte(candidate), &h); err == nil {
		// round-trip through encoding/json so numbers are float64 like the strict path
		if b, err := json.Marshal(h); err == nil {
			m = nil
			if err := json.Unmarshal(b, &m); err == nil && m != nil {
				return m, "hjson", nil
			}
		}
	}

	if strictErr == nil {
		strictErr = errors.New("not a JSON object")
	}
	return nil, "", strictErr
}

// checkComplete rejects text whose strings or brackets are left open, which is
// how a response truncated by the token limit looks.
func checkComplete(s string) error {
	var stack []byte
	inString, escaped := false, false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{', '[':
			stack = append(stack, c)
		case '}', ']':
			open := byte('{')
			if c == ']' {
				open = '['
			}
			if len(stack) == 0 || stack[len(stack)-1] != open {
				return fmt.Errorf("unexpected %q at offset %d", c, i)
			}
			stack = stack[:len(stack)-1]
		}
	}
	if inString {
		return errors.New("truncated response: unterminated string")
	}
	if len(stack) > 0 {
		return fmt.Errorf("truncated response: %d unclosed bracket(s)", len(stack))
	}
	return nil
}

func missingRequired(m map[string]any) []string {
	var missing []string
	for _, k := range []string{"company", "period"} {
		if s, _ := m[k].(string); s == "" {
			missing = append(missing, k)
		}
	}
	if _, ok := m["totalRevenue"].(float64); !ok {
		missing = append(missing, "totalRevenue")
	}
	return missing
}

// buildRecord assumes obj passed sanitizeRecord and the schema check.
func buildRecord(obj map[string]any) entity.RevenueRecord {
	rec := entity.RevenueRecord{
		Company:      obj["company"].(string),
		Period:       obj["period"].(string),
		TotalRevenue: obj["totalRevenue"].(float64),
		LineItems:    []entity.LineItem{},
	}
	for _, it := range obj["lineItems"].([]any) {
		item := it.(map[string]any)
		rec.LineItems = append(rec.LineItems, entity.LineItem{
			Description: item["description"].(string),
			Quantity:    item["quantity"].(float64),
			Rate:        item["rate"].(float64),
			Amount:      item["amount"].(float64),
		})
	}
	if taxes, ok := obj["taxes"].(float64); ok {
		rec.Taxes = taxes
	}
	if net, ok := obj["netRevenue"].(float64); ok {
		rec.NetRevenue = net
	} else {
		rec.NetRevenue = rec.TotalRevenue - rec.Taxes
	}
	return rec
}

// balanceWarnings reports, without correcting, records where the net exceeds
// gross minus taxes or the line items do not add up to the gross.
func balanceWarnings(r entity.RevenueRecord) []string {
	var warns []string
	if r.TotalRevenue < 0 {
		warns = append(warns, fmt.Sprintf("totalRevenue is negative (%.2f)", r.TotalRevenue))
	}
	other := r.TotalRevenue - r.NetRevenue - math.Abs(r.Taxes)
	if other < -balanceTolerance {
		warns = append(warns, fmt.Sprintf("netRevenue exceeds totalRevenue - |taxes| by %.2f", -other))
	}
	if len(r.LineItems) > 0 {
		var sum float64
		for _, it := range r.LineItems {
			sum += it.Amount
		}
		if math.Abs(sum-r.TotalRevenue) > balanceTolerance {
			warns = append(warns, fmt.Sprintf("line item amounts sum to %.2f, totalRevenue is %.2f", sum, r.TotalRevenue))
		}
	}
	return warns
}
