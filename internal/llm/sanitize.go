package llm

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

const unknownItem = "Unknown Item"

// sanitizeRecord coerces the decoded model object in place so the schema check
// only fails on genuinely missing data. Every change is reported.
//   - company/period: trimmed; non-strings dropped
//   - money fields: "$1,234.56" and "(14.25)" style strings become numbers;
//     other non-numbers are dropped so defaults apply later
//   - lineItems: non-arrays become []; each item gets field-level defaults
func sanitizeRecord(m map[string]any) []string {
	changed := make([]string, 0, 4)

	for _, k := range []string{"company", "period"} {
		v, ok := m[k]
		if !ok {
			continue
		}
		switch t := v.(type) {
		case string:
			m[k] = strings.TrimSpace(t)
		case float64:
			// a bare year is still a usable period
			m[k] = strconv.FormatFloat(t, 'f', -1, 64)
			changed = append(changed, k+"(number->string)")
		default:
			delete(m, k)
			changed = append(changed, k+"(type)")
		}
	}

	for _, k := range []string{"totalRevenue", "taxes", "netRevenue"} {
		v, ok := m[k]
		if !ok {
			continue
		}
		if _, isNum := v.(float64); isNum {
			continue
		}
		if f, ok := coerceNumber(v); ok {
			m[k] = f
			changed = append(changed, k+"(coerced)")
			continue
		}
		delete(m, k)
		changed = append(changed, k+"(non-numeric)")
	}

	raw, present := m["lineItems"]
	arr, isArr := raw.([]any)
	if !isArr {
		if present && raw != nil {
			changed = append(changed, "lineItems(not an array)")
		}
		arr = []any{}
	}
	items := make([]any, 0, len(arr))
	for i, it := range arr {
		item, notes := sanitizeLineItem(it)
		for _, n := range notes {
			changed = append(changed, fmt.Sprintf("lineItems[%d].%s", i, n))
		}
		items = append(items, item)
	}
	m["lineItems"] = items

	return changed
}

func sanitizeLineItem(v any) (map[string]any, []string) {
	var notes []string
	obj, ok := v.(map[string]any)
	if !ok {
		obj = map[string]any{}
		if s, isStr := v.(string); isStr {
			obj["description"] = s
		}
		notes = append(notes, "(not an object)")
	}

	desc, _ := obj["description"].(string)
	desc = strings.TrimSpace(desc)
	if desc == "" {
		desc = unknownItem
		notes = append(notes, "description(default)")
	}

	amount, ok := coerceNumber(obj["amount"])
	if !ok {
		amount = 0
		notes = append(notes, "amount(default)")
	}
	quantity, ok := coerceNumber(obj["quantity"])
	if !ok {
		quantity = 1
		notes = append(notes, "quantity(default)")
	}
	rate, ok := coerceNumber(obj["rate"])
	if !ok {
		rate = amount
		notes = append(notes, "rate(default)")
	}

	return map[string]any{
		"description": desc,
		"quantity":    quantity,
		"rate":        rate,
		"amount":      amount,
	}, notes
}

// coerceNumber accepts JSON numbers and money-formatted strings.
func coerceNumber(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, !math.IsNaN(t) && !math.IsInf(t, 0)
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	case string:
		s := strings.TrimSpace(t)
		neg := false
		if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
			neg = true
			s = strings.TrimSuffix(strings.TrimPrefix(s, "("), ")")
		}
		s = strings.NewReplacer("$", "", ",", "", " ", "").Replace(s)
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		if neg {
			f = -f
		}
		return f, true
	}
	return 0, false
}
