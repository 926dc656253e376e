package llm

// BuildRevenueJSONSchema returns a JSON-Schema (draft 2020-12 subset) as a generic map.
// It is shown to the model and used locally to check the required fields after sanitizing.
func BuildRevenueJSONSchema() map[string]any {
	lineItem := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"description": map[string]any{"type": "string"},
			"quantity":    map[string]any{"type": "number"},
			"rate":        map[string]any{"type": "number"},
			"amount":      map[string]any{"type": "number"},
		},
		"required": []string{"description", "amount"},
	}

	props := map[string]any{
		"company":      map[string]any{"type": "string", "minLength": 1},
		"period":       map[string]any{"type": "string", "minLength": 1},
		"totalRevenue": map[string]any{"type": "number"},
		"lineItems":    map[string]any{"type": "array", "items": lineItem},
		"taxes":        map[string]any{"type": "number"},
		"netRevenue":   map[string]any{"type": "number"},
	}

	return map[string]any{
		"type":       "object",
		"properties": props,
		"required":   []string{"company", "period", "totalRevenue"},
	}
}
