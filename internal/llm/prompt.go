package llm

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v2"
)

//go:embed prompts.yaml
var promptsYAML []byte

type promptCatalogue struct {
	System       string          `yaml:"system"`
	Intro        string          `yaml:"intro"`
	Example      trainingExample `yaml:"example"`
	Taxes        []string        `yaml:"taxes"`
	Deductions   []string        `yaml:"deductions"`
	Instructions []string        `yaml:"instructions"`
}

type trainingExample struct {
	Property           string `yaml:"property"`
	PropertyNumber     string `yaml:"property_number"`
	Product            string `yaml:"product"`
	Gross              string `yaml:"gross"`
	Taxes              string `yaml:"taxes"`
	Deductions         string `yaml:"deductions"`
	DeductionBreakdown string `yaml:"deduction_breakdown"`
	Net                string `yaml:"net"`
}

var catalogue = mustLoadCatalogue(promptsYAML)

func mustLoadCatalogue(b []byte) promptCatalogue {
	var c promptCatalogue
	if err := yaml.Unmarshal(b, &c); err != nil {
		panic(fmt.Sprintf("llm: invalid embedded prompts.yaml: %v", err))
	}
	return c
}

// BuildPrompt returns the fixed extraction prompt. It has no inputs and no side effects.
func BuildPrompt() Prompt {
	return Prompt{
		System: BuildSystemPrompt(),
		User:   BuildUserPrompt(),
	}
}

// BuildSystemPrompt composes the system message, anchored on the training example.
func BuildSystemPrompt() string {
	ex := catalogue.Example
	parts := []string{
		strings.TrimSpace(catalogue.System),
		fmt.Sprintf("Use the training example as your guide: %s (%s) %s with taxes %s, deductions %s, net %s.",
			ex.Property, ex.PropertyNumber, ex.Product, ex.Taxes, ex.Deductions, ex.Net),
	}
	return strings.Join(parts, " ")
}

// BuildUserPrompt lists the classification rules, the balancing identity and the
// exact output shape.
func BuildUserPrompt() string {
	ex := catalogue.Example

	var b strings.Builder
	b.WriteString(strings.TrimSpace(catalogue.Intro))
	b.WriteString("\n\nCRITICAL TRAINING EXAMPLE - EXACT VALUES TO MATCH:\n")
	fmt.Fprintf(&b, "Property: %q (complete well name exactly as shown)\n", ex.Property)
	fmt.Fprintf(&b, "Property Number: %q (exact identifier)\n", ex.PropertyNumber)
	fmt.Fprintf(&b, "Product Type: %q (product category)\n", ex.Product)

	b.WriteString("\nFINANCIAL BREAKDOWN FOR THIS PROPERTY:\n")
	fmt.Fprintf(&b, "- Gross Value: %s (total revenue before deductions)\n", ex.Gross)
	fmt.Fprintf(&b, "- Taxes: %s (ONLY severance, federal, state, withholding taxes)\n", ex.Taxes)
	fmt.Fprintf(&b, "- Deductions: %s (%s)\n", ex.Deductions, ex.DeductionBreakdown)
	fmt.Fprintf(&b, "- Net Payment: %s\n", ex.Net)

	b.WriteString("\nFINANCIAL CATEGORIZATION - CRITICAL:\n")
	b.WriteString("TAXES (sum these ONLY into the \"taxes\" field):\n")
	writeBullets(&b, catalogue.Taxes)
	b.WriteString("\nDEDUCTIONS (NOT returned as a field; they must be inferable as totalRevenue - netRevenue - |taxes|):\n")
	writeBullets(&b, catalogue.Deductions)

	b.WriteString("\nCALCULATION VERIFICATION:\n")
	b.WriteString("- Net Value = Gross Value - |Taxes| - |Deductions|\n")
	fmt.Fprintf(&b, "- Training example: %s - %s - %s = %s\n",
		ex.Gross, strings.TrimPrefix(ex.Taxes, "-"), strings.TrimPrefix(ex.Deductions, "-"), ex.Net)

	b.WriteString("\nReturn ONLY a valid JSON object with the following structure:\n")
	b.WriteString(mustJSON(exampleShape()))
	b.WriteString("\n\nJSON Schema:\n")
	b.WriteString(mustJSON(BuildRevenueJSONSchema()))

	b.WriteString("\n\nCRITICAL INSTRUCTIONS:\n")
	for i, in := range catalogue.Instructions {
		fmt.Fprintf(&b, "%d. %s\n", i+1, in)
	}
	return b.String()
}

func writeBullets(b *strings.Builder, items []string) {
	for _, it := range items {
		b.WriteString("- ")
		b.WriteString(it)
		b.WriteString("\n")
	}
}

// exampleShape is the literal object layout shown to the model. Key order is
// kept stable by json.Marshal's sorted map keys.
func exampleShape() map[string]any {
	return map[string]any{
		"company":      "Company name",
		"period":       "Time period (e.g., 'December 2021', 'Q4 2023')",
		"totalRevenue": "number",
		"lineItems": []map[string]any{{
			"description": "Complete property description with well name and product type",
			"quantity":    "number",
			"rate":        "number",
			"amount":      "number",
		}},
		"taxes":      "number",
		"netRevenue": "number",
	}
}

func mustJSON(v any) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}
