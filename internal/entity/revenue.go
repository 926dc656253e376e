package entity

// RevenueRecord is the canonical parsed statement, owned by the caller once
// the normalizer returns it.
type RevenueRecord struct {
	Company      string     `json:"company"`
	Period       string     `json:"period"`
	TotalRevenue float64    `json:"totalRevenue"`
	LineItems    []LineItem `json:"lineItems"`
	Taxes        float64    `json:"taxes"`
	NetRevenue   float64    `json:"netRevenue"`
}

// LineItem is one row of a revenue statement.
type LineItem struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Rate        float64 `json:"rate"`
	Amount      float64 `json:"amount"`
}

// Clone returns a deep copy so builders never share the caller's slice.
func (r RevenueRecord) Clone() RevenueRecord {
	out := r
	if r.LineItems != nil {
		out.LineItems = make([]LineItem, len(r.LineItems))
		copy(out.LineItems, r.LineItems)
	}
	return out
}

// Page is one rasterized page of the source document.
type Page struct {
	Number   int
	MimeType string
	Data     []byte
}

// Document is a raw statement as received from the caller.
type Document struct {
	FileName string
	Data     []byte
}
