package llm

import (
	"encoding/base64"

	"github.com/joseph-ayodele/revenue-parser/internal/entity"
)

// PageDataURL encodes a rasterized page as a base64 data URL.
func PageDataURL(p entity.Page) string {
	mt := p.MimeType
	if mt == "" {
		mt = "image/png"
	}
	return "data:" + mt + ";base64," + base64.StdEncoding.EncodeToString(p.Data)
}
