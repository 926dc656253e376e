package llm

import (
	"context"

	"github.com/joseph-ayodele/revenue-parser/internal/entity"
)

// Prompt is the two-part instruction sent with every extraction.
type Prompt struct {
	System string
	User   string
}

// ExtractRequest carries the ordered page images and the prompt.
type ExtractRequest struct {
	Pages  []entity.Page
	Prompt Prompt
}

// VisionModel sends page images plus a prompt to a hosted model and returns its raw
// text. Implementations classify transport failures into common.AppError kinds and
// never retry.
type VisionModel interface {
	Extract(ctx context.Context, req ExtractRequest) (string, error)
	Name() string
}
