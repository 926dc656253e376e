package llm

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// StripCodeFences returns the body of the first fenced code block tagged json (or
// untagged) in raw. Without such a block the trimmed input is returned unchanged.
func StripCodeFences(raw string) string {
	src := []byte(strings.TrimSpace(raw))
	if !bytes.Contains(src, []byte("```")) && !bytes.Contains(src, []byte("~~~")) {
		return string(src)
	}

	doc := goldmark.DefaultParser().Parse(text.NewReader(src))

	var body []byte
	found := false
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering || found {
			return ast.WalkContinue, nil
		}
		fcb, ok := n.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}
		lang := strings.ToLower(string(fcb.Language(src)))
		if lang != "" && lang != "json" && lang != "javascript" {
			return ast.WalkSkipChildren, nil
		}
		var buf bytes.Buffer
		lines := fcb.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			buf.Write(seg.Value(src))
		}
		body = buf.Bytes()
		found = true
		return ast.WalkStop, nil
	})

	if !found {
		return string(src)
	}
	return strings.TrimSpace(string(body))
}

// outermostObject slices s from its first '{' to its last '}', dropping any prose
// a model wraps around the payload.
func outermostObject(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	end := strings.LastIndexByte(s, '}')
	if start < 0 || end <= start {
		return s, false
	}
	return s[start : end+1], start > 0 || end < len(s)-1
}
