package export

import (
	"path/filepath"
	"strings"
	"time"
)

const defaultBaseName = "statement"

// BaseName strips any directory and the extension from an uploaded name.
func BaseName(fileName string) string {
	name := filepath.Base(strings.ReplaceAll(strings.TrimSpace(fileName), `\`, "/"))
	name = strings.TrimSuffix(name, filepath.Ext(name))
	if name == "" || name == "." || name == "/" {
		return defaultBaseName
	}
	return name
}

// XLSXFileName is <base>_parsed_<YYYY-MM-DD>.xlsx.
func XLSXFileName(original string, now time.Time) string {
	return BaseName(original) + "_parsed_" + now.Format(time.DateOnly) + ".xlsx"
}

// CDEXFileName is <base>_cdex_<YYYY-MM-DD>.xml.
func CDEXFileName(original string, now time.Time) string {
	return BaseName(original) + "_cdex_" + now.Format(time.DateOnly) + ".xml"
}
