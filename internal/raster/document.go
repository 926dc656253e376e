package raster

import (
	"fmt"

	"github.com/gabriel-vasile/mimetype"

	"github.com/joseph-ayodele/revenue-parser/constants"
	"github.com/joseph-ayodele/revenue-parser/internal/common"
	"github.com/joseph-ayodele/revenue-parser/internal/entity"
)

// ValidateDocument rejects empty, oversized, or non-PDF input and overlong names. The check is done on
// the content's magic bytes, not on the file name.
func ValidateDocument(doc entity.Document, maxMB int) error {
	if maxMB <= 0 {
		maxMB = constants.MaxUploadMBDefault
	}
	v := common.NewValidator().
		Field("fileName", doc.FileName, common.WithMessage(common.MaxLength(constants.MaxFileNameLength),
			fmt.Sprintf("File name must be at most %d characters.", constants.MaxFileNameLength)))
	if err := v.Error(); err != nil {
		return err
	}
	if len(doc.Data) == 0 {
		return common.InvalidInputError("The uploaded file is empty.")
	}
	if int64(len(doc.Data)) > int64(maxMB)<<20 {
		return common.InvalidInputError(fmt.Sprintf("File is too large. Maximum size is %dMB.", maxMB))
	}
	mt := mimetype.Detect(doc.Data)
	if !mt.Is(constants.PDFMimeType) {
		e := common.InvalidInputError("Please upload a PDF revenue statement.")
		e.Detail = "detected " + mt.String()
		return e
	}
	return nil
}
