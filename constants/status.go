package constants

// Stage names a step of the statement pipeline. Errors are wrapped with it.
type Stage string

const (
	StageValidate  Stage = "validate"
	StageRasterize Stage = "rasterize"
	StageExtract   Stage = "extract"
	StageNormalize Stage = "normalize"
)

// Progress checkpoints (percent). Rasterization reports inside
// [ProgressRasterStart, ProgressRasterEnd]; extraction inside
// [ProgressRasterEnd, ProgressExtractEnd].
const (
	ProgressValidated   = 5
	ProgressRasterStart = 10
	ProgressRasterEnd   = 40
	ProgressExtractEnd  = 90
	ProgressDone        = 100
)
