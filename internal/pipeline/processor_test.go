package pipeline

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/revenue-parser/internal/common"
	"github.com/joseph-ayodele/revenue-parser/internal/entity"
	"github.com/joseph-ayodele/revenue-parser/internal/llm"
	mock_pipeline "github.com/joseph-ayodele/revenue-parser/internal/pipeline/mocks"
	"github.com/joseph-ayodele/revenue-parser/internal/raster"
)

var pdfDoc = entity.Document{FileName: "dec.pdf", Data: []byte("%PDF-1.4\n%\xe2\xe3\xcf\xd3\n1 0 obj\n<<>>\nendobj\n")}

var twoPages = []entity.Page{
	{Number: 1, MimeType: "image/png", Data: []byte("p1")},
	{Number: 2, MimeType: "image/png", Data: []byte("p2")},
}

func setup(t *testing.T) (*Processor, *mock_pipeline.MockPageRasterizer, *mock_pipeline.MockVisionModel) {
	ctrl := gomock.NewController(t)
	rast := mock_pipeline.NewMockPageRasterizer(ctrl)
	model := mock_pipeline.NewMockVisionModel(ctrl)
	model.EXPECT().Name().Return("openai:gpt-4o").AnyTimes()
	return NewProcessor(nil, rast, model, nil, 20), rast, model
}

func TestProcess_Success(t *testing.T) {
	proc, rast, model := setup(t)

	rast.EXPECT().
		Rasterize(gomock.Any(), pdfDoc, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ entity.Document, onPage raster.ProgressFunc) ([]entity.Page, error) {
			onPage(1, 2)
			onPage(2, 2)
			return twoPages, nil
		})
	model.EXPECT().
		Extract(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req llm.ExtractRequest) (string, error) {
			assert.Equal(t, twoPages, req.Pages)
			assert.Equal(t, llm.BuildPrompt(), req.Prompt)
			return "```json\n{\"company\":\"Acme\",\"period\":\"Q4 2023\",\"totalRevenue\":1000}\n```", nil
		})

	var seen []int
	res, err := proc.Process(context.Background(), pdfDoc, func(p int) { seen = append(seen, p) })

	require.NoError(t, err)
	assert.Equal(t, entity.RevenueRecord{
		Company:      "Acme",
		Period:       "Q4 2023",
		TotalRevenue: 1000,
		LineItems:    []entity.LineItem{},
		NetRevenue:   1000,
	}, res.Record)
	assert.Equal(t, 2, res.Pages)
	assert.Equal(t, "openai:gpt-4o", res.Model)

	require.NotEmpty(t, seen)
	assert.IsNonDecreasing(t, seen)
	assert.Equal(t, 5, seen[0])
	assert.Contains(t, seen, 25)
	assert.Equal(t, 100, seen[len(seen)-1])
}

func TestProcess_RejectsNonPDF(t *testing.T) {
	proc, _, _ := setup(t)

	_, err := proc.Process(context.Background(), entity.Document{FileName: "a.txt", Data: []byte("hello")}, nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrInvalidInput)
	assert.Contains(t, err.Error(), "validate: ")
	assert.Equal(t, "Please upload a PDF revenue statement.", common.UserMessage(err))
}

func TestProcess_StageFailures(t *testing.T) {
	tests := []struct {
		name      string
		rastErr   error
		modelOut  string
		modelErr  error
		wantStage string
		wantKind  error
	}{
		{
			name:      "rasterizer fails",
			rastErr:   errors.New("pdftoppm: exit status 1"),
			wantStage: "rasterize: ",
		},
		{
			name:      "quota exceeded",
			modelErr:  common.ClassifyTransport("openai", http.StatusTooManyRequests, "", nil),
			wantStage: "extract: ",
			wantKind:  common.ErrQuotaExceeded,
		},
		{
			name:      "upstream down",
			modelErr:  common.ClassifyTransport("openai", http.StatusServiceUnavailable, "", nil),
			wantStage: "extract: ",
			wantKind:  common.ErrUnavailable,
		},
		{
			name:      "unparsable model output",
			modelOut:  "I could not read this document.",
			wantStage: "normalize: ",
			wantKind:  common.ErrMalformedResponse,
		},
		{
			name:      "missing company",
			modelOut:  `{"period":"Q4 2023","totalRevenue":10}`,
			wantStage: "normalize: ",
			wantKind:  common.ErrIncompleteExtraction,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			proc, rast, model := setup(t)

			if tt.rastErr != nil {
				rast.EXPECT().Rasterize(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, tt.rastErr)
			} else {
				rast.EXPECT().Rasterize(gomock.Any(), gomock.Any(), gomock.Any()).Return(twoPages, nil)
				model.EXPECT().Extract(gomock.Any(), gomock.Any()).Return(tt.modelOut, tt.modelErr)
			}

			var seen []int
			_, err := proc.Process(context.Background(), pdfDoc, func(p int) { seen = append(seen, p) })

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantStage)
			if tt.wantKind != nil {
				assert.ErrorIs(t, err, tt.wantKind)
			}
			assert.IsNonDecreasing(t, seen)
			assert.NotContains(t, seen, 100)
		})
	}
}

func TestProcess_UnavailableIsRetryable(t *testing.T) {
	proc, rast, model := setup(t)
	rast.EXPECT().Rasterize(gomock.Any(), gomock.Any(), gomock.Any()).Return(twoPages, nil)
	model.EXPECT().Extract(gomock.Any(), gomock.Any()).
		Return("", common.ClassifyTransport("openai", http.StatusBadGateway, "", nil))

	_, err := proc.Process(context.Background(), pdfDoc, nil)

	assert.True(t, common.IsRetryable(err))
}
