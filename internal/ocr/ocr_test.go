package ocr

import (
	"context"
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcliao/yournote/internal/failure"
)

type mockEngine struct {
	text  string
	err   error
	calls int
	got   *image.Gray
}

func (m *mockEngine) Recognize(ctx context.Context, img *image.Gray) (string, error) {
	m.calls++
	m.got = img
	return m.text, m.err
}

func canvas(ink bool) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	if ink {
		for y := 0; y < 10; y++ {
			for x := 2; x < 8; x++ {
				img.SetRGBA(x, y, color.RGBA{0, 0, 0, 255})
			}
		}
	}
	return img
}

func TestExtractBlankCanvasSkipsEngine(t *testing.T) {
	engine := &mockEngine{text: "should not be used"}
	_, err := NewExtractor(engine, nil).Extract(context.Background(), canvas(false))

	require.Error(t, err)
	assert.Equal(t, "No content detected on whiteboard.", err.Error())
	assert.ErrorIs(t, err, failure.ErrEmptyInput)
	assert.Equal(t, 0, engine.calls)
}

func TestExtractCollapsesWhitespace(t *testing.T) {
	engine := &mockEngine{text: "  E = mc\n\n2\t and  more \n"}
	text, err := NewExtractor(engine, nil).Extract(context.Background(), canvas(true))

	require.NoError(t, err)
	assert.Equal(t, "E = mc 2 and more", text)
	assert.Equal(t, 1, engine.calls)
	// ink arrives at the engine as white on black
	assert.Equal(t, uint8(255), engine.got.GrayAt(4, 4).Y)
	assert.Equal(t, uint8(0), engine.got.GrayAt(0, 0).Y)
}

func TestExtractNoText(t *testing.T) {
	engine := &mockEngine{text: " \n\t "}
	_, err := NewExtractor(engine, nil).Extract(context.Background(), canvas(true))

	require.Error(t, err)
	assert.Equal(t, MsgNoText, err.Error())
	assert.Equal(t, failure.EmptyInput, failure.KindOf(err))
}

func TestExtractEngineFailure(t *testing.T) {
	engine := &mockEngine{err: errors.New("tesseract not installed")}
	_, err := NewExtractor(engine, nil).Extract(context.Background(), canvas(true))

	require.Error(t, err)
	assert.Equal(t, "Error during OCR processing: tesseract not installed", err.Error())
	assert.ErrorIs(t, err, failure.ErrUpstream)
}

func TestTesseractMissingBinary(t *testing.T) {
	engine := NewTesseract("/nonexistent/tesseract-binary", "")
	assert.Equal(t, "eng", engine.Language)

	_, err := engine.Recognize(context.Background(), image.NewGray(image.Rect(0, 0, 2, 2)))
	assert.Error(t, err)
}
