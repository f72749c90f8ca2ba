package ocr

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// Preprocessor adjusts a rasterized page before recognition.
type Preprocessor interface {
	Process(img image.Image) (image.Image, error)
}

// GrayscaleProcessor removes color information.
type GrayscaleProcessor struct{}

func NewGrayscaleProcessor() *GrayscaleProcessor {
	return &GrayscaleProcessor{}
}

func (p *GrayscaleProcessor) Process(img image.Image) (image.Image, error) {
	return imaging.Grayscale(img), nil
}

// ContrastProcessor stretches the contrast so faint print survives
// thresholding inside the recognizer.
type ContrastProcessor struct {
	amount float64
}

func NewContrastProcessor(amount float64) *ContrastProcessor {
	return &ContrastProcessor{amount: amount}
}

func (p *ContrastProcessor) Process(img image.Image) (image.Image, error) {
	return imaging.AdjustContrast(img, p.amount), nil
}

// SharpenProcessor sharpens glyph edges.
type SharpenProcessor struct {
	sigma float64
}

func NewSharpenProcessor(sigma float64) *SharpenProcessor {
	return &SharpenProcessor{sigma: sigma}
}

func (p *SharpenProcessor) Process(img image.Image) (image.Image, error) {
	return imaging.Sharpen(img, p.sigma), nil
}

// DefaultPipeline is the preprocessing chain applied to every page.
func DefaultPipeline() []Preprocessor {
	return []Preprocessor{
		NewGrayscaleProcessor(),
		NewContrastProcessor(15),
		NewSharpenProcessor(0.5),
	}
}

func applyPipeline(pipeline []Preprocessor, img image.Image) (image.Image, error) {
	if img == nil {
		return nil, fmt.Errorf("input image is nil")
	}

	result := img
	for _, p := range pipeline {
		var err error
		result, err = p.Process(result)
		if err != nil {
			return nil, err
		}
		if result == nil {
			return nil, fmt.Errorf("preprocessor returned nil image")
		}
	}
	return result, nil
}
