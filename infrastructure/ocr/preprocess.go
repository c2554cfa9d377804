package ocr

import (
	"image"

	"gocv.io/x/gocv"
)

// documentVariant is one preprocessing strategy. Scans fail unpredictably
// under any single fixed pipeline, so recognition runs once per variant and
// the best pass wins.
type documentVariant struct {
	Name  string
	Apply func(src gocv.Mat) gocv.Mat
}

// documentVariants is the ordered strategy list. Adding or removing a variant
// is a one-line change.
var documentVariants = []documentVariant{
	{Name: "grayscale", Apply: grayscaleVariant},
	{Name: "threshold", Apply: thresholdVariant},
	{Name: "sharpened", Apply: sharpenedVariant},
	{Name: "denoised", Apply: denoisedVariant},
	{Name: "denoised_enhanced", Apply: denoisedEnhancedVariant},
	{Name: "inverted", Apply: invertedVariant},
}

func grayscaleVariant(src gocv.Mat) gocv.Mat {
	gray := gocv.NewMat()
	gocv.CvtColor(src, &gray, gocv.ColorBGRToGray)

	// Small captures starve the recogniser; upscale narrow documents.
	if gray.Cols() < 1000 {
		scale := 1000.0 / float64(gray.Cols())
		scaled := gocv.NewMat()
		gocv.Resize(gray, &scaled, image.Point{}, scale, scale, gocv.InterpolationLinear)
		gray.Close()
		return scaled
	}
	return gray
}

func thresholdVariant(src gocv.Mat) gocv.Mat {
	gray := grayscaleVariant(src)
	defer gray.Close()

	thresh := gocv.NewMat()
	gocv.AdaptiveThreshold(gray, &thresh, 255, gocv.AdaptiveThresholdGaussian, gocv.ThresholdBinary, 11, 2)
	return thresh
}

func sharpenedVariant(src gocv.Mat) gocv.Mat {
	gray := grayscaleVariant(src)
	defer gray.Close()

	blurred := gocv.NewMat()
	defer blurred.Close()
	gocv.GaussianBlur(gray, &blurred, image.Pt(0, 0), 3, 3, gocv.BorderDefault)

	sharp := gocv.NewMat()
	gocv.AddWeighted(gray, 1.5, blurred, -0.5, 0, &sharp)
	return sharp
}

func denoisedVariant(src gocv.Mat) gocv.Mat {
	denoised := gocv.NewMat()
	gocv.FastNlMeansDenoisingColoredWithParams(src, &denoised, 10, 10, 7, 21)
	return denoised
}

func denoisedEnhancedVariant(src gocv.Mat) gocv.Mat {
	denoised := denoisedVariant(src)
	defer denoised.Close()
	return claheEnhance(denoised)
}

func invertedVariant(src gocv.Mat) gocv.Mat {
	gray := grayscaleVariant(src)
	defer gray.Close()

	inverted := gocv.NewMat()
	gocv.BitwiseNot(gray, &inverted)
	return inverted
}

// claheEnhance lifts local contrast on the L channel in LAB space. Shared
// with the biometric package's washed-out-scan handling.
func claheEnhance(src gocv.Mat) gocv.Mat {
	lab := gocv.NewMat()
	defer lab.Close()
	gocv.CvtColor(src, &lab, gocv.ColorBGRToLab)

	channels := gocv.Split(lab)
	defer func() {
		for i := range channels {
			channels[i].Close()
		}
	}()

	clahe := gocv.NewCLAHEWithParams(3.0, image.Pt(8, 8))
	defer clahe.Close()

	enhanced := gocv.NewMat()
	defer enhanced.Close()
	clahe.Apply(channels[0], &enhanced)
	enhanced.CopyTo(&channels[0])

	merged := gocv.NewMat()
	defer merged.Close()
	gocv.Merge(channels, &merged)

	out := gocv.NewMat()
	gocv.CvtColor(merged, &out, gocv.ColorLabToBGR)
	return out
}

func encodePNG(img gocv.Mat) ([]byte, error) {
	buf, err := gocv.IMEncode(gocv.PNGFileExt, img)
	if err != nil {
		return nil, err
	}
	defer buf.Close()
	out := make([]byte, len(buf.GetBytes()))
	copy(out, buf.GetBytes())
	return out, nil
}
