package biometric

import (
	"errors"
	"image"
	"math"
	"os"
	"strconv"

	"kyc.igtapps.io/infrastructure/biometric/types"
	"kyc.igtapps.io/infrastructure/logger"

	"gocv.io/x/gocv"
)

// ErrEmptyFrameBatch marks an input error: a step call with no frames.
var ErrEmptyFrameBatch = errors.New("liveness step carried no frames")

// Mesh indices of the six landmarks ringing each eye, ordered
// [outer corner, upper 1, upper 2, inner corner, lower 2, lower 1].
var (
	leftEyeIndices  = [6]int{33, 160, 158, 133, 153, 144}
	rightEyeIndices = [6]int{362, 385, 387, 263, 373, 380}
)

const noseTipIndex = 1

type LivenessConfig struct {
	BlinkEARThreshold float64
	HeadTurnExcursion float64
}

func DefaultLivenessConfig() LivenessConfig {
	config := LivenessConfig{
		BlinkEARThreshold: 0.20,
		HeadTurnExcursion: 25,
	}
	if raw := os.Getenv("LIVENESS_EAR_THRESHOLD"); raw != "" {
		if parsed, err := strconv.ParseFloat(raw, 64); err == nil {
			config.BlinkEARThreshold = parsed
		}
	}
	if raw := os.Getenv("LIVENESS_TURN_EXCURSION"); raw != "" {
		if parsed, err := strconv.ParseFloat(raw, 64); err == nil {
			config.HeadTurnExcursion = parsed
		}
	}
	return config
}

// LivenessService verifies challenge actions over frame sequences using a
// facial landmark mesh.
type LivenessService struct {
	mesh   MeshDetector
	config LivenessConfig
}

func NewLivenessService(mesh MeshDetector, config LivenessConfig) *LivenessService {
	return &LivenessService{mesh: mesh, config: config}
}

// VerifyAction decides whether a frame sequence demonstrates the requested
// action. Frames with no decodable image or no face are skipped, never
// fatal; a batch where every frame is unusable yields a false result.
func (ls *LivenessService) VerifyAction(frames [][]byte, action string) (types.ActionResult, error) {
	if len(frames) == 0 {
		return types.ActionResult{}, ErrEmptyFrameBatch
	}

	blinkDetected := false
	nosePositions := []int{}

	for _, frameBuf := range frames {
		img, err := gocv.IMDecode(frameBuf, gocv.IMReadColor)
		if err != nil || img.Empty() {
			continue
		}

		mesh, err := ls.mesh.DetectMesh(img)
		img.Close()
		if err != nil {
			if errors.Is(err, ErrNoFace) {
				continue
			}
			return types.ActionResult{}, err
		}

		ear := (eyeAspectRatio(mesh, leftEyeIndices) + eyeAspectRatio(mesh, rightEyeIndices)) / 2
		if ear < ls.config.BlinkEARThreshold {
			blinkDetected = true
		}

		nosePositions = append(nosePositions, mesh[noseTipIndex].X)
	}

	headLeft, headRight := ls.headTurn(nosePositions)

	result := types.ActionResult{Action: action}
	switch action {
	case "blink":
		result.Success = blinkDetected
	case "left":
		result.Success = headLeft
	case "right":
		result.Success = headRight
	}

	logger.Info("liveness action verified", logger.LoggerOptions{
		Key: "result",
		Data: map[string]interface{}{
			"action":  action,
			"success": result.Success,
			"frames":  len(frames),
			"usable":  len(nosePositions),
		},
	})
	return result, nil
}

// headTurn reports turn direction from the horizontal nose-tip track: the
// excursion must clear the configured threshold and the sign of the overall
// displacement picks the direction.
func (ls *LivenessService) headTurn(nosePositions []int) (left bool, right bool) {
	if len(nosePositions) < 2 {
		return false, false
	}

	min, max := nosePositions[0], nosePositions[0]
	for _, x := range nosePositions[1:] {
		if x < min {
			min = x
		}
		if x > max {
			max = x
		}
	}
	if float64(max-min) <= ls.config.HeadTurnExcursion {
		return false, false
	}

	first := nosePositions[0]
	last := nosePositions[len(nosePositions)-1]
	return last < first, last > first
}

// eyeAspectRatio computes EAR = (|p2-p6| + |p3-p5|) / (2*|p1-p4|) over the
// six eye-ring landmarks. It collapses toward zero as the eyelid closes.
func eyeAspectRatio(mesh []image.Point, indices [6]int) float64 {
	p1 := mesh[indices[0]]
	p2 := mesh[indices[1]]
	p3 := mesh[indices[2]]
	p4 := mesh[indices[3]]
	p5 := mesh[indices[4]]
	p6 := mesh[indices[5]]

	vertical1 := distance(p2, p6)
	vertical2 := distance(p3, p5)
	horizontal := distance(p1, p4)
	if horizontal == 0 {
		return 0
	}
	return (vertical1 + vertical2) / (2.0 * horizontal)
}

func distance(a, b image.Point) float64 {
	dx := float64(a.X - b.X)
	dy := float64(a.Y - b.Y)
	return math.Sqrt(dx*dx + dy*dy)
}
