package biometric

import (
	"errors"
	"image"
	"testing"

	"gocv.io/x/gocv"
)

// fakeMeshDetector replays one prepared mesh per frame in order.
type fakeMeshDetector struct {
	meshes []meshResult
	calls  int
}

type meshResult struct {
	mesh []image.Point
	err  error
}

func (fm *fakeMeshDetector) DetectMesh(img gocv.Mat) ([]image.Point, error) {
	if fm.calls >= len(fm.meshes) {
		return nil, ErrNoFace
	}
	result := fm.meshes[fm.calls]
	fm.calls++
	return result.mesh, result.err
}

func (fm *fakeMeshDetector) Close() error { return nil }

func encodeTestFrame(t *testing.T) []byte {
	t.Helper()
	img := gocv.NewMatWithSize(64, 64, gocv.MatTypeCV8UC3)
	defer img.Close()
	buf, err := gocv.IMEncode(gocv.JPEGFileExt, img)
	if err != nil {
		t.Fatalf("could not encode test frame: %v", err)
	}
	defer buf.Close()
	out := make([]byte, len(buf.GetBytes()))
	copy(out, buf.GetBytes())
	return out
}

// testMesh builds a full 468-point mesh with both eyes set to the given
// aspect ratio geometry and the nose tip at noseX.
func testMesh(eyeVertical int, noseX int) []image.Point {
	mesh := make([]image.Point, 468)

	setEye := func(indices [6]int) {
		mesh[indices[0]] = image.Pt(0, 0)
		mesh[indices[3]] = image.Pt(100, 0)
		mesh[indices[1]] = image.Pt(30, eyeVertical)
		mesh[indices[5]] = image.Pt(30, -eyeVertical)
		mesh[indices[2]] = image.Pt(60, eyeVertical)
		mesh[indices[4]] = image.Pt(60, -eyeVertical)
	}
	setEye(leftEyeIndices)
	setEye(rightEyeIndices)
	mesh[noseTipIndex] = image.Pt(noseX, 150)
	return mesh
}

// Vertical eye offsets: 15 gives EAR 0.30 (open), 5 gives EAR 0.10 (closed).
const (
	openEye   = 15
	closedEye = 5
)

func livenessForTest(meshes []meshResult) *LivenessService {
	return NewLivenessService(&fakeMeshDetector{meshes: meshes}, LivenessConfig{
		BlinkEARThreshold: 0.20,
		HeadTurnExcursion: 25,
	})
}

func framesFor(t *testing.T, n int) [][]byte {
	frame := encodeTestFrame(t)
	frames := make([][]byte, n)
	for i := range frames {
		frames[i] = frame
	}
	return frames
}

func TestVerifyActionBlink(t *testing.T) {
	tests := []struct {
		name   string
		meshes []meshResult
		want   bool
	}{
		{
			name: "closed frame between open frames detects blink",
			meshes: []meshResult{
				{mesh: testMesh(openEye, 200)},
				{mesh: testMesh(closedEye, 200)},
				{mesh: testMesh(openEye, 200)},
			},
			want: true,
		},
		{
			name: "eyes open throughout never blinks",
			meshes: []meshResult{
				{mesh: testMesh(openEye, 200)},
				{mesh: testMesh(openEye, 200)},
				{mesh: testMesh(openEye, 200)},
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := livenessForTest(tt.meshes)
			result, err := service.VerifyAction(framesFor(t, len(tt.meshes)), "blink")
			if err != nil {
				t.Fatalf("VerifyAction() error = %v", err)
			}
			if result.Success != tt.want {
				t.Errorf("VerifyAction(blink) success = %v, want %v", result.Success, tt.want)
			}
		})
	}
}

func TestVerifyActionHeadTurn(t *testing.T) {
	tests := []struct {
		name      string
		noseTrack []int
		action    string
		want      bool
	}{
		{
			name:      "nose moving left with enough excursion",
			noseTrack: []int{200, 180, 150},
			action:    "left",
			want:      true,
		},
		{
			name:      "leftward track does not satisfy right",
			noseTrack: []int{200, 180, 150},
			action:    "right",
			want:      false,
		},
		{
			name:      "nose moving right with enough excursion",
			noseTrack: []int{150, 180, 200},
			action:    "right",
			want:      true,
		},
		{
			name:      "excursion on the threshold is not a turn",
			noseTrack: []int{200, 190, 175},
			action:    "left",
			want:      false,
		},
		{
			name:      "single usable frame cannot show a turn",
			noseTrack: []int{200},
			action:    "left",
			want:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meshes := make([]meshResult, len(tt.noseTrack))
			for i, x := range tt.noseTrack {
				meshes[i] = meshResult{mesh: testMesh(openEye, x)}
			}
			service := livenessForTest(meshes)
			result, err := service.VerifyAction(framesFor(t, len(meshes)), tt.action)
			if err != nil {
				t.Fatalf("VerifyAction() error = %v", err)
			}
			if result.Success != tt.want {
				t.Errorf("VerifyAction(%s) success = %v, want %v", tt.action, result.Success, tt.want)
			}
		})
	}
}

func TestVerifyActionSkipsNoFaceFrames(t *testing.T) {
	meshes := []meshResult{
		{mesh: testMesh(openEye, 200)},
		{err: ErrNoFace},
		{mesh: testMesh(openEye, 150)},
	}
	service := livenessForTest(meshes)
	result, err := service.VerifyAction(framesFor(t, 3), "left")
	if err != nil {
		t.Fatalf("VerifyAction() error = %v", err)
	}
	if !result.Success {
		t.Error("VerifyAction(left) success = false, want true with the no-face frame skipped")
	}
}

func TestVerifyActionEmptyBatch(t *testing.T) {
	service := livenessForTest(nil)
	_, err := service.VerifyAction(nil, "blink")
	if !errors.Is(err, ErrEmptyFrameBatch) {
		t.Errorf("VerifyAction() error = %v, want ErrEmptyFrameBatch", err)
	}
}
