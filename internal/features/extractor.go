package features

import (
	"errors"
	"fmt"

	"thsl-backend-go/internal/pose"
)

// ErrMissingLandmark means a point required for feature extraction is absent
// from the sequence's landmark set, typically after an upstream reduction
// removed it
var ErrMissingLandmark = errors.New("missing landmark")

// landmark names a tracked point inside a component
type landmark struct {
	component string
	point     string
}

// featureLandmarks is the fixed extraction order: elbows and wrists first,
// then per hand (left, right) the thumb CMC/MCP and the four joints of each
// remaining finger
var featureLandmarks = buildFeatureLandmarks()

// VectorLen is the full feature vector length (x, y, z per point)
var VectorLen = len(featureLandmarks) * 3

// VectorLenXY is the 2D sub-selection length consumed by the trained classifier
var VectorLenXY = len(featureLandmarks) * 2

func buildFeatureLandmarks() []landmark {
	out := []landmark{
		{pose.BodyComponent, "LEFT_ELBOW"},
		{pose.BodyComponent, "RIGHT_ELBOW"},
		{pose.BodyComponent, "LEFT_WRIST"},
		{pose.BodyComponent, "RIGHT_WRIST"},
	}

	fingerJoints := []string{"MCP", "PIP", "DIP", "TIP"}
	for _, hand := range []string{pose.LeftHandComponent, pose.RightHandComponent} {
		out = append(out,
			landmark{hand, "THUMB_CMC"},
			landmark{hand, "THUMB_MCP"},
		)
		for _, finger := range []string{"INDEX_FINGER", "MIDDLE_FINGER", "RING_FINGER", "PINKY"} {
			for _, joint := range fingerJoints {
				out = append(out, landmark{hand, finger + "_" + joint})
			}
		}
	}
	return out
}

// Extractor derives per-frame feature vectors for a fixed landmark layout
type Extractor struct {
	indexes []int
}

// NewExtractor resolves the feature landmark set against a sequence header
func NewExtractor(h pose.Header) (*Extractor, error) {
	indexes := make([]int, len(featureLandmarks))
	for i, lm := range featureLandmarks {
		idx, ok := h.PointIndex(lm.component, lm.point)
		if !ok {
			return nil, fmt.Errorf("%w: %s/%s", ErrMissingLandmark, lm.component, lm.point)
		}
		indexes[i] = idx
	}
	return &Extractor{indexes: indexes}, nil
}

// Frame returns the full feature vector for one frame: x, y, z per point in
// the fixed extraction order
func (e *Extractor) Frame(f pose.Frame) []float32 {
	out := make([]float32, 0, len(e.indexes)*3)
	for _, idx := range e.indexes {
		pt := f.Points[idx]
		out = append(out, pt.X, pt.Y, pt.Z)
	}
	return out
}

// FrameXY returns the 2D sub-selection of the feature vector: the x, y pair
// per point, which is the shape the trained classifier expects
func (e *Extractor) FrameXY(f pose.Frame) []float32 {
	out := make([]float32, 0, len(e.indexes)*2)
	for _, idx := range e.indexes {
		pt := f.Points[idx]
		out = append(out, pt.X, pt.Y)
	}
	return out
}

// SequenceXY returns one classifier-ready vector per frame of the sequence
func (e *Extractor) SequenceXY(p *pose.Pose) [][]float32 {
	out := make([][]float32, len(p.Frames))
	for i, f := range p.Frames {
		out[i] = e.FrameXY(f)
	}
	return out
}

// Sequence returns one full feature vector per frame of the sequence
func (e *Extractor) Sequence(p *pose.Pose) [][]float32 {
	out := make([][]float32, len(p.Frames))
	for i, f := range p.Frames {
		out[i] = e.Frame(f)
	}
	return out
}
