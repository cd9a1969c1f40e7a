package pose

import "strconv"

// Component names of the holistic landmark layout
const (
	BodyComponent      = "POSE_LANDMARKS"
	FaceComponent      = "FACE_LANDMARKS"
	LeftHandComponent  = "LEFT_HAND_LANDMARKS"
	RightHandComponent = "RIGHT_HAND_LANDMARKS"
)

// Point is a single tracked 3D coordinate
type Point struct {
	X float32
	Y float32
	Z float32
}

// Frame holds one coordinate and one confidence value per tracked point
type Frame struct {
	Points     []Point
	Confidence []float32
}

// Component is a named, ordered group of tracked points
type Component struct {
	Name   string
	Points []string
}

// Dimensions is the declared output coordinate space of a sequence
type Dimensions struct {
	Width  int
	Height int
}

// Header describes the landmark layout shared by every frame of a sequence
type Header struct {
	Dimensions Dimensions
	FPS        float64
	Components []Component
}

// Pose is an ordered sequence of frames over a fixed landmark layout
type Pose struct {
	Header Header
	Frames []Frame
}

// bodyPointNames are the 33 body landmarks in holistic order
var bodyPointNames = []string{
	"NOSE", "LEFT_EYE_INNER", "LEFT_EYE", "LEFT_EYE_OUTER",
	"RIGHT_EYE_INNER", "RIGHT_EYE", "RIGHT_EYE_OUTER",
	"LEFT_EAR", "RIGHT_EAR", "MOUTH_LEFT", "MOUTH_RIGHT",
	"LEFT_SHOULDER", "RIGHT_SHOULDER", "LEFT_ELBOW", "RIGHT_ELBOW",
	"LEFT_WRIST", "RIGHT_WRIST", "LEFT_PINKY", "RIGHT_PINKY",
	"LEFT_INDEX", "RIGHT_INDEX", "LEFT_THUMB", "RIGHT_THUMB",
	"LEFT_HIP", "RIGHT_HIP", "LEFT_KNEE", "RIGHT_KNEE",
	"LEFT_ANKLE", "RIGHT_ANKLE", "LEFT_HEEL", "RIGHT_HEEL",
	"LEFT_FOOT_INDEX", "RIGHT_FOOT_INDEX",
}

// handPointNames are the 21 per-hand landmarks in holistic order
var handPointNames = []string{
	"WRIST",
	"THUMB_CMC", "THUMB_MCP", "THUMB_IP", "THUMB_TIP",
	"INDEX_FINGER_MCP", "INDEX_FINGER_PIP", "INDEX_FINGER_DIP", "INDEX_FINGER_TIP",
	"MIDDLE_FINGER_MCP", "MIDDLE_FINGER_PIP", "MIDDLE_FINGER_DIP", "MIDDLE_FINGER_TIP",
	"RING_FINGER_MCP", "RING_FINGER_PIP", "RING_FINGER_DIP", "RING_FINGER_TIP",
	"PINKY_MCP", "PINKY_PIP", "PINKY_DIP", "PINKY_TIP",
}

const faceLandmarkCount = 468

// HolisticLandmarkCount is the full holistic point count (body + face + both hands)
const HolisticLandmarkCount = 33 + faceLandmarkCount + 21 + 21

// HolisticHeader builds the standard holistic landmark layout
func HolisticHeader() Header {
	faceNames := make([]string, faceLandmarkCount)
	for i := range faceNames {
		faceNames[i] = strconv.Itoa(i)
	}

	return Header{
		Components: []Component{
			{Name: BodyComponent, Points: bodyPointNames},
			{Name: FaceComponent, Points: faceNames},
			{Name: LeftHandComponent, Points: handPointNames},
			{Name: RightHandComponent, Points: handPointNames},
		},
	}
}

// HeaderForLandmarks builds a layout matching a recovered landmark count.
// The full holistic count gets named components, the body-only count gets
// just the body component, anything else gets a single generic component.
func HeaderForLandmarks(count int) Header {
	switch count {
	case HolisticLandmarkCount:
		return HolisticHeader()
	case len(bodyPointNames):
		return Header{Components: []Component{{Name: BodyComponent, Points: bodyPointNames}}}
	default:
		names := make([]string, count)
		for i := range names {
			names[i] = "POINT_" + strconv.Itoa(i)
		}
		return Header{Components: []Component{{Name: "LANDMARKS", Points: names}}}
	}
}

// PointCount returns the total number of tracked points per frame
func (h Header) PointCount() int {
	total := 0
	for _, c := range h.Components {
		total += len(c.Points)
	}
	return total
}

// Component returns the named component and whether it exists
func (h Header) Component(name string) (Component, bool) {
	for _, c := range h.Components {
		if c.Name == name {
			return c, true
		}
	}
	return Component{}, false
}

// PointIndex returns the global index of a named point within a named component
func (h Header) PointIndex(component, point string) (int, bool) {
	base := 0
	for _, c := range h.Components {
		if c.Name == component {
			for i, name := range c.Points {
				if name == point {
					return base + i, true
				}
			}
			return 0, false
		}
		base += len(c.Points)
	}
	return 0, false
}

// componentOffset returns the global index of the first point of a component
func (h Header) componentOffset(component string) (start, length int, ok bool) {
	base := 0
	for _, c := range h.Components {
		if c.Name == component {
			return base, len(c.Points), true
		}
		base += len(c.Points)
	}
	return 0, 0, false
}

// Len returns the number of frames in the sequence
func (p *Pose) Len() int {
	return len(p.Frames)
}

// Clone returns a deep copy of the sequence
func (p *Pose) Clone() *Pose {
	out := &Pose{Header: p.Header, Frames: make([]Frame, len(p.Frames))}
	out.Header.Components = make([]Component, len(p.Header.Components))
	copy(out.Header.Components, p.Header.Components)
	for i, f := range p.Frames {
		nf := Frame{
			Points:     make([]Point, len(f.Points)),
			Confidence: make([]float32, len(f.Confidence)),
		}
		copy(nf.Points, f.Points)
		copy(nf.Confidence, f.Confidence)
		out.Frames[i] = nf
	}
	return out
}

// SliceFrames retains the frame range [start, end) in place
func (p *Pose) SliceFrames(start, end int) {
	if start < 0 {
		start = 0
	}
	if end > len(p.Frames) {
		end = len(p.Frames)
	}
	if start >= end {
		return
	}
	p.Frames = p.Frames[start:end]
}

// Shift adds a constant to every coordinate of every frame
func (p *Pose) Shift(v float32) {
	for i := range p.Frames {
		for j := range p.Frames[i].Points {
			p.Frames[i].Points[j].X += v
			p.Frames[i].Points[j].Y += v
			p.Frames[i].Points[j].Z += v
		}
	}
}

// Scale multiplies every coordinate of every frame by a constant
func (p *Pose) Scale(f float32) {
	for i := range p.Frames {
		for j := range p.Frames[i].Points {
			p.Frames[i].Points[j].X *= f
			p.Frames[i].Points[j].Y *= f
			p.Frames[i].Points[j].Z *= f
		}
	}
}
