package pose

import (
	"fmt"
	"math"
	"sort"
)

// DefaultJoinGap is the number of generated transition frames inserted
// between two joined clips
const DefaultJoinGap = 6

// ReduceHolistic drops the face component, keeping body and hand points.
// Sequences without a face component are returned unchanged.
func ReduceHolistic(p *Pose) *Pose {
	if _, ok := p.Header.Component(FaceComponent); !ok {
		return p
	}

	keep := make([]Component, 0, len(p.Header.Components)-1)
	type span struct{ start, length int }
	var spans []span

	base := 0
	for _, c := range p.Header.Components {
		if c.Name != FaceComponent {
			keep = append(keep, c)
			spans = append(spans, span{base, len(c.Points)})
		}
		base += len(c.Points)
	}

	out := &Pose{
		Header: Header{Dimensions: p.Header.Dimensions, FPS: p.Header.FPS, Components: keep},
		Frames: make([]Frame, len(p.Frames)),
	}
	total := out.Header.PointCount()

	for i, f := range p.Frames {
		nf := Frame{
			Points:     make([]Point, 0, total),
			Confidence: make([]float32, 0, total),
		}
		for _, sp := range spans {
			nf.Points = append(nf.Points, f.Points[sp.start:sp.start+sp.length]...)
			nf.Confidence = append(nf.Confidence, f.Confidence[sp.start:sp.start+sp.length]...)
		}
		out.Frames[i] = nf
	}
	return out
}

// Normalize centers the sequence on the mid-shoulder point and scales it so
// the mean shoulder width becomes 1. Sequences without detectable shoulders
// are left unchanged.
func Normalize(p *Pose) *Pose {
	left, lok := p.Header.PointIndex(BodyComponent, "LEFT_SHOULDER")
	right, rok := p.Header.PointIndex(BodyComponent, "RIGHT_SHOULDER")
	if !lok || !rok {
		return p
	}

	var midX, midY, midZ, width float64
	count := 0
	for _, f := range p.Frames {
		if f.Confidence[left] <= 0 || f.Confidence[right] <= 0 {
			continue
		}
		l, r := f.Points[left], f.Points[right]
		midX += float64(l.X+r.X) / 2
		midY += float64(l.Y+r.Y) / 2
		midZ += float64(l.Z+r.Z) / 2
		dx := float64(l.X - r.X)
		dy := float64(l.Y - r.Y)
		width += math.Sqrt(dx*dx + dy*dy)
		count++
	}
	if count == 0 || width == 0 {
		return p
	}

	midX /= float64(count)
	midY /= float64(count)
	midZ /= float64(count)
	scale := float32(float64(count) / width)
	cx, cy, cz := float32(midX), float32(midY), float32(midZ)

	for i := range p.Frames {
		for j := range p.Frames[i].Points {
			pt := &p.Frames[i].Points[j]
			pt.X = (pt.X - cx) * scale
			pt.Y = (pt.Y - cy) * scale
			pt.Z = (pt.Z - cz) * scale
		}
	}
	return p
}

// SmoothJoin concatenates clips into one sequence, generating gap
// interpolated frames at every boundary instead of a hard cut
func SmoothJoin(clips []*Pose, gap int) (*Pose, error) {
	if len(clips) == 0 {
		return nil, fmt.Errorf("no clips to join")
	}
	if gap < 0 {
		gap = 0
	}

	points := clips[0].Header.PointCount()
	for i, c := range clips[1:] {
		if c.Header.PointCount() != points {
			return nil, fmt.Errorf("clip %d has %d points, expected %d", i+1, c.Header.PointCount(), points)
		}
	}

	out := &Pose{Header: clips[0].Header}
	out.Frames = append(out.Frames, clips[0].Frames...)

	for _, c := range clips[1:] {
		if len(c.Frames) == 0 {
			continue
		}
		if n := len(out.Frames); n > 0 {
			from := out.Frames[n-1]
			to := c.Frames[0]
			for k := 1; k <= gap; k++ {
				t := float32(k) / float32(gap+1)
				out.Frames = append(out.Frames, lerpFrame(from, to, t))
			}
		}
		out.Frames = append(out.Frames, c.Frames...)
	}
	return out, nil
}

// CorrectWrists translates each detected hand so its wrist coincides with
// the corresponding body wrist. Runs after joining; running it before would
// be undone by the transition blend.
func CorrectWrists(p *Pose) *Pose {
	pairs := []struct {
		hand      string
		bodyWrist string
	}{
		{LeftHandComponent, "LEFT_WRIST"},
		{RightHandComponent, "RIGHT_WRIST"},
	}

	for _, pair := range pairs {
		start, length, ok := p.Header.componentOffset(pair.hand)
		if !ok {
			continue
		}
		handWrist, ok := p.Header.PointIndex(pair.hand, "WRIST")
		if !ok {
			continue
		}
		bodyWrist, ok := p.Header.PointIndex(BodyComponent, pair.bodyWrist)
		if !ok {
			continue
		}

		for i := range p.Frames {
			f := &p.Frames[i]
			if f.Confidence[handWrist] <= 0 || f.Confidence[bodyWrist] <= 0 {
				continue
			}
			dx := f.Points[bodyWrist].X - f.Points[handWrist].X
			dy := f.Points[bodyWrist].Y - f.Points[handWrist].Y
			dz := f.Points[bodyWrist].Z - f.Points[handWrist].Z
			for j := start; j < start+length; j++ {
				f.Points[j].X += dx
				f.Points[j].Y += dy
				f.Points[j].Z += dz
			}
		}
	}
	return p
}

// TrimByConfidence removes leading/trailing frames where no hand is
// detected, locating the boundaries by binary search over cumulative
// detection counts
func TrimByConfidence(p *Pose, trimStart, trimEnd bool) *Pose {
	n := len(p.Frames)
	if n == 0 {
		return p
	}

	active := make([]int, n)
	for i, f := range p.Frames {
		if frameHasHands(p.Header, f) {
			active[i] = 1
		}
	}

	// prefix[i] counts active frames before index i; monotone, so the
	// boundaries fall out of binary search
	prefix := make([]int, n+1)
	for i := 0; i < n; i++ {
		prefix[i+1] = prefix[i] + active[i]
	}
	total := prefix[n]
	if total == 0 {
		return p
	}

	start := 0
	end := n
	if trimStart {
		start = sort.Search(n, func(i int) bool { return prefix[i+1] > 0 })
	}
	if trimEnd {
		last := sort.Search(n, func(i int) bool { return prefix[i+1] == total })
		end = last + 1
	}

	p.SliceFrames(start, end)
	return p
}

func frameHasHands(h Header, f Frame) bool {
	checked := false
	for _, name := range []string{LeftHandComponent, RightHandComponent} {
		start, length, ok := h.componentOffset(name)
		if !ok {
			continue
		}
		checked = true
		for j := start; j < start+length; j++ {
			if f.Confidence[j] > 0 {
				return true
			}
		}
	}
	if checked {
		return false
	}
	// no hand components: fall back to any detected point
	for _, c := range f.Confidence {
		if c > 0 {
			return true
		}
	}
	return false
}

func lerpFrame(a, b Frame, t float32) Frame {
	out := Frame{
		Points:     make([]Point, len(a.Points)),
		Confidence: make([]float32, len(a.Confidence)),
	}
	for j := range a.Points {
		out.Points[j] = Point{
			X: a.Points[j].X + (b.Points[j].X-a.Points[j].X)*t,
			Y: a.Points[j].Y + (b.Points[j].Y-a.Points[j].Y)*t,
			Z: a.Points[j].Z + (b.Points[j].Z-a.Points[j].Z)*t,
		}
		out.Confidence[j] = a.Confidence[j] + (b.Confidence[j]-a.Confidence[j])*t
	}
	return out
}
