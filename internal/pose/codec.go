package pose

import (
	"encoding/binary"
	"fmt"
	"math"

	"thsl-backend-go/internal/layout"
)

// Decode slices a raw byte buffer into frames using a recovered layout.
// Frames are stored back to back as landmarks x (x, y, z, confidence)
// little-endian float32 values, past a header of lay.Offset bytes.
func Decode(buf []byte, lay layout.RawFileLayout) (*Pose, error) {
	need := lay.Offset + lay.FrameCount*lay.FrameBytes
	if len(buf) < need {
		return nil, fmt.Errorf("buffer too short: have %d bytes, layout needs %d", len(buf), need)
	}

	header := HeaderForLandmarks(lay.Landmarks)
	p := &Pose{
		Header: header,
		Frames: make([]Frame, lay.FrameCount),
	}

	pos := lay.Offset
	for i := 0; i < lay.FrameCount; i++ {
		frame := Frame{
			Points:     make([]Point, lay.Landmarks),
			Confidence: make([]float32, lay.Landmarks),
		}
		for j := 0; j < lay.Landmarks; j++ {
			frame.Points[j] = Point{
				X: readFloat32(buf, pos),
				Y: readFloat32(buf, pos+4),
				Z: readFloat32(buf, pos+8),
			}
			frame.Confidence[j] = readFloat32(buf, pos+12)
			pos += 16
		}
		p.Frames[i] = frame
	}

	return p, nil
}

// EncodeFrames serializes the frame data back into the raw wire layout,
// without any header bytes
func EncodeFrames(p *Pose) []byte {
	points := p.Header.PointCount()
	out := make([]byte, 0, len(p.Frames)*points*16)
	var scratch [4]byte

	put := func(v float32) {
		binary.LittleEndian.PutUint32(scratch[:], math.Float32bits(v))
		out = append(out, scratch[:]...)
	}

	for _, f := range p.Frames {
		for j := range f.Points {
			put(f.Points[j].X)
			put(f.Points[j].Y)
			put(f.Points[j].Z)
			put(f.Confidence[j])
		}
	}
	return out
}

func readFloat32(buf []byte, pos int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(buf[pos : pos+4]))
}
