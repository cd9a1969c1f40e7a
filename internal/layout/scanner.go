package layout

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

// ErrLayoutNotFound means the scan exhausted every candidate without a valid layout
var ErrLayoutNotFound = errors.New("layout not found")

const (
	// headers have never been observed past this point
	maxHeaderScan = 200000
	// anything shorter cannot hold a plausible header plus frames
	minFileSize = 1024
	// a clip with fewer frames than this is noise, not a candidate
	minFrameCount = 10
	// maximum trailing pad observed in the format
	maxPad = 3

	// DefaultReferenceOffset is the header length observed across the known
	// capture pipeline's files. It is a dataset fit, not a format property,
	// and is overridable through configuration.
	DefaultReferenceOffset = 14652

	coordsPerPoint = 4
	bytesPerCoord  = 4
)

// RawFileLayout describes how to slice a raw byte buffer into frames
type RawFileLayout struct {
	Offset     int   `json:"offset"`
	FrameCount int   `json:"frames"`
	Landmarks  int   `json:"landmarks"`
	Pad        int   `json:"pad"`
	Size       int64 `json:"size"`
	FrameBytes int   `json:"frame_bytes"`
}

// Scanner recovers the byte layout of raw pose files from their size alone.
// Results for the most recent file are cached by identity (size + mtime);
// the cache deliberately holds a single entry so memory stays bounded.
type Scanner struct {
	referenceOffset int

	mu       sync.Mutex
	cacheKey string
	cached   RawFileLayout
}

// NewScanner creates a scanner preferring header offsets near referenceOffset
func NewScanner(referenceOffset int) *Scanner {
	if referenceOffset <= 0 {
		referenceOffset = DefaultReferenceOffset
	}
	return &Scanner{referenceOffset: referenceOffset}
}

// FrameBytes returns the frame stride for a landmark count
func FrameBytes(landmarks int) int {
	return landmarks * coordsPerPoint * bytesPerCoord
}

// Scan searches for the header offset and trailing pad that slice a file of
// the given size into whole frames. The outer loop runs over pad values so
// the search stops at the first pad that yields any candidate; among those
// candidates the offset closest to the reference wins, first found on ties.
func (s *Scanner) Scan(size int64, landmarks int) (RawFileLayout, error) {
	if landmarks <= 0 {
		return RawFileLayout{}, fmt.Errorf("%w: invalid landmark count %d", ErrLayoutNotFound, landmarks)
	}
	if size < minFileSize {
		return RawFileLayout{}, fmt.Errorf("%w: file too small (%d bytes)", ErrLayoutNotFound, size)
	}

	frameBytes := FrameBytes(landmarks)
	scanEnd := int64(maxHeaderScan)
	if size < scanEnd {
		scanEnd = size
	}

	found := false
	var best RawFileLayout
	bestScore := 0

	for pad := 0; pad <= maxPad; pad++ {
		for off := int64(0); off < scanEnd; off++ {
			remain := size - off - int64(pad)
			if remain <= 0 {
				break
			}
			if remain%int64(frameBytes) != 0 {
				continue
			}
			frames := int(remain / int64(frameBytes))
			if frames < minFrameCount {
				continue
			}

			score := int(off) - s.referenceOffset
			if score < 0 {
				score = -score
			}
			if !found || score < bestScore {
				found = true
				bestScore = score
				best = RawFileLayout{
					Offset:     int(off),
					FrameCount: frames,
					Landmarks:  landmarks,
					Pad:        pad,
					Size:       size,
					FrameBytes: frameBytes,
				}
			}
		}

		// the smallest pad with any valid candidate decides the layout
		if found {
			break
		}
	}

	if !found {
		return RawFileLayout{}, fmt.Errorf("%w: no offset/pad combination fits %d-byte frames", ErrLayoutNotFound, frameBytes)
	}
	return best, nil
}

// FileLayout scans a file identified by name, size and mtime, reusing the
// cached result when the identity matches the previous call
func (s *Scanner) FileLayout(name string, size int64, mtime time.Time, landmarks int) (RawFileLayout, error) {
	key := fmt.Sprintf("%s:%d:%d:%d", name, size, mtime.Unix(), landmarks)

	s.mu.Lock()
	if s.cacheKey == key {
		cached := s.cached
		s.mu.Unlock()
		return cached, nil
	}
	s.mu.Unlock()

	lay, err := s.Scan(size, landmarks)
	if err != nil {
		return RawFileLayout{}, err
	}

	s.mu.Lock()
	s.cacheKey = key
	s.cached = lay
	s.mu.Unlock()

	return lay, nil
}
