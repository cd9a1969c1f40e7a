package concat

import (
	"context"
	"errors"
	"fmt"

	"thsl-backend-go/internal/features"
	"thsl-backend-go/internal/pose"
	"thsl-backend-go/internal/trim"

	"github.com/sirupsen/logrus"
)

// ErrEmptyInput means concatenation was requested with zero clips
var ErrEmptyInput = errors.New("empty clip list")

// Fixed output space: coordinates are shifted then widened, and the declared
// canvas follows from both constants
const (
	outputShift = 1.25
	outputWidth = 500
)

// Classifier is the external signing/waiting model, a pure batched function
// from feature vectors to probabilities in [0, 1]
type Classifier interface {
	Predict(ctx context.Context, instances [][]float32) ([]float64, error)
}

// Concatenator joins per-word clips into one continuous signed sentence
type Concatenator struct {
	classifier   Classifier
	logger       *logrus.Logger
	framePadding int
	joinGap      int
}

// NewConcatenator creates a concatenator using the given classifier
func NewConcatenator(classifier Classifier, framePadding int, logger *logrus.Logger) *Concatenator {
	if framePadding < 0 {
		framePadding = trim.DefaultFramePadding
	}
	return &Concatenator{
		classifier:   classifier,
		logger:       logger,
		framePadding: framePadding,
		joinGap:      pose.DefaultJoinGap,
	}
}

// Concatenate runs the full pipeline over an ordered clip list:
// reduce, normalize, trim, join, correct wrists, rescale. Stages are
// strictly sequential; any failure aborts the whole request and no partial
// output is returned. Input clips are mutated and must not be reused.
func (c *Concatenator) Concatenate(ctx context.Context, clips []*pose.Pose) (*pose.Pose, error) {
	if len(clips) == 0 {
		return nil, ErrEmptyInput
	}

	c.logger.Infof("Concatenating %d clips", len(clips))

	// 1. reduce + normalize every clip independently
	for i := range clips {
		clips[i] = pose.Normalize(pose.ReduceHolistic(clips[i]))
	}
	c.logger.Debug("Clips reduced and normalized")

	// 2. trim waiting frames; the first clip keeps its true start and the
	// last keeps its true end
	for i := range clips {
		trimStart := i > 0
		trimEnd := i < len(clips)-1
		trimmed, err := c.trimClip(ctx, clips[i], trimStart, trimEnd)
		if err != nil {
			return nil, fmt.Errorf("trimming clip %d: %w", i, err)
		}
		clips[i] = trimmed
	}

	// 3. join with interpolated transitions
	joined, err := pose.SmoothJoin(clips, c.joinGap)
	if err != nil {
		return nil, fmt.Errorf("joining clips: %w", err)
	}
	c.logger.Infof("Joined sequence has %d frames", joined.Len())

	// 4. wrist correction after the blend, so the blend cannot undo it
	joined = pose.CorrectWrists(joined)

	// 5. global affine rescale into the output space
	joined.Shift(outputShift)
	joined.Scale(outputWidth)
	side := int(outputWidth * outputShift * 2)
	joined.Header.Dimensions.Width = side
	joined.Header.Dimensions.Height = side

	return joined, nil
}

// trimClip classifies every frame of one clip and applies the resulting
// trim window
func (c *Concatenator) trimClip(ctx context.Context, clip *pose.Pose, trimStart, trimEnd bool) (*pose.Pose, error) {
	if clip.Len() <= 1 {
		return clip, nil
	}

	extractor, err := features.NewExtractor(clip.Header)
	if err != nil {
		return nil, err
	}

	probs, err := c.classifier.Predict(ctx, extractor.SequenceXY(clip))
	if err != nil {
		return nil, fmt.Errorf("classifier predict: %w", err)
	}
	if len(probs) != clip.Len() {
		return nil, fmt.Errorf("classifier returned %d probabilities for %d frames", len(probs), clip.Len())
	}

	labels := make([]int, len(probs))
	for i, p := range probs {
		if p >= 0.5 {
			labels[i] = 1
		}
	}

	window, outcome := trim.FindWindow(labels, trimStart, trimEnd, c.framePadding)
	switch outcome {
	case trim.OutcomeTrimmed:
		clip.SliceFrames(window.Start, window.End+1)
	case trim.OutcomeFallback:
		c.logger.Debug("Label trim removed almost nothing, falling back to confidence trim")
		clip = pose.TrimByConfidence(clip, trimStart, trimEnd)
	case trim.OutcomeUntrimmed:
		// keep the clip whole
	}
	return clip, nil
}
