package service

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"thsl-backend-go/internal/client"
	"thsl-backend-go/internal/concat"
	"thsl-backend-go/internal/layout"
	"thsl-backend-go/internal/pose"
	"thsl-backend-go/internal/storage"
	"thsl-backend-go/pkg/models"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// exportBaseWidth is the canvas width the renderer rasterizes against; the
// concatenated sequence is scaled back down to it before export
const exportBaseWidth = 256

// SentenceService turns an ordered word list into one signed-sentence video
type SentenceService struct {
	words        *WordService
	poseFiles    *storage.Resolver
	output       *storage.Resolver
	scanner      *layout.Scanner
	concatenator *concat.Concatenator
	renderer     *client.RendererClient
	logger       *logrus.Logger
	landmarks    int
	defaultFPS   int
}

// NewSentenceService creates a new sentence synthesis service
func NewSentenceService(
	words *WordService,
	poseFiles *storage.Resolver,
	output *storage.Resolver,
	scanner *layout.Scanner,
	concatenator *concat.Concatenator,
	renderer *client.RendererClient,
	landmarks int,
	defaultFPS int,
	logger *logrus.Logger,
) *SentenceService {
	return &SentenceService{
		words:        words,
		poseFiles:    poseFiles,
		output:       output,
		scanner:      scanner,
		concatenator: concatenator,
		renderer:     renderer,
		logger:       logger,
		landmarks:    landmarks,
		defaultFPS:   defaultFPS,
	}
}

// Synthesize resolves every word to a clip, concatenates the clips in input
// order and writes the rendered video under the output directory. Any
// failure aborts the whole request; no partial output is written.
func (s *SentenceService) Synthesize(ctx context.Context, req models.SentenceRequest) (*models.SentenceResponse, error) {
	if len(req.Words) == 0 {
		return nil, concat.ErrEmptyInput
	}

	s.logger.Infof("Synthesizing sentence from %d words", len(req.Words))
	startTime := time.Now()

	// 1. resolve and decode every clip, strictly in input order
	clips := make([]*pose.Pose, 0, len(req.Words))
	for _, word := range req.Words {
		clip, err := s.loadClip(word)
		if err != nil {
			return nil, fmt.Errorf("loading clip for word %q: %w", word, err)
		}
		clips = append(clips, clip)
	}

	// 2. trim and join
	sentence, err := s.concatenator.Concatenate(ctx, clips)
	if err != nil {
		return nil, fmt.Errorf("concatenating clips: %w", err)
	}

	// 3. scale back to the renderer's canvas
	if scale := float32(sentence.Header.Dimensions.Width) / exportBaseWidth; scale != 0 {
		sentence.Scale(1 / scale)
		sentence.Header.Dimensions.Width = int(float32(sentence.Header.Dimensions.Width) / scale)
		sentence.Header.Dimensions.Height = int(float32(sentence.Header.Dimensions.Height) / scale)
	}

	fps := req.FPS
	if fps <= 0 {
		fps = s.defaultFPS
	}

	// 4. render and persist the artifact
	videoName, err := s.outputName(req.OutputName)
	if err != nil {
		return nil, err
	}

	video, err := s.renderer.Render(ctx, sentence, fps)
	if err != nil {
		return nil, fmt.Errorf("rendering sentence: %w", err)
	}

	path, err := s.output.Write(videoName, video)
	if err != nil {
		return nil, fmt.Errorf("writing video artifact: %w", err)
	}

	s.logger.Infof("Sentence video written to %s (%d frames, took %v)",
		path, sentence.Len(), time.Since(startTime))

	return &models.SentenceResponse{
		Status:     "success",
		VideoName:  videoName,
		VideoURL:   "/static/" + videoName,
		FrameCount: sentence.Len(),
		Words:      len(req.Words),
	}, nil
}

// loadClip resolves a word to its pose file, recovers the file's byte
// layout and decodes it into a sequence
func (s *SentenceService) loadClip(word string) (*pose.Pose, error) {
	filename, err := s.words.ResolveFilename(word)
	if err != nil {
		return nil, err
	}

	info, err := s.poseFiles.Stat(filename)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", filename, err)
	}

	lay, err := s.scanner.FileLayout(filename, info.Size(), info.ModTime(), s.landmarks)
	if err != nil {
		return nil, fmt.Errorf("scanning layout of %s: %w", filename, err)
	}

	data, err := s.poseFiles.Read(filename)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", filename, err)
	}

	clip, err := pose.Decode(data, lay)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", filename, err)
	}

	s.logger.Debugf("Decoded %s: %d frames at offset %d", filename, clip.Len(), lay.Offset)
	return clip, nil
}

// outputName validates a requested artifact name or generates a fresh one
func (s *SentenceService) outputName(requested string) (string, error) {
	if requested == "" {
		return uuid.New().String() + ".mp4", nil
	}
	if filepath.Ext(requested) == "" {
		requested += ".mp4"
	}
	if _, err := s.output.Resolve(requested); err != nil {
		return "", err
	}
	return requested, nil
}
