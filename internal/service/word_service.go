package service

import (
	"errors"
	"fmt"
	"strings"

	"thsl-backend-go/internal/model"
	"thsl-backend-go/internal/repository"
	"thsl-backend-go/internal/storage"
	"thsl-backend-go/pkg/models"

	"github.com/sirupsen/logrus"
)

// ErrWordNotFound means a word exists in neither the database nor on disk
var ErrWordNotFound = errors.New("word not found")

// ErrInvalidWordEntry means a vocabulary entry fails validation
var ErrInvalidWordEntry = errors.New("invalid word entry")

// Lookup sources reported to the caller
const (
	SourceDatabase     = "database"
	SourceDiskFallback = "disk_fallback"
)

// WordService resolves vocabulary words to pose clip files
type WordService struct {
	wordRepo  repository.WordRepository
	poseFiles *storage.Resolver
	logger    *logrus.Logger
}

// NewWordService creates a new word lookup service
func NewWordService(wordRepo repository.WordRepository, poseFiles *storage.Resolver, logger *logrus.Logger) *WordService {
	return &WordService{
		wordRepo:  wordRepo,
		poseFiles: poseFiles,
		logger:    logger,
	}
}

// Resolve looks a word up in the database, falling back to a file named
// "{word}.pose" on disk when the database has no entry
func (s *WordService) Resolve(word string) (*models.ResolveResponse, error) {
	word = strings.TrimSpace(word)
	if word == "" {
		return nil, fmt.Errorf("word cannot be empty")
	}

	rows, err := s.wordRepo.FindByWord(word)
	if err != nil {
		// a broken lookup store must not take the whole service down
		s.logger.Errorf("Database lookup failed for %q: %v", word, err)
		rows = nil
	}

	if len(rows) > 0 {
		files := make([]models.ResolvedFile, 0, len(rows))
		for _, row := range rows {
			filename := strings.TrimSpace(row.PoseFilename)
			if filename == "" {
				continue
			}
			files = append(files, models.ResolvedFile{
				Word:             row.Word,
				Category:         row.Category,
				PoseFilename:     filename,
				FileExistsOnDisk: s.poseFiles.Exists(filename),
				URL:              "/api/pose?name=" + filename,
			})
		}
		if len(files) > 0 {
			return &models.ResolveResponse{
				Found:  true,
				Source: SourceDatabase,
				Files:  files,
			}, nil
		}
	}

	directFilename := word + ".pose"
	if s.poseFiles.Exists(directFilename) {
		return &models.ResolveResponse{
			Found:  true,
			Source: SourceDiskFallback,
			Files: []models.ResolvedFile{{
				Word:             word,
				PoseFilename:     directFilename,
				FileExistsOnDisk: true,
				URL:              "/api/pose?name=" + directFilename,
			}},
		}, nil
	}

	return &models.ResolveResponse{
		Found:   false,
		Message: "Word not found in DB or Disk",
		Files:   []models.ResolvedFile{},
	}, nil
}

// ResolveFilename returns the pose file name for a word, preferring the
// first database entry
func (s *WordService) ResolveFilename(word string) (string, error) {
	resp, err := s.Resolve(word)
	if err != nil {
		return "", err
	}
	if !resp.Found || len(resp.Files) == 0 {
		return "", fmt.Errorf("%w: %q", ErrWordNotFound, word)
	}
	return resp.Files[0].PoseFilename, nil
}

// WordListResponse is one page of the vocabulary table
type WordListResponse struct {
	Words []*model.Word `json:"words"`
	Total int64         `json:"total"`
	Page  int           `json:"page"`
	Size  int           `json:"size"`
}

// Create stores a new vocabulary entry after validating the file name
// against the pose directory
func (s *WordService) Create(req models.WordRequest) (*model.Word, error) {
	word := strings.TrimSpace(req.Word)
	filename := strings.TrimSpace(req.PoseFilename)
	if word == "" {
		return nil, fmt.Errorf("%w: word cannot be empty", ErrInvalidWordEntry)
	}
	if filename == "" {
		return nil, fmt.Errorf("%w: pose_filename cannot be empty", ErrInvalidWordEntry)
	}
	if _, err := s.poseFiles.Resolve(filename); err != nil {
		return nil, err
	}

	entry := &model.Word{
		Word:         word,
		Category:     strings.TrimSpace(req.Category),
		PoseFilename: filename,
	}
	if err := s.wordRepo.Create(entry); err != nil {
		return nil, err
	}

	s.logger.Infof("Created vocabulary entry %d for %q -> %s", entry.ID, word, filename)
	return entry, nil
}

// Delete removes a vocabulary entry by ID
func (s *WordService) Delete(id uint) error {
	if err := s.wordRepo.Delete(id); err != nil {
		return err
	}
	s.logger.Infof("Deleted vocabulary entry %d", id)
	return nil
}

// List returns one page of the vocabulary table
func (s *WordService) List(page, size int) (*WordListResponse, error) {
	words, total, err := s.wordRepo.List(page, size)
	if err != nil {
		return nil, err
	}
	return &WordListResponse{
		Words: words,
		Total: total,
		Page:  page,
		Size:  size,
	}, nil
}
