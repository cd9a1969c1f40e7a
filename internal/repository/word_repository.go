package repository

import (
	"fmt"

	"thsl-backend-go/internal/model"

	"gorm.io/gorm"
)

// WordRepository is the interface for the word→pose-file lookup store
type WordRepository interface {
	FindByWord(word string) ([]*model.Word, error)
	Create(word *model.Word) error
	Delete(id uint) error
	List(page, pageSize int) ([]*model.Word, int64, error)
}

// wordRepository is the gorm implementation of WordRepository
type wordRepository struct {
	db *gorm.DB
}

// NewWordRepository creates a new WordRepository instance
func NewWordRepository(db *gorm.DB) WordRepository {
	return &wordRepository{
		db: db,
	}
}

// FindByWord returns every entry matching the given word exactly
func (r *wordRepository) FindByWord(word string) ([]*model.Word, error) {
	var words []*model.Word
	err := r.db.Where("word = ?", word).Find(&words).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find word %q: %w", word, err)
	}
	return words, nil
}

// Create stores a new word entry
func (r *wordRepository) Create(word *model.Word) error {
	if err := r.db.Create(word).Error; err != nil {
		return fmt.Errorf("failed to create word: %w", err)
	}
	return nil
}

// Delete removes a word entry by ID
func (r *wordRepository) Delete(id uint) error {
	result := r.db.Delete(&model.Word{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete word: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("word with id %d: %w", id, gorm.ErrRecordNotFound)
	}
	return nil
}

// List returns word entries with pagination
func (r *wordRepository) List(page, pageSize int) ([]*model.Word, int64, error) {
	var words []*model.Word
	var total int64

	if err := r.db.Model(&model.Word{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count words: %w", err)
	}

	offset := (page - 1) * pageSize
	err := r.db.Offset(offset).
		Limit(pageSize).
		Order("word ASC").
		Find(&words).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list words: %w", err)
	}

	return words, total, nil
}
