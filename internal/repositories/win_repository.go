package repositories

import (
	"github.com/rfoley/quizbot/internal/models"
	"github.com/rfoley/quizbot/pkg/errors"
	"gorm.io/gorm"
)

type WinRepository struct {
	db *gorm.DB
}

func NewWinRepository(db *gorm.DB) *WinRepository {
	return &WinRepository{db: db}
}

// RecordWin increments a participant's win count, creating the row on
// their first win, and returns the updated count.
func (r *WinRepository) RecordWin(nick string) (int, error) {
	var win models.QuizWin
	result := r.db.Where("nick = ?", nick).First(&win)

	if result.Error == gorm.ErrRecordNotFound {
		win = models.QuizWin{Nick: nick, Count: 1}
		if err := r.db.Create(&win).Error; err != nil {
			return 0, errors.Wrap(err, errors.ErrCodePersistence, "failed to create win record")
		}
		return win.Count, nil
	}
	if result.Error != nil {
		return 0, errors.Wrap(result.Error, errors.ErrCodePersistence, "failed to load win record")
	}

	win.Count++
	if err := r.db.Save(&win).Error; err != nil {
		return 0, errors.Wrap(err, errors.ErrCodePersistence, "failed to update win record")
	}
	return win.Count, nil
}

// WinCount returns a participant's lifetime win count, zero if they
// never won.
func (r *WinRepository) WinCount(nick string) (int, error) {
	var win models.QuizWin
	result := r.db.Where("nick = ?", nick).First(&win)

	if result.Error == gorm.ErrRecordNotFound {
		return 0, nil
	}
	if result.Error != nil {
		return 0, errors.Wrap(result.Error, errors.ErrCodePersistence, "failed to load win record")
	}
	return win.Count, nil
}

// AllWins returns every recorded winner, most wins first.
func (r *WinRepository) AllWins() ([]models.QuizWin, error) {
	var wins []models.QuizWin
	if err := r.db.Order("count DESC").Find(&wins).Error; err != nil {
		return nil, errors.Wrap(err, errors.ErrCodePersistence, "failed to list wins")
	}
	return wins, nil
}

// ClearWins wipes the whole win table. Used by the admin script.
func (r *WinRepository) ClearWins() (int64, error) {
	result := r.db.Where("1 = 1").Delete(&models.QuizWin{})
	if result.Error != nil {
		return 0, errors.Wrap(result.Error, errors.ErrCodePersistence, "failed to clear wins")
	}
	return result.RowsAffected, nil
}
