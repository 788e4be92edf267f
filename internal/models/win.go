package models

import "time"

// QuizWin is one participant's lifetime quiz win count.
type QuizWin struct {
	ID        uint      `gorm:"primaryKey"`
	Nick      string    `gorm:"uniqueIndex;type:varchar(64);not null"`
	Count     int       `gorm:"default:0;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TableName specifies the table name
func (QuizWin) TableName() string {
	return "quiz_wins"
}
