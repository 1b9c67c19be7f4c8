package models

import "time"

// Rating holds one user's score for one article. The composite unique
// index makes repeat ratings an update, never a second row. Rows are
// deleted for real, not soft-deleted, so the index stays free for a
// later re-rating.
type Rating struct {
	ID        uint `gorm:"primaryKey"`
	UserID    uint `gorm:"uniqueIndex:idx_user_article_rating"`
	ArticleID uint `gorm:"uniqueIndex:idx_user_article_rating"`
	Value     float64
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Rating) TableName() string { return "ratings" }
