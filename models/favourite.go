package models

import "time"

// Favourite is a user's bookmark of an article, at most one per pair.
// Hard-deleted on unfavourite so the pair can be favourited again.
type Favourite struct {
	ID        uint `gorm:"primaryKey"`
	UserID    uint `gorm:"uniqueIndex:idx_user_article_favourite"`
	ArticleID uint `gorm:"uniqueIndex:idx_user_article_favourite"`
	CreatedAt time.Time
}

func (Favourite) TableName() string { return "favourites" }
