package models

import "time"

// Reaction records a reader's like/dislike on an article. One row per
// (reader, article) pair; Likes flips between the two states. These rows
// are the single source of truth for the article's like/dislike member
// lists, which are computed views and never written separately.
// Hard-deleted on removal so the pair index stays free for a new reaction.
type Reaction struct {
	ID        uint `gorm:"primaryKey"`
	ReaderID  uint `gorm:"uniqueIndex:idx_reader_article_reaction"`
	ArticleID uint `gorm:"uniqueIndex:idx_reader_article_reaction"`
	Likes     bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Reaction) TableName() string { return "reactions" }
