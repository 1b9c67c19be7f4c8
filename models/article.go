package models

import "gorm.io/gorm"

// Article is the central engagement entity. The slug is assigned once at
// creation time and never regenerated, even when the title changes.
type Article struct {
	gorm.Model
	Slug        string `gorm:"uniqueIndex;size:128"`
	Title       string `gorm:"size:128"`
	Description string `gorm:"size:250"`
	Body        string `gorm:"type:text"`
	ImageURL    string `gorm:"size:255"`
	AuthorID    uint   `gorm:"index"`
	Author      User
	Tags        []Tag `gorm:"many2many:article_tags;"`
}

func (Article) TableName() string { return "articles" }

// Tag labels are shared across articles, many-to-many.
type Tag struct {
	ID    uint   `gorm:"primaryKey"`
	Label string `gorm:"uniqueIndex;size:120"`
}

func (Tag) TableName() string { return "tags" }
