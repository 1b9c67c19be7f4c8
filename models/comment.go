package models

import "gorm.io/gorm"

// Comment forms a tree per article through ParentID. A parent always
// belongs to the same article as its children; deleting a comment takes
// its whole subtree with it.
type Comment struct {
	gorm.Model
	Body      string `gorm:"size:200"`
	ArticleID uint   `gorm:"index"`
	Article   Article
	AuthorID  uint `gorm:"index"`
	Author    User
	ParentID  *uint `gorm:"index"`
}

func (Comment) TableName() string { return "comments" }
