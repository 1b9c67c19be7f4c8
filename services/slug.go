package services

import (
	"fmt"
	"strings"

	"authorsheaven/models"

	"gorm.io/gorm"
)

// Slugify lowercases a title and collapses every run of non-alphanumeric
// characters into a single hyphen.
func Slugify(title string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// UniqueSlug derives a slug for a new article, appending -1, -2, ... while
// the candidate is already taken. The check-then-insert is not atomic, so
// callers still retry on a uniqueness violation at save time.
func UniqueSlug(db *gorm.DB, title string) string {
	base := Slugify(title)
	if base == "" {
		base = "article"
	}
	candidate := base
	for n := 1; ; n++ {
		var count int64
		db.Model(&models.Article{}).Where("slug = ?", candidate).Count(&count)
		if count == 0 {
			return candidate
		}
		candidate = fmt.Sprintf("%s-%d", base, n)
	}
}
