package controllers

import (
	"errors"
	"net/http"

	"authorsheaven/global"
	"authorsheaven/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const timeFormat = "January 02, 2006 at 15:04"

// currentUser returns the authenticated identity placed on the context by
// the auth middleware.
func currentUser(ctx *gin.Context) (uint, string, bool) {
	id, ok := ctx.Get("userID")
	if !ok {
		return 0, "", false
	}
	username := ctx.GetString("username")
	return id.(uint), username, true
}

func respondError(ctx *gin.Context, status int, message interface{}) {
	ctx.JSON(status, gin.H{"status": "error", "message": message})
}

func respondStorageError(ctx *gin.Context, err error) {
	respondError(ctx, http.StatusInternalServerError, err.Error())
}

// findArticle resolves a slug to an article. The bool reports whether the
// request has already been answered with a 404 or 500.
func findArticle(ctx *gin.Context, slug string) (models.Article, bool) {
	var article models.Article
	err := global.Db.Preload("Author").Preload("Tags").Where("slug = ?", slug).First(&article).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		respondError(ctx, http.StatusNotFound, "Article slug is not valid")
		return article, false
	}
	if err != nil {
		respondStorageError(ctx, err)
		return article, false
	}
	return article, true
}

// reactionUsernames computes an article's like or dislike member list from
// the reaction rows, which are the single source of truth.
func reactionUsernames(articleID uint, likes bool) []string {
	usernames := make([]string, 0)
	global.Db.Model(&models.Reaction{}).
		Joins("JOIN users ON users.id = reactions.reader_id").
		Where("reactions.article_id = ? AND reactions.likes = ?", articleID, likes).
		Order("users.username").
		Pluck("users.username", &usernames)
	return usernames
}

func serializeArticle(article models.Article) gin.H {
	tags := make([]string, 0, len(article.Tags))
	for _, tag := range article.Tags {
		tags = append(tags, tag.Label)
	}
	return gin.H{
		"slug":        article.Slug,
		"title":       article.Title,
		"description": article.Description,
		"body":        article.Body,
		"image_url":   article.ImageURL,
		"tags":        tags,
		"author":      gin.H{"username": article.Author.Username},
		"likes":       reactionUsernames(article.ID, true),
		"dislikes":    reactionUsernames(article.ID, false),
		"created_at":  article.CreatedAt.Format(timeFormat),
		"updated_at":  article.UpdatedAt.Format(timeFormat),
	}
}
