package controllers

import (
	"errors"
	"net/http"

	"authorsheaven/global"
	"authorsheaven/models"
	"authorsheaven/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// FavouriteArticle bookmarks an article for the caller, at most once.
func FavouriteArticle(ctx *gin.Context) {
	userID, username, _ := currentUser(ctx)

	article, ok := findArticle(ctx, ctx.Param("slug"))
	if !ok {
		return
	}

	favourite := models.Favourite{UserID: userID, ArticleID: article.ID}
	var existing models.Favourite
	err := global.Db.Where("user_id = ? AND article_id = ?", userID, article.ID).First(&existing).Error
	if err == nil {
		respondError(ctx, http.StatusBadRequest, "You have already favourited this article")
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		respondStorageError(ctx, err)
		return
	}

	if err := global.Db.Create(&favourite).Error; err != nil {
		// unique pair index closes the check-then-create race
		respondError(ctx, http.StatusBadRequest, "You have already favourited this article")
		return
	}

	services.PublishEvent(services.EngagementEvent{
		Type:        "favourite.added",
		ArticleSlug: article.Slug,
		ActorID:     userID,
		Actor:       username,
	})

	payload := serializeArticle(article)
	payload["favourited"] = true
	ctx.JSON(http.StatusOK, gin.H{"status": "success", "article": payload, "message": "favourited"})
}

// UnfavouriteArticle removes the caller's bookmark.
func UnfavouriteArticle(ctx *gin.Context) {
	userID, username, _ := currentUser(ctx)

	article, ok := findArticle(ctx, ctx.Param("slug"))
	if !ok {
		return
	}

	var favourite models.Favourite
	err := global.Db.Where("user_id = ? AND article_id = ?", userID, article.ID).First(&favourite).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		respondError(ctx, http.StatusNotFound, "you had not favourited this article")
		return
	}
	if err != nil {
		respondStorageError(ctx, err)
		return
	}

	if err := global.Db.Delete(&favourite).Error; err != nil {
		respondStorageError(ctx, err)
		return
	}

	services.PublishEvent(services.EngagementEvent{
		Type:        "favourite.removed",
		ArticleSlug: article.Slug,
		ActorID:     userID,
		Actor:       username,
	})

	payload := serializeArticle(article)
	payload["favourited"] = false
	ctx.JSON(http.StatusOK, gin.H{"status": "success", "article": payload, "message": "unfavourited"})
}
