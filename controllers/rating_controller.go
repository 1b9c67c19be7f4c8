package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"authorsheaven/config"
	"authorsheaven/global"
	"authorsheaven/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ratingRequest struct {
	Rating struct {
		Rating *float64 `json:"rating"`
	} `json:"rating" binding:"required"`
}

func averageRating(articleID uint) interface{} {
	type result struct {
		Avg   float64
		Count int64
	}
	var res result
	global.Db.Model(&models.Rating{}).
		Select("COALESCE(AVG(value), 0) AS avg, COUNT(id) AS count").
		Where("article_id = ?", articleID).
		Scan(&res)
	if res.Count == 0 {
		return nil
	}
	return res.Avg
}

func ratingPayload(own interface{}, articleID uint) gin.H {
	return gin.H{"rating": own, "avg_rating": averageRating(articleID)}
}

// RateArticle creates or updates the caller's rating. At most one rating
// exists per (user, article) pair; repeating a rate call is an upsert.
func RateArticle(ctx *gin.Context) {
	userID, _, _ := currentUser(ctx)

	article, ok := findArticle(ctx, ctx.Param("slug"))
	if !ok {
		return
	}
	if article.AuthorID == userID {
		respondError(ctx, http.StatusBadRequest, "You cannot rate your own article")
		return
	}

	var req ratingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil || req.Rating.Rating == nil {
		respondError(ctx, http.StatusBadRequest, map[string]string{"rating": "Rating value is required"})
		return
	}
	value := *req.Rating.Rating
	min, max := config.RatingBounds()
	if value < min || value > max {
		respondError(ctx, http.StatusBadRequest, map[string]string{
			"rating": fmt.Sprintf("Rating must be between %g and %g", min, max),
		})
		return
	}

	var rating models.Rating
	err := global.Db.Where("user_id = ? AND article_id = ?", userID, article.ID).First(&rating).Error
	switch {
	case err == nil:
		rating.Value = value
		err = global.Db.Save(&rating).Error
	case errors.Is(err, gorm.ErrRecordNotFound):
		rating = models.Rating{UserID: userID, ArticleID: article.ID, Value: value}
		if err = global.Db.Create(&rating).Error; err != nil {
			// lost a create race against the unique pair index; retry as update
			err = global.Db.Model(&models.Rating{}).
				Where("user_id = ? AND article_id = ?", userID, article.ID).
				Update("value", value).Error
		}
	}
	if err != nil {
		respondStorageError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"status": "success", "rating": ratingPayload(value, article.ID)})
}

// UpdateRating updates an existing rating, 404 when the caller has none.
func UpdateRating(ctx *gin.Context) {
	userID, _, _ := currentUser(ctx)

	article, ok := findArticle(ctx, ctx.Param("slug"))
	if !ok {
		return
	}

	var req ratingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil || req.Rating.Rating == nil {
		respondError(ctx, http.StatusBadRequest, map[string]string{"rating": "Rating value is required"})
		return
	}
	value := *req.Rating.Rating
	min, max := config.RatingBounds()
	if value < min || value > max {
		respondError(ctx, http.StatusBadRequest, map[string]string{
			"rating": fmt.Sprintf("Rating must be between %g and %g", min, max),
		})
		return
	}

	var rating models.Rating
	err := global.Db.Where("user_id = ? AND article_id = ?", userID, article.ID).First(&rating).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		respondError(ctx, http.StatusNotFound, "Rating not found")
		return
	}
	if err != nil {
		respondStorageError(ctx, err)
		return
	}

	rating.Value = value
	if err := global.Db.Save(&rating).Error; err != nil {
		respondStorageError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"status": "success", "rating": ratingPayload(value, article.ID)})
}

// GetRating returns the article's average and, for an authenticated
// caller, their own value. A caller without a rating gets an explicit
// null, never somebody else's row.
func GetRating(ctx *gin.Context) {
	article, ok := findArticle(ctx, ctx.Param("slug"))
	if !ok {
		return
	}

	var own interface{}
	if userID, _, authed := currentUser(ctx); authed {
		var rating models.Rating
		err := global.Db.Where("user_id = ? AND article_id = ?", userID, article.ID).First(&rating).Error
		if err == nil {
			own = rating.Value
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			respondStorageError(ctx, err)
			return
		}
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "success", "rating": ratingPayload(own, article.ID)})
}

// DeleteRating removes the caller's rating, 404 when there is none.
func DeleteRating(ctx *gin.Context) {
	userID, _, _ := currentUser(ctx)

	article, ok := findArticle(ctx, ctx.Param("slug"))
	if !ok {
		return
	}

	var rating models.Rating
	err := global.Db.Where("user_id = ? AND article_id = ?", userID, article.ID).First(&rating).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		respondError(ctx, http.StatusNotFound, "Rating not found")
		return
	}
	if err != nil {
		respondStorageError(ctx, err)
		return
	}

	if err := global.Db.Delete(&rating).Error; err != nil {
		respondStorageError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"status": "success", "message": "Successfully deleted rating"})
}
