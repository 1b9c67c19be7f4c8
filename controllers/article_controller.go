package controllers

import (
	"net/http"
	"strconv"

	"authorsheaven/global"
	"authorsheaven/models"
	"authorsheaven/services"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis"
	"gorm.io/gorm"
)

type articleRequest struct {
	Article struct {
		Title       *string  `json:"title"`
		Description *string  `json:"description"`
		Body        *string  `json:"body"`
		ImageURL    *string  `json:"image_url"`
		Tags        []string `json:"tags"`
	} `json:"article" binding:"required"`
}

func validateArticleFields(req *articleRequest, creating bool) map[string]string {
	problems := map[string]string{}
	a := req.Article
	if creating && (a.Title == nil || *a.Title == "") {
		problems["title"] = "Title is required"
	}
	if a.Title != nil && len(*a.Title) > 128 {
		problems["title"] = "Title cannot be more than 128"
	}
	if creating && (a.Body == nil || *a.Body == "") {
		problems["body"] = "Body is required"
	}
	if a.Description != nil && len(*a.Description) > 250 {
		problems["description"] = "Description should not be more than 250"
	}
	if len(problems) == 0 {
		return nil
	}
	return problems
}

// upsertTags resolves tag labels to rows, creating missing ones.
func upsertTags(tx *gorm.DB, labels []string) ([]models.Tag, error) {
	tags := make([]models.Tag, 0, len(labels))
	for _, label := range labels {
		if label == "" {
			continue
		}
		var tag models.Tag
		if err := tx.Where(models.Tag{Label: label}).FirstOrCreate(&tag).Error; err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

func CreateArticle(ctx *gin.Context) {
	userID, _, _ := currentUser(ctx)

	var req articleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondError(ctx, http.StatusBadRequest, err.Error())
		return
	}
	if problems := validateArticleFields(&req, true); problems != nil {
		respondError(ctx, http.StatusBadRequest, problems)
		return
	}

	tags, err := upsertTags(global.Db, req.Article.Tags)
	if err != nil {
		respondStorageError(ctx, err)
		return
	}

	article := models.Article{
		Title:    *req.Article.Title,
		Body:     *req.Article.Body,
		AuthorID: userID,
		Tags:     tags,
	}
	if req.Article.Description != nil {
		article.Description = *req.Article.Description
	}
	if req.Article.ImageURL != nil {
		article.ImageURL = *req.Article.ImageURL
	}

	// slug check-then-insert is racy, so retry under the unique index
	var createErr error
	for attempt := 0; attempt < 3; attempt++ {
		article.Slug = services.UniqueSlug(global.Db, article.Title)
		if createErr = global.Db.Create(&article).Error; createErr == nil {
			break
		}
	}
	if createErr != nil {
		respondStorageError(ctx, createErr)
		return
	}

	global.Db.Preload("Author").Preload("Tags").First(&article, article.ID)
	ctx.JSON(http.StatusCreated, gin.H{"status": "success", "article": serializeArticle(article)})
}

// GetArticles lists all articles, newest first.
func GetArticles(ctx *gin.Context) {
	var articles []models.Article
	err := global.Db.Preload("Author").Preload("Tags").Order("created_at DESC, id DESC").Find(&articles).Error
	if err != nil {
		respondStorageError(ctx, err)
		return
	}
	payload := make([]gin.H, 0, len(articles))
	for _, article := range articles {
		payload = append(payload, serializeArticle(article))
	}
	ctx.JSON(http.StatusOK, gin.H{"status": "success", "articles": payload})
}

func GetArticle(ctx *gin.Context) {
	article, ok := findArticle(ctx, ctx.Param("slug"))
	if !ok {
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"status": "success", "article": serializeArticle(article)})
}

func UpdateArticle(ctx *gin.Context) {
	userID, _, _ := currentUser(ctx)

	article, ok := findArticle(ctx, ctx.Param("slug"))
	if !ok {
		return
	}
	if article.AuthorID != userID {
		respondError(ctx, http.StatusForbidden, "You do not have permission to edit this article")
		return
	}

	var req articleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondError(ctx, http.StatusBadRequest, err.Error())
		return
	}
	if problems := validateArticleFields(&req, false); problems != nil {
		respondError(ctx, http.StatusBadRequest, problems)
		return
	}

	// partial update; the slug is never regenerated on title edits
	if req.Article.Title != nil && *req.Article.Title != "" {
		article.Title = *req.Article.Title
	}
	if req.Article.Description != nil {
		article.Description = *req.Article.Description
	}
	if req.Article.Body != nil && *req.Article.Body != "" {
		article.Body = *req.Article.Body
	}
	if req.Article.ImageURL != nil {
		article.ImageURL = *req.Article.ImageURL
	}
	if err := global.Db.Save(&article).Error; err != nil {
		respondStorageError(ctx, err)
		return
	}
	if req.Article.Tags != nil {
		tags, err := upsertTags(global.Db, req.Article.Tags)
		if err != nil {
			respondStorageError(ctx, err)
			return
		}
		if err := global.Db.Model(&article).Association("Tags").Replace(tags); err != nil {
			respondStorageError(ctx, err)
			return
		}
	}

	global.Db.Preload("Author").Preload("Tags").First(&article, article.ID)
	ctx.JSON(http.StatusOK, gin.H{"status": "success", "article": serializeArticle(article)})
}

// DeleteArticle removes an article with everything hanging off it.
func DeleteArticle(ctx *gin.Context) {
	userID, _, _ := currentUser(ctx)

	article, ok := findArticle(ctx, ctx.Param("slug"))
	if !ok {
		return
	}
	if article.AuthorID != userID {
		respondError(ctx, http.StatusForbidden, "You do not have permission to delete this article")
		return
	}

	err := global.Db.Transaction(func(tx *gorm.DB) error {
		// order matters: dependents first, then the article itself
		if err := tx.Unscoped().Where("article_id = ?", article.ID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("article_id = ?", article.ID).Delete(&models.Rating{}).Error; err != nil {
			return err
		}
		if err := tx.Where("article_id = ?", article.ID).Delete(&models.Favourite{}).Error; err != nil {
			return err
		}
		if err := tx.Where("article_id = ?", article.ID).Delete(&models.Reaction{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&article).Association("Tags").Clear(); err != nil {
			return err
		}
		return tx.Unscoped().Delete(&article).Error
	})
	if err != nil {
		respondStorageError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "success", "message": "Article deleted successfully"})
}

// GetTopArticles returns the like leaderboard from the Redis rank ZSET,
// falling back to counting reaction rows when Redis is not configured.
func GetTopArticles(ctx *gin.Context) {
	top, err := strconv.Atoi(ctx.DefaultQuery("top", "10"))
	if err != nil || top <= 0 {
		top = 10
	}

	if global.RedisDB == nil {
		topArticlesFromDB(ctx, top)
		return
	}

	zres, err := global.RedisDB.ZRevRangeWithScores(likeRankKey, 0, int64(top-1)).Result()
	if err != nil && err != redis.Nil {
		respondStorageError(ctx, err)
		return
	}

	list := make([]gin.H, 0, len(zres))
	for idx, z := range zres {
		slug, _ := z.Member.(string)
		item := gin.H{"slug": slug, "likes": int64(z.Score), "rank": idx + 1}
		var article models.Article
		if err := global.Db.Where("slug = ?", slug).First(&article).Error; err == nil {
			item["title"] = article.Title
		}
		list = append(list, item)
	}
	ctx.JSON(http.StatusOK, gin.H{"status": "success", "articles": list})
}

func topArticlesFromDB(ctx *gin.Context, top int) {
	type row struct {
		Slug  string
		Title string
		Likes int64
	}
	var rows []row
	err := global.Db.Model(&models.Reaction{}).
		Select("articles.slug AS slug, articles.title AS title, COUNT(reactions.id) AS likes").
		Joins("JOIN articles ON articles.id = reactions.article_id AND articles.deleted_at IS NULL").
		Where("reactions.likes = ?", true).
		Group("articles.id").
		Order("likes DESC").
		Limit(top).
		Scan(&rows).Error
	if err != nil {
		respondStorageError(ctx, err)
		return
	}
	list := make([]gin.H, 0, len(rows))
	for idx, r := range rows {
		list = append(list, gin.H{"slug": r.Slug, "title": r.Title, "likes": r.Likes, "rank": idx + 1})
	}
	ctx.JSON(http.StatusOK, gin.H{"status": "success", "articles": list})
}
