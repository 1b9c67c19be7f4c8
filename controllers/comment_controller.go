package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"authorsheaven/global"
	"authorsheaven/models"
	"authorsheaven/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type commentRequest struct {
	Comment struct {
		Body     string `json:"body"`
		ParentID *uint  `json:"parent_id"`
	} `json:"comment" binding:"required"`
}

func validateCommentBody(body string) map[string]string {
	if body == "" {
		return map[string]string{"body": "Comment body is required"}
	}
	if len(body) > 200 {
		return map[string]string{"body": "Comment cannot be more than 200 characters"}
	}
	return nil
}

func directReplyCount(commentID uint) int64 {
	var count int64
	global.Db.Model(&models.Comment{}).Where("parent_id = ?", commentID).Count(&count)
	return count
}

func serializeComment(comment models.Comment, withThreads bool) gin.H {
	payload := gin.H{
		"id":          comment.ID,
		"body":        comment.Body,
		"author":      comment.Author.Username,
		"article":     comment.Article.Title,
		"created_at":  comment.CreatedAt.Format(timeFormat),
		"updated_at":  comment.UpdatedAt.Format(timeFormat),
		"reply_count": directReplyCount(comment.ID),
	}
	if withThreads {
		var replies []models.Comment
		global.Db.Preload("Author").Preload("Article").
			Where("parent_id = ?", comment.ID).
			Order("created_at DESC, id DESC").
			Find(&replies)
		threads := make([]gin.H, 0, len(replies))
		for _, reply := range replies {
			threads = append(threads, serializeComment(reply, false))
		}
		payload["threads"] = threads
	}
	return payload
}

// findComment resolves a comment id within an article. The bool reports
// whether the request has already been answered.
func findComment(ctx *gin.Context, articleID uint, rawID string) (models.Comment, bool) {
	var comment models.Comment
	id, err := strconv.Atoi(rawID)
	if err != nil {
		respondError(ctx, http.StatusNotFound, "Comment not found")
		return comment, false
	}
	err = global.Db.Preload("Author").Preload("Article").
		Where("id = ? AND article_id = ?", id, articleID).
		First(&comment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		respondError(ctx, http.StatusNotFound, "Comment not found")
		return comment, false
	}
	if err != nil {
		respondStorageError(ctx, err)
		return comment, false
	}
	return comment, true
}

func createComment(ctx *gin.Context, parentFromPath string) {
	userID, username, _ := currentUser(ctx)

	article, ok := findArticle(ctx, ctx.Param("slug"))
	if !ok {
		return
	}

	var req commentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondError(ctx, http.StatusBadRequest, err.Error())
		return
	}
	if problems := validateCommentBody(req.Comment.Body); problems != nil {
		respondError(ctx, http.StatusBadRequest, problems)
		return
	}

	parentID := req.Comment.ParentID
	if parentFromPath != "" {
		parent, ok := findComment(ctx, article.ID, parentFromPath)
		if !ok {
			return
		}
		parentID = &parent.ID
	} else if parentID != nil {
		// a parent given in the body must live on the same article
		if _, ok := findComment(ctx, article.ID, strconv.Itoa(int(*parentID))); !ok {
			return
		}
	}

	comment := models.Comment{
		Body:      req.Comment.Body,
		ArticleID: article.ID,
		AuthorID:  userID,
		ParentID:  parentID,
	}
	if err := global.Db.Create(&comment).Error; err != nil {
		respondStorageError(ctx, err)
		return
	}

	services.PublishEvent(services.EngagementEvent{
		Type:        "comment.created",
		ArticleSlug: article.Slug,
		ActorID:     userID,
		Actor:       username,
		CommentID:   comment.ID,
	})

	global.Db.Preload("Author").Preload("Article").First(&comment, comment.ID)
	ctx.JSON(http.StatusCreated, gin.H{"status": "success", "comment": serializeComment(comment, true)})
}

// AddComment creates a root comment, or a reply when parent_id is given.
func AddComment(ctx *gin.Context) {
	createComment(ctx, "")
}

// ReplyToComment creates a reply under the comment named in the path.
func ReplyToComment(ctx *gin.Context) {
	createComment(ctx, ctx.Param("id"))
}

// ListComments returns an article's root comments, newest first, each with
// one level of direct replies.
func ListComments(ctx *gin.Context) {
	article, ok := findArticle(ctx, ctx.Param("slug"))
	if !ok {
		return
	}

	var roots []models.Comment
	err := global.Db.Preload("Author").Preload("Article").
		Where("article_id = ? AND parent_id IS NULL", article.ID).
		Order("created_at DESC, id DESC").
		Find(&roots).Error
	if err != nil {
		respondStorageError(ctx, err)
		return
	}

	payload := make([]gin.H, 0, len(roots))
	for _, comment := range roots {
		payload = append(payload, serializeComment(comment, true))
	}
	ctx.JSON(http.StatusOK, gin.H{"count": len(payload), "comments": payload})
}

// GetComment returns one comment with its direct replies. Deeper
// descendants are reached by querying a reply's own id.
func GetComment(ctx *gin.Context) {
	article, ok := findArticle(ctx, ctx.Param("slug"))
	if !ok {
		return
	}
	comment, ok := findComment(ctx, article.ID, ctx.Param("id"))
	if !ok {
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"comment": serializeComment(comment, true)})
}

func UpdateComment(ctx *gin.Context) {
	userID, _, _ := currentUser(ctx)

	article, ok := findArticle(ctx, ctx.Param("slug"))
	if !ok {
		return
	}
	comment, ok := findComment(ctx, article.ID, ctx.Param("id"))
	if !ok {
		return
	}
	if comment.AuthorID != userID {
		respondError(ctx, http.StatusForbidden, "You do not have permission to edit this comment")
		return
	}

	var req commentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondError(ctx, http.StatusBadRequest, err.Error())
		return
	}
	if problems := validateCommentBody(req.Comment.Body); problems != nil {
		respondError(ctx, http.StatusBadRequest, problems)
		return
	}

	comment.Body = req.Comment.Body
	if err := global.Db.Save(&comment).Error; err != nil {
		respondStorageError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"status": "success", "comment": serializeComment(comment, true)})
}

// DeleteComment removes a comment and its whole reply subtree. Descendant
// ids are collected breadth-first before anything is removed.
func DeleteComment(ctx *gin.Context) {
	userID, _, _ := currentUser(ctx)

	article, ok := findArticle(ctx, ctx.Param("slug"))
	if !ok {
		return
	}
	comment, ok := findComment(ctx, article.ID, ctx.Param("id"))
	if !ok {
		return
	}
	if comment.AuthorID != userID {
		respondError(ctx, http.StatusForbidden, "You do not have permission to delete this comment")
		return
	}

	doomed := []uint{comment.ID}
	frontier := []uint{comment.ID}
	for len(frontier) > 0 {
		var children []uint
		if err := global.Db.Model(&models.Comment{}).
			Where("parent_id IN ?", frontier).
			Pluck("id", &children).Error; err != nil {
			respondStorageError(ctx, err)
			return
		}
		doomed = append(doomed, children...)
		frontier = children
	}

	if err := global.Db.Unscoped().Where("id IN ?", doomed).Delete(&models.Comment{}).Error; err != nil {
		respondStorageError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"status": "success", "message": "You have deleted the comment"})
}
