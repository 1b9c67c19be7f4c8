package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"authorsheaven/global"
	"authorsheaven/models"
	"authorsheaven/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const likeRankKey = "rank:article:likes"

type reactionRequest struct {
	Likes *bool `json:"likes"`
}

// bumpLikeRank keeps the Redis leaderboard in step with like transitions.
// The reaction rows stay authoritative; a missing Redis client is fine.
func bumpLikeRank(slug string, delta float64) {
	if global.RedisDB == nil {
		return
	}
	if err := global.RedisDB.ZIncrBy(likeRankKey, delta, slug).Err(); err != nil {
		// leaderboard drift is tolerable, the DB view stays correct
		return
	}
}

// ReactToArticle drives the per-(article, reader) state machine across
// {none, liked, disliked}. Repeating the current state is a conflict;
// the opposite state flips the stored row.
func ReactToArticle(ctx *gin.Context) {
	userID, username, _ := currentUser(ctx)

	article, ok := findArticle(ctx, ctx.Param("slug"))
	if !ok {
		return
	}

	var req reactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil || req.Likes == nil {
		respondError(ctx, http.StatusBadRequest, "Please indicate whether you like/dislike this article")
		return
	}
	wantLike := *req.Likes

	if article.AuthorID == userID {
		respondError(ctx, http.StatusBadRequest, "You cannot like/unlike your own article")
		return
	}

	var reaction models.Reaction
	err := global.Db.Where("reader_id = ? AND article_id = ?", userID, article.ID).First(&reaction).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		reaction = models.Reaction{ReaderID: userID, ArticleID: article.ID, Likes: wantLike}
		if err := global.Db.Create(&reaction).Error; err != nil {
			// lost a create race against the unique pair index
			respondError(ctx, http.StatusBadRequest,
				fmt.Sprintf("%s, you have already reacted to this article", username))
			return
		}
		if wantLike {
			bumpLikeRank(article.Slug, 1)
		}
		services.PublishEvent(services.EngagementEvent{
			Type:        reactionEventType(wantLike),
			ArticleSlug: article.Slug,
			ActorID:     userID,
			Actor:       username,
		})
		ctx.JSON(http.StatusCreated, gin.H{
			"status":  "success",
			"message": fmt.Sprintf("%s, you have %s this article", username, likedWord(wantLike)),
		})
		return
	case err != nil:
		respondStorageError(ctx, err)
		return
	}

	if reaction.Likes == wantLike {
		respondError(ctx, http.StatusBadRequest,
			fmt.Sprintf("%s, you have already %s this article", username, likedWord(wantLike)))
		return
	}

	reaction.Likes = wantLike
	if err := global.Db.Save(&reaction).Error; err != nil {
		respondStorageError(ctx, err)
		return
	}
	if wantLike {
		bumpLikeRank(article.Slug, 1)
	} else {
		bumpLikeRank(article.Slug, -1)
	}
	services.PublishEvent(services.EngagementEvent{
		Type:        reactionEventType(wantLike),
		ArticleSlug: article.Slug,
		ActorID:     userID,
		Actor:       username,
	})
	ctx.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": fmt.Sprintf("%s, you have %s this article", username, likedWord(wantLike)),
	})
}

// RemoveReaction clears the caller's reaction, 404 when none exists.
func RemoveReaction(ctx *gin.Context) {
	userID, username, _ := currentUser(ctx)

	article, ok := findArticle(ctx, ctx.Param("slug"))
	if !ok {
		return
	}

	var reaction models.Reaction
	err := global.Db.Where("reader_id = ? AND article_id = ?", userID, article.ID).First(&reaction).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		respondError(ctx, http.StatusNotFound, "Likes/dislikes not found")
		return
	}
	if err != nil {
		respondStorageError(ctx, err)
		return
	}

	if err := global.Db.Delete(&reaction).Error; err != nil {
		respondStorageError(ctx, err)
		return
	}
	if reaction.Likes {
		bumpLikeRank(article.Slug, -1)
	}
	services.PublishEvent(services.EngagementEvent{
		Type:        "reaction.removed",
		ArticleSlug: article.Slug,
		ActorID:     userID,
		Actor:       username,
	})
	ctx.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": fmt.Sprintf("%s, your reaction has been deleted successfully", username),
	})
}

func likedWord(likes bool) string {
	if likes {
		return "liked"
	}
	return "disliked"
}

func reactionEventType(likes bool) string {
	if likes {
		return "reaction.liked"
	}
	return "reaction.disliked"
}
