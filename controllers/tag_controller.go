package controllers

import (
	"net/http"

	"authorsheaven/global"
	"authorsheaven/models"

	"github.com/gin-gonic/gin"
)

// GetTags lists every tag label in use.
func GetTags(ctx *gin.Context) {
	labels := make([]string, 0)
	if err := global.Db.Model(&models.Tag{}).Order("label").Pluck("label", &labels).Error; err != nil {
		respondStorageError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"status": "success", "tags": labels})
}
