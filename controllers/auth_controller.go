package controllers

import (
	"errors"
	"net/http"

	"authorsheaven/global"
	"authorsheaven/models"
	"authorsheaven/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type registerRequest struct {
	User struct {
		Username string `json:"username" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=8"`
	} `json:"user" binding:"required"`
}

type loginRequest struct {
	User struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	} `json:"user" binding:"required"`
}

func Register(ctx *gin.Context) {
	var req registerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondError(ctx, http.StatusBadRequest, err.Error())
		return
	}

	hashed, err := utils.HashPassword(req.User.Password)
	if err != nil {
		respondStorageError(ctx, err)
		return
	}

	var taken int64
	global.Db.Model(&models.User{}).
		Where("username = ? OR email = ?", req.User.Username, req.User.Email).
		Count(&taken)
	if taken > 0 {
		respondError(ctx, http.StatusBadRequest, "Username or email already taken")
		return
	}

	user := models.User{
		Username: req.User.Username,
		Email:    req.User.Email,
		Password: hashed,
	}
	if err := global.Db.Create(&user).Error; err != nil {
		// unique index closes the check-then-create race
		respondError(ctx, http.StatusBadRequest, "Username or email already taken")
		return
	}

	token, err := utils.GenerateJWT(user.ID, user.Username)
	if err != nil {
		respondStorageError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"status": "success",
		"user": gin.H{
			"username": user.Username,
			"email":    user.Email,
			"token":    token,
		},
	})
}

func Login(ctx *gin.Context) {
	var req loginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondError(ctx, http.StatusBadRequest, err.Error())
		return
	}

	var user models.User
	err := global.Db.Where("email = ?", req.User.Email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && !utils.CheckPassword(req.User.Password, user.Password)) {
		respondError(ctx, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	if err != nil {
		respondStorageError(ctx, err)
		return
	}

	token, err := utils.GenerateJWT(user.ID, user.Username)
	if err != nil {
		respondStorageError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"status": "success",
		"user": gin.H{
			"username": user.Username,
			"email":    user.Email,
			"token":    token,
		},
	})
}
