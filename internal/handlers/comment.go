package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/inkpress-dev/inkpress/db"
	"github.com/inkpress-dev/inkpress/internal/models"
	"github.com/inkpress-dev/inkpress/internal/types"
	"github.com/inkpress-dev/inkpress/internal/utils"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type CreateCommentRequest struct {
	Body string `json:"body" binding:"required"`
}

func commentResponse(c models.Comment) types.CommentResponse {
	return types.CommentResponse{
		ID:        c.ID,
		Body:      c.Body,
		CreatedAt: c.CreatedAt,
		Author:    userResponse(c.Author),
	}
}

// postExists reports whether the parent post is present. A missing or
// deleted post makes the whole comments subtree a 404.
func postExists(postID uint) (bool, error) {
	var count int64

	err := db.DB.Model(&models.Post{}).Where("id = ?", postID).Count(&count).Error

	return count > 0, err
}

func ListComments(ctx *gin.Context) {
	postID, ok := parseID(ctx, "id")

	if !ok {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	exists, err := postExists(postID)

	if err != nil {
		logrus.Errorf("Failed to check post existence: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if !exists {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	var comments []models.Comment

	err = db.DB.
		Where("post_id = ?", postID).
		Order("created_at DESC").
		Preload("Author").
		Find(&comments).Error

	if err != nil {
		logrus.Errorf("Failed to list comments: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	items := make([]types.CommentResponse, 0, len(comments))

	for _, c := range comments {
		items = append(items, commentResponse(c))
	}

	ctx.JSON(http.StatusOK, items)
}

func CreateComment(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req CreateCommentRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Comment body is required"})
		return
	}

	body := strings.TrimSpace(req.Body)

	if body == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Comment body is required"})
		return
	}

	postID, ok := parseID(ctx, "id")

	if !ok {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	var post models.Post

	if err := db.DB.First(&post, "id = ?", postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		} else {
			logrus.Errorf("Failed to fetch post: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	comment := models.Comment{
		Body:     body,
		PostID:   post.ID,
		AuthorID: currentUser.ID,
	}

	if err := db.DB.Create(&comment).Error; err != nil {
		logrus.Errorf("Failed to create comment: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	BroadcastEvent("comment.created", gin.H{"postId": post.ID, "commentId": comment.ID})

	comment.Author = models.User{
		ID:          currentUser.ID,
		Email:       currentUser.Email,
		DisplayName: currentUser.DisplayName,
	}

	ctx.JSON(http.StatusCreated, commentResponse(comment))
}

func DeleteComment(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	postID, okPost := parseID(ctx, "id")
	commentID, okComment := parseID(ctx, "commentId")

	if !okPost || !okComment {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
		return
	}

	var comment models.Comment

	// The comment must belong to the post in the path.
	err = db.DB.
		Where("id = ? AND post_id = ?", commentID, postID).
		First(&comment).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
		} else {
			logrus.Errorf("Failed to fetch comment: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	// Ownership check
	if comment.AuthorID != currentUser.ID {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "You can only delete your own comments"})
		return
	}

	if err := db.DB.Delete(&comment).Error; err != nil {
		logrus.Errorf("Failed to delete comment: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	BroadcastEvent("comment.deleted", gin.H{"postId": comment.PostID, "commentId": comment.ID})

	ctx.Status(http.StatusNoContent)
}
