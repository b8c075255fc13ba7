package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/inkpress-dev/inkpress/db"
	"github.com/inkpress-dev/inkpress/internal/models"
	"github.com/inkpress-dev/inkpress/internal/types"
	"github.com/inkpress-dev/inkpress/internal/utils"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type CreatePostRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
}

type UpdatePostRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
}

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// parseID reads a numeric path parameter; junk ids read as not found.
func parseID(ctx *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 64)

	if err != nil {
		return 0, false
	}

	return uint(id), true
}

func userResponse(u models.User) types.UserResponse {
	return types.UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
	}
}

func postDetail(p models.Post) types.PostDetail {
	return types.PostDetail{
		ID:        p.ID,
		Title:     p.Title,
		Content:   p.Content,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
		Author:    userResponse(p.Author),
	}
}

// ListPosts is the public list endpoint: optional case-insensitive search
// over title and content, newest-updated first, offset pagination.
func ListPosts(ctx *gin.Context) {
	page, err := strconv.Atoi(ctx.DefaultQuery("page", "1"))

	if err != nil || page < 1 {
		page = 1
	}

	pageSize, err := strconv.Atoi(ctx.DefaultQuery("pageSize", strconv.Itoa(defaultPageSize)))

	if err != nil || pageSize < 1 || pageSize > maxPageSize {
		pageSize = defaultPageSize
	}

	query := db.DB.Model(&models.Post{})

	if search := strings.TrimSpace(ctx.Query("search")); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(content) LIKE ?", pattern, pattern)
	}

	// Full filtered count for the pagination UI, before limit/offset.
	// Count runs on its own session so the query can be reused below.
	var total int64

	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		logrus.Errorf("Failed to count posts: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var posts []models.Post

	err = query.
		Order("updated_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Preload("Author").
		Preload("Comments").
		Find(&posts).Error

	if err != nil {
		logrus.Errorf("Failed to list posts: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	items := make([]types.PostListItem, 0, len(posts))

	for _, p := range posts {
		items = append(items, types.PostListItem{
			ID:           p.ID,
			Title:        p.Title,
			Excerpt:      utils.Excerpt(p.Content),
			CreatedAt:    p.CreatedAt,
			UpdatedAt:    p.UpdatedAt,
			Author:       userResponse(p.Author),
			CommentCount: len(p.Comments),
		})
	}

	ctx.JSON(http.StatusOK, types.PostListResponse{
		Page:     page,
		PageSize: pageSize,
		Total:    total,
		Items:    items,
	})
}

func GetPost(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")

	if !ok {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	var post models.Post

	err := db.DB.Preload("Author").First(&post, "id = ?", id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		} else {
			logrus.Errorf("Failed to fetch post: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	ctx.JSON(http.StatusOK, postDetail(post))
}

func CreatePost(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req CreatePostRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Title and content are required"})
		return
	}

	title := strings.TrimSpace(req.Title)
	content := strings.TrimSpace(req.Content)

	if title == "" || content == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Title and content are required"})
		return
	}

	post := models.Post{
		Title:    title,
		Content:  content,
		AuthorID: currentUser.ID,
	}

	if err := db.DB.Create(&post).Error; err != nil {
		logrus.Errorf("Failed to create post: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	BroadcastEvent("post.created", gin.H{"postId": post.ID})

	post.Author = models.User{
		ID:          currentUser.ID,
		Email:       currentUser.Email,
		DisplayName: currentUser.DisplayName,
	}

	ctx.JSON(http.StatusCreated, postDetail(post))
}

func UpdatePost(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req UpdatePostRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Title and content are required"})
		return
	}

	id, ok := parseID(ctx, "id")

	if !ok {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	var post models.Post

	if err := db.DB.First(&post, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		} else {
			logrus.Errorf("Failed to fetch post: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	// Ownership check
	if post.AuthorID != currentUser.ID {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "You can only update your own posts"})
		return
	}

	post.Title = strings.TrimSpace(req.Title)
	post.Content = strings.TrimSpace(req.Content)

	if err := db.DB.Save(&post).Error; err != nil {
		logrus.Errorf("Failed to update post: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	BroadcastEvent("post.updated", gin.H{"postId": post.ID})

	ctx.Status(http.StatusNoContent)
}

func DeletePost(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	id, ok := parseID(ctx, "id")

	if !ok {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	var post models.Post

	if err := db.DB.First(&post, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		} else {
			logrus.Errorf("Failed to fetch post: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	// Ownership check
	if post.AuthorID != currentUser.ID {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "You can only delete your own posts"})
		return
	}

	// Comments go with the post via the FK cascade.
	if err := db.DB.Delete(&post).Error; err != nil {
		logrus.Errorf("Failed to delete post: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	BroadcastEvent("post.deleted", gin.H{"postId": post.ID})

	ctx.Status(http.StatusNoContent)
}

// ClearMyPosts removes every post owned by the caller in one batch and
// reports how many went away.
func ClearMyPosts(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	result := db.DB.Where("author_id = ?", currentUser.ID).Delete(&models.Post{})

	if result.Error != nil {
		logrus.Errorf("Failed to clear posts: %v", result.Error)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if result.RowsAffected > 0 {
		BroadcastEvent("posts.cleared", gin.H{"authorId": currentUser.ID})
	}

	ctx.JSON(http.StatusOK, gin.H{"deleted": result.RowsAffected})
}
