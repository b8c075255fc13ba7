package types

import "time"

type UserResponse struct {
	ID          uint   `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
}

type AuthResponse struct {
	AccessToken string       `json:"accessToken"`
	User        UserResponse `json:"user"`
}

// PostListItem is the list-view shape: content is trimmed to an excerpt
// and the comment count is included for the list UI.
type PostListItem struct {
	ID           uint         `json:"id"`
	Title        string       `json:"title"`
	Excerpt      string       `json:"excerpt"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
	Author       UserResponse `json:"author"`
	CommentCount int          `json:"commentCount"`
}

type PostListResponse struct {
	Page     int            `json:"page"`
	PageSize int            `json:"pageSize"`
	Total    int64          `json:"total"`
	Items    []PostListItem `json:"items"`
}

type PostDetail struct {
	ID        uint         `json:"id"`
	Title     string       `json:"title"`
	Content   string       `json:"content"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
	Author    UserResponse `json:"author"`
}

type CommentResponse struct {
	ID        uint         `json:"id"`
	Body      string       `json:"body"`
	CreatedAt time.Time    `json:"createdAt"`
	Author    UserResponse `json:"author"`
}
