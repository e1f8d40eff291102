package models

import "strings"

type SignUpRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// SignInRequest accepts either a username or an email as identifier. The
// legacy "email" field is still honoured for older clients.
type SignInRequest struct {
	Identifier string `json:"identifier" validate:"required_without=Email,max=254"`
	Email      string `json:"email" validate:"omitempty,max=254"`
	Password   string `json:"password" validate:"required,max=72"`
}

func (r SignInRequest) Login() string {
	if strings.TrimSpace(r.Identifier) != "" {
		return r.Identifier
	}
	return r.Email
}

// UpdateUserRequest is a partial update: nil fields are left untouched.
type UpdateUserRequest struct {
	Username       *string `json:"username" validate:"omitempty,min=3,max=50"`
	Email          *string `json:"email" validate:"omitempty,email,max=254"`
	Password       *string `json:"password" validate:"omitempty,min=6,max=72"`
	ProfilePicture *string `json:"profilePicture" validate:"omitempty,url,max=2048"`
}

func (r UpdateUserRequest) Empty() bool {
	return r.Username == nil && r.Email == nil && r.Password == nil && r.ProfilePicture == nil
}

type CreatePostRequest struct {
	Title    string `json:"title" validate:"required,max=200"`
	Content  string `json:"content" validate:"required"`
	Category string `json:"category" validate:"omitempty,max=50"`
	Image    string `json:"image" validate:"omitempty,url,max=2048"`
}

type UpdatePostRequest struct {
	Title    *string `json:"title" validate:"omitempty,max=200"`
	Content  *string `json:"content" validate:"omitempty"`
	Category *string `json:"category" validate:"omitempty,max=50"`
	Image    *string `json:"image" validate:"omitempty,url,max=2048"`
}

func (r UpdatePostRequest) Empty() bool {
	return r.Title == nil && r.Content == nil && r.Category == nil && r.Image == nil
}

type CreateCommentRequest struct {
	PostID  uint   `json:"postId" validate:"required"`
	Content string `json:"content" validate:"required,max=200"`
}

type EditCommentRequest struct {
	Content string `json:"content" validate:"required,max=200"`
}

type PostListParams struct {
	UserID     uint   `form:"userId"`
	Category   string `form:"category"`
	Slug       string `form:"slug"`
	PostID     uint   `form:"postId"`
	SearchTerm string `form:"searchTerm" validate:"max=100"`
	Page       int    `form:"page" validate:"min=0"`
	Limit      int    `form:"limit" validate:"min=0"`
	Order      string `form:"order" validate:"omitempty,oneof=asc desc"`
}

type UserListParams struct {
	Page  int    `form:"page" validate:"min=0"`
	Limit int    `form:"limit" validate:"min=0"`
	Sort  string `form:"sort" validate:"omitempty,oneof=asc desc"`
}

type PostList struct {
	Posts          []Post `json:"posts"`
	TotalPosts     int64  `json:"totalPosts"`
	LastMonthPosts int64  `json:"lastMonthPosts"`
}

type UserList struct {
	Users          []User `json:"users"`
	TotalUsers     int64  `json:"totalUsers"`
	LastMonthUsers int64  `json:"lastMonthUsers"`
}
