package services

import (
	"context"
	"strings"

	"blog-api/auth"
	"blog-api/helper"
	"blog-api/models"
	"blog-api/repositories"
)

type PostService interface {
	CreatePost(ctx context.Context, identity *auth.Identity, req models.CreatePostRequest) (*models.Post, error)
	GetPosts(ctx context.Context, params models.PostListParams) (*models.PostList, error)
	UpdatePost(ctx context.Context, identity *auth.Identity, postID uint, req models.UpdatePostRequest) (*models.Post, error)
	DeletePost(ctx context.Context, identity *auth.Identity, postID uint) error
	GetCategories(ctx context.Context) ([]models.CategoryCount, error)
}

type postService struct {
	postRepo     repositories.PostRepository
	policy       auth.Policy
	defaultImage string
}

func NewPostService(postRepo repositories.PostRepository, defaultImage string) PostService {
	return &postService{
		postRepo:     postRepo,
		defaultImage: defaultString(defaultImage, models.DefaultPostImage),
	}
}

func titleAndSlug(raw string) (string, string, error) {
	title := strings.TrimSpace(raw)
	if title == "" {
		return "", "", models.ErrorValidation{Message: "title is required"}
	}
	slug := helper.Slugify(title)
	if slug == "" {
		return "", "", models.ErrorValidation{Message: "title must contain at least one letter or digit"}
	}
	return title, slug, nil
}

func sanitizedContent(raw string) (string, error) {
	content := helper.SanitizePostContent(raw)
	if content == "" {
		return "", models.ErrorValidation{Message: "content is required"}
	}
	return content, nil
}

// CreatePost stores a post owned by the calling administrator. A title
// whose slug is already taken is rejected by the unique index.
func (s *postService) CreatePost(ctx context.Context, identity *auth.Identity, req models.CreatePostRequest) (*models.Post, error) {
	if err := s.policy.CanManagePosts(identity); err != nil {
		return nil, err
	}

	title, slug, err := titleAndSlug(req.Title)
	if err != nil {
		return nil, err
	}
	content, err := sanitizedContent(req.Content)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		UserID:   identity.UserID,
		Title:    title,
		Slug:     slug,
		Content:  content,
		Category: defaultString(req.Category, models.DefaultPostCategory),
		Image:    defaultString(req.Image, s.defaultImage),
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	return post, nil
}

func (s *postService) GetPosts(ctx context.Context, params models.PostListParams) (*models.PostList, error) {
	params.Page, params.Limit = PageAndLimit(params.Page, params.Limit)

	posts, total, lastMonth, err := s.postRepo.GetList(ctx, params)
	if err != nil {
		return nil, err
	}

	return &models.PostList{Posts: posts, TotalPosts: total, LastMonthPosts: lastMonth}, nil
}

// UpdatePost never changes the owner. Changing the title re-derives the slug.
func (s *postService) UpdatePost(ctx context.Context, identity *auth.Identity, postID uint, req models.UpdatePostRequest) (*models.Post, error) {
	if err := s.policy.CanManagePosts(identity); err != nil {
		return nil, err
	}
	if req.Empty() {
		return nil, models.ErrorValidation{Message: "No changes made"}
	}

	fields := map[string]interface{}{}
	if req.Title != nil {
		title, slug, err := titleAndSlug(*req.Title)
		if err != nil {
			return nil, err
		}
		fields["title"] = title
		fields["slug"] = slug
	}
	if req.Content != nil {
		content, err := sanitizedContent(*req.Content)
		if err != nil {
			return nil, err
		}
		fields["content"] = content
	}
	if req.Category != nil {
		fields["category"] = defaultString(*req.Category, models.DefaultPostCategory)
	}
	if req.Image != nil {
		fields["image"] = defaultString(*req.Image, s.defaultImage)
	}

	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if err := s.postRepo.Update(ctx, post, fields); err != nil {
		return nil, err
	}

	return s.postRepo.GetByID(ctx, postID)
}

func (s *postService) DeletePost(ctx context.Context, identity *auth.Identity, postID uint) error {
	if err := s.policy.CanManagePosts(identity); err != nil {
		return err
	}
	return s.postRepo.Delete(ctx, postID)
}

func (s *postService) GetCategories(ctx context.Context) ([]models.CategoryCount, error) {
	return s.postRepo.CountByCategory(ctx)
}
