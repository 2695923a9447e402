package httpapi

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/okdong/marketplace/internal/server/models"
)

type createPostRequest struct {
	MarketType string `json:"marketType"`
	Title      string `json:"title"`
	Content    string `json:"content"`
}

type postResponse struct {
	ID             int64     `json:"id"`
	UserID         int64     `json:"userId"`
	MarketType     string    `json:"marketType"`
	DocumentNumber int64     `json:"documentNumber"`
	Title          string    `json:"title"`
	Content        string    `json:"content"`
	CommentCount   int64     `json:"commentCount"`
	BookmarkCount  int64     `json:"bookmarkCount"`
	CreatedAt      time.Time `json:"createdAt"`
}

func toPostResponse(p *models.Post) postResponse {
	return postResponse{
		ID:             p.ID,
		UserID:         p.UserID,
		MarketType:     p.MarketType,
		DocumentNumber: p.DocumentNumber,
		Title:          p.Title,
		Content:        p.Content,
		CommentCount:   p.CommentCount,
		BookmarkCount:  p.BookmarkCount,
		CreatedAt:      p.CreatedAt,
	}
}

func (s *Server) handleCreatePost(c *fiber.Ctx) error {
	claims := requestClaims(c)

	var req createPostRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid request body")
	}
	if req.MarketType == "" || req.Title == "" {
		return fail(c, fiber.StatusBadRequest, "marketType and title are required")
	}

	post, err := s.posts.Create(c.Context(), &models.Post{
		UserID:     claims.UserID,
		MarketType: req.MarketType,
		Title:      req.Title,
		Content:    req.Content,
	})
	if err != nil {
		return failErr(c, err)
	}
	return created(c, toPostResponse(post))
}

func (s *Server) handleGetPost(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid post id")
	}

	post, err := s.posts.GetByID(c.Context(), id)
	if err != nil {
		return failErr(c, err)
	}
	return success(c, toPostResponse(post))
}

type createCommentRequest struct {
	Content string `json:"content"`
}

func (s *Server) handleAddComment(c *fiber.Ctx) error {
	claims := requestClaims(c)

	postID, err := pathID(c, "id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid post id")
	}

	var req createCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid request body")
	}
	if req.Content == "" {
		return fail(c, fiber.StatusBadRequest, "content is required")
	}

	comment, err := s.posts.AddComment(c.Context(), &models.Comment{
		PostID:  postID,
		UserID:  claims.UserID,
		Content: req.Content,
	})
	if err != nil {
		return failErr(c, err)
	}
	return created(c, fiber.Map{
		"id":        comment.ID,
		"postId":    comment.PostID,
		"userId":    comment.UserID,
		"content":   comment.Content,
		"createdAt": comment.CreatedAt,
	})
}

func (s *Server) handleDeleteComment(c *fiber.Ctx) error {
	claims := requestClaims(c)

	commentID, err := pathID(c, "id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid comment id")
	}

	if err := s.posts.DeleteComment(c.Context(), commentID, claims.UserID); err != nil {
		return failErr(c, err)
	}
	return successMessage(c, "comment deleted")
}

func (s *Server) handleBookmark(c *fiber.Ctx) error {
	claims := requestClaims(c)

	postID, err := pathID(c, "postId")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid post id")
	}

	if err := s.posts.Bookmark(c.Context(), claims.UserID, postID); err != nil {
		return failErr(c, err)
	}
	return successMessage(c, "bookmarked")
}

func (s *Server) handleUnbookmark(c *fiber.Ctx) error {
	claims := requestClaims(c)

	postID, err := pathID(c, "postId")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid post id")
	}

	if err := s.posts.Unbookmark(c.Context(), claims.UserID, postID); err != nil {
		return failErr(c, err)
	}
	return successMessage(c, "bookmark removed")
}

func (s *Server) handleBookmarkStatus(c *fiber.Ctx) error {
	claims := requestClaims(c)

	postID, err := pathID(c, "postId")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid post id")
	}

	exists, err := s.posts.IsBookmarked(c.Context(), claims.UserID, postID)
	if err != nil {
		return failErr(c, err)
	}
	return success(c, fiber.Map{"bookmarked": exists})
}

func pathID(c *fiber.Ctx, name string) (int64, error) {
	return strconv.ParseInt(c.Params(name), 10, 64)
}
