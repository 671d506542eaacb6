package handlers

import (
	"errors"
	"log"

	"chirp/internal/middleware"
	"chirp/internal/models"
	"chirp/internal/services"

	"github.com/gofiber/fiber/v2"
)

// PostHandler handles HTTP requests for posts.
type PostHandler struct {
	postService *services.PostService
}

// NewPostHandler creates a new PostHandler.
func NewPostHandler(postService *services.PostService) *PostHandler {
	return &PostHandler{
		postService: postService,
	}
}

// RegisterPublicRoutes registers the post routes that need no authentication.
func (h *PostHandler) RegisterPublicRoutes(router fiber.Router) {
	router.Get("/posts/:id", h.HandleGetPost)
}

// RegisterProtectedRoutes registers the post routes that require an
// authenticated viewer.
func (h *PostHandler) RegisterProtectedRoutes(router fiber.Router) {
	router.Post("/posts", h.HandleCreatePost)
}

// CreatePostRequest represents the request body for posting.
type CreatePostRequest struct {
	Content string `json:"content"`
}

// HandleCreatePost creates a post authored by the authenticated viewer.
func (h *PostHandler) HandleCreatePost(c *fiber.Ctx) error {
	viewerID, ok := middleware.ViewerID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Authentication required",
		})
	}

	var req CreatePostRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing create post request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	post, err := h.postService.CreatePost(viewerID, req.Content)
	if err != nil {
		if errors.Is(err, models.ErrEmptyContent) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Could not create post",
				"error":   err.Error(),
			})
		}
		// ErrAuthorNotFound means the authenticated viewer no longer exists;
		// that is an internal fault, not a user-correctable one.
		log.Printf("Error creating post for user %s: %v", viewerID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create post",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}

// HandleGetPost retrieves a single post by its ID.
func (h *PostHandler) HandleGetPost(c *fiber.Ctx) error {
	postID := c.Params("id")
	post, err := h.postService.GetPostByID(postID)
	if err != nil {
		if errors.Is(err, models.ErrPostNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Post not found",
			})
		}
		log.Printf("Error getting post %s: %v", postID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve post",
		})
	}
	return c.JSON(post)
}
