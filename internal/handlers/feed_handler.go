package handlers

import (
	"errors"
	"log"
	"strconv"

	"chirp/internal/middleware"
	"chirp/internal/models"
	"chirp/internal/services"

	"github.com/gofiber/fiber/v2"
)

// FeedHandler handles HTTP requests for post streams.
type FeedHandler struct {
	feedService *services.FeedService
}

// NewFeedHandler creates a new FeedHandler.
func NewFeedHandler(feedService *services.FeedService) *FeedHandler {
	return &FeedHandler{
		feedService: feedService,
	}
}

// RegisterPublicRoutes registers the stream routes that need no authentication.
func (h *FeedHandler) RegisterPublicRoutes(router fiber.Router) {
	router.Get("/stream/global", h.HandleGlobalStream)
	router.Get("/users/:username/stream", h.HandleUserStream)
}

// RegisterProtectedRoutes registers the stream routes that require an
// authenticated viewer.
func (h *FeedHandler) RegisterProtectedRoutes(router fiber.Router) {
	router.Get("/stream", h.HandleStream)
}

// HandleStream returns the authenticated viewer's feed: their own posts plus
// the posts of everyone they follow, most recent first.
func (h *FeedHandler) HandleStream(c *fiber.Ctx) error {
	viewerID, ok := middleware.ViewerID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Authentication required",
		})
	}

	posts, err := h.feedService.GetStream(viewerID, streamLimit(c))
	if err != nil {
		log.Printf("Error composing stream for user %s: %v", viewerID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve stream",
		})
	}
	return c.JSON(posts)
}

// HandleUserStream returns a single user's own posts. An unknown username is
// a 404, distinct from a known user with no posts.
func (h *FeedHandler) HandleUserStream(c *fiber.Ctx) error {
	username := c.Params("username")
	posts, err := h.feedService.GetUserStream(username, streamLimit(c))
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "User not found",
			})
		}
		log.Printf("Error composing stream for username %s: %v", username, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve stream",
		})
	}
	return c.JSON(posts)
}

// HandleGlobalStream returns the most recent posts system-wide, the anonymous
// home view.
func (h *FeedHandler) HandleGlobalStream(c *fiber.Ctx) error {
	posts, err := h.feedService.GetGlobalStream(streamLimit(c))
	if err != nil {
		log.Printf("Error composing global stream: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve stream",
		})
	}
	return c.JSON(posts)
}

// streamLimit reads the optional ?limit= query parameter; the service applies
// the default when it is absent or not a positive number.
func streamLimit(c *fiber.Ctx) int {
	limit, err := strconv.Atoi(c.Query("limit"))
	if err != nil {
		return 0
	}
	return limit
}
