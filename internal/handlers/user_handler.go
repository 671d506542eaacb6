package handlers

import (
	"errors"
	"fmt"
	"log"

	"chirp/internal/middleware"
	"chirp/internal/models"
	"chirp/internal/services"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles HTTP requests for user profiles and the follow graph.
type UserHandler struct {
	userService *services.UserService
	relService  *services.RelationshipService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *services.UserService, relService *services.RelationshipService) *UserHandler {
	return &UserHandler{
		userService: userService,
		relService:  relService,
	}
}

// RegisterPublicRoutes registers the user routes that need no authentication.
func (h *UserHandler) RegisterPublicRoutes(router fiber.Router) {
	router.Get("/users/:username", h.HandleGetUser)
	router.Get("/users/:username/following", h.HandleListFollowing)
	router.Get("/users/:username/followers", h.HandleListFollowers)
}

// RegisterProtectedRoutes registers the follow routes that require an
// authenticated viewer.
func (h *UserHandler) RegisterProtectedRoutes(router fiber.Router) {
	router.Post("/users/:username/follow", h.HandleFollow)
	router.Delete("/users/:username/follow", h.HandleUnfollow)
}

// HandleGetUser returns a user's public profile.
func (h *UserHandler) HandleGetUser(c *fiber.Ctx) error {
	user, err := h.resolveUsername(c)
	if err != nil {
		return h.respondUserError(c, err)
	}
	return c.JSON(user)
}

// HandleFollow makes the authenticated viewer follow the target user.
// Following someone already followed reports the redundancy; it never
// duplicates the edge.
func (h *UserHandler) HandleFollow(c *fiber.Ctx) error {
	viewerID, ok := middleware.ViewerID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Authentication required",
		})
	}

	target, err := h.resolveUsername(c)
	if err != nil {
		return h.respondUserError(c, err)
	}

	if err := h.relService.Follow(viewerID, target.ID); err != nil {
		switch {
		case errors.Is(err, models.ErrSelfFollow):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Could not follow",
				"error":   err.Error(),
			})
		case errors.Is(err, models.ErrAlreadyFollowing):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"message": "Could not follow",
				"error":   err.Error(),
			})
		case errors.Is(err, models.ErrUserNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "User not found",
			})
		}
		log.Printf("Error following %s by %s: %v", target.Username, viewerID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not follow",
		})
	}

	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("You're now following %s", target.Username),
	})
}

// HandleUnfollow removes the follow edge from the authenticated viewer to the
// target user. Unfollowing someone not followed is still a success.
func (h *UserHandler) HandleUnfollow(c *fiber.Ctx) error {
	viewerID, ok := middleware.ViewerID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Authentication required",
		})
	}

	target, err := h.resolveUsername(c)
	if err != nil {
		return h.respondUserError(c, err)
	}

	if err := h.relService.Unfollow(viewerID, target.ID); err != nil {
		log.Printf("Error unfollowing %s by %s: %v", target.Username, viewerID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not unfollow",
		})
	}

	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("You've unfollowed %s", target.Username),
	})
}

// HandleListFollowing returns the users the target user follows.
func (h *UserHandler) HandleListFollowing(c *fiber.Ctx) error {
	target, err := h.resolveUsername(c)
	if err != nil {
		return h.respondUserError(c, err)
	}

	users, err := h.relService.ListFollowing(target.ID)
	if err != nil {
		log.Printf("Error listing following for %s: %v", target.Username, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not list following",
		})
	}
	return c.JSON(users)
}

// HandleListFollowers returns the users following the target user.
func (h *UserHandler) HandleListFollowers(c *fiber.Ctx) error {
	target, err := h.resolveUsername(c)
	if err != nil {
		return h.respondUserError(c, err)
	}

	users, err := h.relService.ListFollowers(target.ID)
	if err != nil {
		log.Printf("Error listing followers for %s: %v", target.Username, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not list followers",
		})
	}
	return c.JSON(users)
}

func (h *UserHandler) resolveUsername(c *fiber.Ctx) (*models.User, error) {
	return h.userService.GetUserByUsername(c.Params("username"))
}

func (h *UserHandler) respondUserError(c *fiber.Ctx, err error) error {
	if errors.Is(err, models.ErrUserNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "User not found",
		})
	}
	log.Printf("Error resolving user %s: %v", c.Params("username"), err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": "Could not resolve user",
	})
}
