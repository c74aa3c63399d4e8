// Package server contains HTTP handlers for the application's API endpoints.
package server

import (
	"github.com/gofiber/fiber/v2"

	"chirp/internal/models"
	"chirp/internal/service"
)

// GetUsers handles GET /api/users
func (s *Server) GetUsers(c *fiber.Ctx) error {
	page, err := s.userService.ListUsers(c.Context(), parsePage(c))
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(page)
}

// GetUserProfile handles GET /api/users/:id. The profile carries the first
// page of the user's posts plus their follower/following counts.
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	user, err := s.userService.GetUserByID(c.Context(), userID)
	if err != nil {
		return respondAppError(c, err)
	}

	posts, err := s.postService.ListPostsByOwner(c.Context(), userID, parsePage(c))
	if err != nil {
		return respondAppError(c, err)
	}

	followingCount, err := s.relRepo.CountFollowing(c.Context(), userID)
	if err != nil {
		return respondAppError(c, err)
	}
	followersCount, err := s.relRepo.CountFollowers(c.Context(), userID)
	if err != nil {
		return respondAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"user":            user,
		"posts":           posts,
		"following_count": followingCount,
		"followers_count": followersCount,
	})
}

// GetMyProfile handles GET /api/users/me
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	user, err := s.userService.GetUserByID(c.Context(), userID)
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(user)
}

// UpdateMyProfile handles PUT /api/users/me
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateProfile(c.Context(), service.UpdateProfileInput{
		UserID:   userID,
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(user)
}

// GetUserPosts handles GET /api/users/:id/posts
func (s *Server) GetUserPosts(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	// A missing owner is a 404, not an empty page.
	if _, err := s.userService.GetUserByID(c.Context(), userID); err != nil {
		return respondAppError(c, err)
	}

	page, err := s.postService.ListPostsByOwner(c.Context(), userID, parsePage(c))
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(page)
}

// PromoteToAdmin handles POST /api/users/:id/promote-admin
func (s *Server) PromoteToAdmin(c *fiber.Ctx) error {
	return s.setAdminStatus(c, true)
}

// DemoteFromAdmin handles POST /api/users/:id/demote-admin
func (s *Server) DemoteFromAdmin(c *fiber.Ctx) error {
	return s.setAdminStatus(c, false)
}

func (s *Server) setAdminStatus(c *fiber.Ctx, admin bool) error {
	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	user, err := s.userService.SetAdmin(c.Context(), targetID, admin)
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(user)
}

// DeleteUser handles DELETE /api/users/:id (admin only). The cascade also
// removes the user's posts and follow edges.
func (s *Server) DeleteUser(c *fiber.Ctx) error {
	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	actorID := c.Locals("userID").(uint)
	if actorID == targetID {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Admins cannot delete their own account"))
	}

	if err := s.userService.DeleteUser(c.Context(), targetID); err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "User deleted",
	})
}
