// Package server contains HTTP handlers for the application's API endpoints.
package server

import (
	"github.com/gofiber/fiber/v2"
)

// FollowUser handles POST /api/users/:id/follow. Repeating the request is
// a no-op, so retries after a timeout are safe.
func (s *Server) FollowUser(c *fiber.Ctx) error {
	followedID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	followerID := c.Locals("userID").(uint)
	if err := s.relService.Follow(c.Context(), followerID, followedID); err != nil {
		return respondAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"following": true,
	})
}

// UnfollowUser handles DELETE /api/users/:id/follow
func (s *Server) UnfollowUser(c *fiber.Ctx) error {
	followedID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	followerID := c.Locals("userID").(uint)
	if err := s.relService.Unfollow(c.Context(), followerID, followedID); err != nil {
		return respondAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"following": false,
	})
}

// GetFollowStatus handles GET /api/users/:id/follow
func (s *Server) GetFollowStatus(c *fiber.Ctx) error {
	followedID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	followerID := c.Locals("userID").(uint)
	following, err := s.relService.IsFollowing(c.Context(), followerID, followedID)
	if err != nil {
		return respondAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"following": following,
	})
}

// GetFollowing handles GET /api/users/:id/following
func (s *Server) GetFollowing(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	page, err := s.relService.Following(c.Context(), userID, parsePage(c))
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(page)
}

// GetFollowers handles GET /api/users/:id/followers
func (s *Server) GetFollowers(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	page, err := s.relService.Followers(c.Context(), userID, parsePage(c))
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(page)
}
