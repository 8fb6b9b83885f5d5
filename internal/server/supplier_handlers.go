package server

import (
	"strings"

	"gastronet/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetSuppliers handles GET /api/suppliers
func (s *Server) GetSuppliers(c *fiber.Ctx) error {
	ctx := c.UserContext()

	suppliers, err := s.supplierRepo.List(ctx)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(suppliers)
}

// SearchSuppliers handles GET /api/suppliers/search?q=
func (s *Server) SearchSuppliers(c *fiber.Ctx) error {
	ctx := c.UserContext()

	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Search query is required"))
	}

	suppliers, err := s.supplierRepo.Search(ctx, query)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(suppliers)
}

// ClaimSupplier handles POST /api/suppliers/:id/claim
//
// Only supplier accounts may claim a directory entry.
func (s *Server) ClaimSupplier(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)
	supplierID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	user, getErr := s.userRepo.GetByID(ctx, userID)
	if getErr != nil {
		return respondServiceError(c, getErr)
	}
	if user.Role != models.RoleSupplier {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewForbiddenError("Only supplier accounts can claim directory entries"))
	}

	if claimErr := s.supplierRepo.Claim(ctx, supplierID, userID); claimErr != nil {
		return respondServiceError(c, claimErr)
	}

	supplier, getErr := s.supplierRepo.GetByID(ctx, supplierID)
	if getErr != nil {
		return respondServiceError(c, getErr)
	}
	return c.JSON(supplier)
}
