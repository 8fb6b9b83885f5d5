package server

import (
	"gastronet/internal/models"
	"gastronet/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateJobOffer handles POST /api/jobs
func (s *Server) CreateJobOffer(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Position    string `json:"position"`
		Location    string `json:"location"`
		Salary      string `json:"salary"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	offer, err := s.jobService.CreateJobOffer(ctx, service.CreateJobOfferInput{
		OwnerID:     userID,
		Title:       req.Title,
		Description: req.Description,
		Position:    req.Position,
		Location:    req.Location,
		Salary:      req.Salary,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(offer)
}

// GetJobOffers handles GET /api/jobs
func (s *Server) GetJobOffers(c *fiber.Ctx) error {
	ctx := c.UserContext()
	p := parsePagination(c, 20)

	offers, err := s.jobService.ListActiveOffers(ctx, p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(offers)
}

// GetMyJobOffers handles GET /api/jobs/me
func (s *Server) GetMyJobOffers(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	offers, err := s.jobService.ListOwnerOffers(ctx, userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(offers)
}

// GetJobOffer handles GET /api/jobs/:id
func (s *Server) GetJobOffer(c *fiber.Ctx) error {
	ctx := c.UserContext()
	offerID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	offer, getErr := s.jobService.GetJobOffer(ctx, offerID)
	if getErr != nil {
		return respondServiceError(c, getErr)
	}

	return c.JSON(offer)
}

// CloseJobOffer handles POST /api/jobs/:id/close
func (s *Server) CloseJobOffer(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)
	offerID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if closeErr := s.jobService.CloseJobOffer(ctx, offerID, userID); closeErr != nil {
		return respondServiceError(c, closeErr)
	}

	return c.JSON(fiber.Map{"status": models.JobOfferStatusClosed})
}
