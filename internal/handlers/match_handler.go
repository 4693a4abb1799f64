package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/mamalink/mamalink-backend/internal/dto"
	"github.com/mamalink/mamalink-backend/internal/middleware"
	"github.com/mamalink/mamalink-backend/internal/services"
)

type MatchHandler struct {
	matchingService   *services.MatchingService
	moderationService *services.ModerationService
}

func NewMatchHandler(matchingService *services.MatchingService, moderationService *services.ModerationService) *MatchHandler {
	return &MatchHandler{matchingService: matchingService, moderationService: moderationService}
}

// Apply registers the caller as an applicant on the post. Swiping
// right does the same thing; this endpoint exists for direct applies
// from the post detail screen.
func (h *MatchHandler) Apply(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return unauthorized(c)
	}
	postID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid post id")
	}

	match, err := h.matchingService.Apply(c.Context(), postID, userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(match)
}

func (h *MatchHandler) Applicants(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return unauthorized(c)
	}
	postID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid post id")
	}

	applicants, err := h.matchingService.ListApplicants(c.Context(), postID, userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ApplicantListResponse{Applicants: applicants})
}

func (h *MatchHandler) Accept(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return unauthorized(c)
	}
	postID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid post id")
	}
	matchID, err := uuid.Parse(c.Params("matchId"))
	if err != nil {
		return badRequest(c, "Invalid match id")
	}

	match, err := h.matchingService.Accept(c.Context(), postID, matchID, userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(match)
}

// Complete closes a matched post and reviews the accepted applicant in
// one step.
func (h *MatchHandler) Complete(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return unauthorized(c)
	}
	postID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid post id")
	}

	var req dto.CompleteWithReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := h.moderationService.CheckContent(req.Comment); err != nil {
		return respondError(c, err)
	}

	review, err := h.matchingService.CompleteAndReview(c.Context(), postID, userID, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(review)
}

func (h *MatchHandler) MyMatches(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	matches, err := h.matchingService.ListMyMatches(c.Context(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"matches": matches})
}

// UserReviews lists the reviews a user has received; it backs the
// trust score shown on their profile.
func (h *MatchHandler) UserReviews(c *fiber.Ctx) error {
	revieweeID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return badRequest(c, "Invalid user id")
	}

	reviews, err := h.matchingService.ListReviews(c.Context(), revieweeID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ReviewListResponse{Reviews: reviews})
}
