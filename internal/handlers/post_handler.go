package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/mamalink/mamalink-backend/internal/dto"
	"github.com/mamalink/mamalink-backend/internal/middleware"
	"github.com/mamalink/mamalink-backend/internal/services"
)

type PostHandler struct {
	postService *services.PostService
}

func NewPostHandler(postService *services.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

func (h *PostHandler) Create(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.CreatePostRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	post, err := h.postService.Create(c.Context(), userID, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

func (h *PostHandler) Feed(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	mode := c.Query("mode")

	posts, total, err := h.postService.Feed(c.Context(), userID, mode, page, limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.PostListResponse{
		Posts: posts,
		Pagination: dto.Pagination{
			Page:    page,
			PerPage: limit,
			Total:   total,
		},
	})
}

func (h *PostHandler) Get(c *fiber.Ctx) error {
	postID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid post id")
	}

	post, err := h.postService.Get(c.Context(), postID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(post)
}

func (h *PostHandler) Mine(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	posts, err := h.postService.ListByAuthor(c.Context(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"posts": posts})
}

func (h *PostHandler) Delete(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return unauthorized(c)
	}
	postID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid post id")
	}

	if err := h.postService.Delete(c.Context(), postID, userID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Post deleted"})
}

func (h *PostHandler) Swipe(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return unauthorized(c)
	}
	postID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid post id")
	}

	var req dto.SwipeRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	resp, err := h.postService.Swipe(c.Context(), userID, postID, req.Action)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

func (h *PostHandler) Liked(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	posts, err := h.postService.ListLiked(c.Context(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"posts": posts})
}
