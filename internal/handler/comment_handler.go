package handler

import (
	"github.com/gofiber/fiber/v2"

	"forum-backend/internal/domain"
	"forum-backend/internal/middleware"
	"forum-backend/internal/service/comment"
)

type CommentHandler struct {
	commentService comment.Service
}

func NewCommentHandler(commentService comment.Service) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// List returns a topic's whole thread. Unknown topics yield an empty list.
func (h *CommentHandler) List(c *fiber.Ctx) error {
	comments, err := h.commentService.ListThread(c.Context(), c.Params("topicId"))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"comments": comments})
}

func (h *CommentHandler) Create(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	var input domain.CreateCommentInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	created, err := h.commentService.Create(c.Context(), userID, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"comment": created})
}

func (h *CommentHandler) Upvote(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	updated, err := h.commentService.ToggleUpvote(c.Context(), c.Params("commentId"), userID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(voteResponse(updated, userID))
}

func (h *CommentHandler) Downvote(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	updated, err := h.commentService.ToggleDownvote(c.Context(), c.Params("commentId"), userID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(voteResponse(updated, userID))
}

func (h *CommentHandler) Delete(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	deletedIDs, err := h.commentService.Delete(c.Context(), c.Params("commentId"), userID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"deleted_comment_ids": deletedIDs,
	})
}

func (h *CommentHandler) TopHelpers(c *fiber.Ctx) error {
	helpers, err := h.commentService.TopHelpers(c.Context())
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(helpers)
}

func voteResponse(comment *domain.Comment, userID string) fiber.Map {
	return fiber.Map{
		"comment_id": comment.ID,
		"user_id":    userID,
		"upvoters":   comment.Upvoters,
		"downvoters": comment.Downvoters,
	}
}
