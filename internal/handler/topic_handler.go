package handler

import (
	"github.com/gofiber/fiber/v2"

	"forum-backend/internal/domain"
	"forum-backend/internal/middleware"
	"forum-backend/internal/service/topic"
)

type TopicHandler struct {
	topicService topic.Service
}

func NewTopicHandler(topicService topic.Service) *TopicHandler {
	return &TopicHandler{topicService: topicService}
}

func (h *TopicHandler) List(c *fiber.Ctx) error {
	params := domain.TopicListParams{
		Search: c.Query("search"),
		Space:  c.Query("space"),
		Sort:   c.Query("sort"),
		Page:   c.QueryInt("page", 1),
		Limit:  c.QueryInt("limit", 10),
	}

	page, err := h.topicService.List(c.Context(), params)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(page)
}

func (h *TopicHandler) Get(c *fiber.Ctx) error {
	found, err := h.topicService.GetBySlug(c.Context(), c.Params("slug"))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(found)
}

func (h *TopicHandler) Create(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	var input domain.CreateTopicInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	created, err := h.topicService.Create(c.Context(), userID, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"topic":   created,
		"message": "Topic successfully created!",
	})
}

func (h *TopicHandler) Delete(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)
	topicID := c.Params("topicId")

	if err := h.topicService.Delete(c.Context(), topicID, userID); err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"topic_id": topicID,
		"message":  "Topic deleted successfully!",
	})
}

func (h *TopicHandler) Upvote(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	updated, err := h.topicService.ToggleUpvote(c.Context(), c.Params("topicId"), userID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(topicVoteResponse(updated, userID))
}

func (h *TopicHandler) Downvote(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	updated, err := h.topicService.ToggleDownvote(c.Context(), c.Params("topicId"), userID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(topicVoteResponse(updated, userID))
}

func (h *TopicHandler) VoteOnPoll(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	var input struct {
		OptionIndex int `json:"option_index"`
	}
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	poll, err := h.topicService.VoteOnPoll(c.Context(), c.Params("topicId"), userID, input.OptionIndex)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"poll":     poll,
		"topic_id": c.Params("topicId"),
		"message":  "Vote registered!",
	})
}

func (h *TopicHandler) TopContributors(c *fiber.Ctx) error {
	contributors, err := h.topicService.TopContributors(c.Context())
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(contributors)
}

func (h *TopicHandler) Spaces(c *fiber.Ctx) error {
	spaces, err := h.topicService.Spaces(c.Context())
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(spaces)
}

func topicVoteResponse(t *domain.Topic, userID string) fiber.Map {
	return fiber.Map{
		"topic_id":   t.ID,
		"user_id":    userID,
		"upvoters":   t.Upvoters,
		"downvoters": t.Downvoters,
	}
}
