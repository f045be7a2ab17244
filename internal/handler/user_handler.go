package handler

import (
	"github.com/gofiber/fiber/v2"

	"forum-backend/internal/domain"
	"forum-backend/internal/middleware"
	"forum-backend/internal/service/media"
	"forum-backend/internal/service/user"
)

type UserHandler struct {
	userService  user.Service
	mediaService media.Service
}

func NewUserHandler(userService user.Service, mediaService media.Service) *UserHandler {
	return &UserHandler{
		userService:  userService,
		mediaService: mediaService,
	}
}

func (h *UserHandler) Me(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(middleware.GetCurrentUser(c))
}

func (h *UserHandler) GetProfile(c *fiber.Ctx) error {
	profile, err := h.userService.GetByUsername(c.Context(), c.Params("username"))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(profile)
}

func (h *UserHandler) Topics(c *fiber.Ctx) error {
	topics, err := h.userService.Topics(c.Context(), c.Params("username"))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"topics": topics})
}

func (h *UserHandler) Comments(c *fiber.Ctx) error {
	comments, err := h.userService.Comments(c.Context(), c.Params("username"))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"comments": comments})
}

func (h *UserHandler) Followers(c *fiber.Ctx) error {
	followers, err := h.userService.Followers(c.Context(), c.Params("username"))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"followers": followers})
}

func (h *UserHandler) Following(c *fiber.Ctx) error {
	following, err := h.userService.Following(c.Context(), c.Params("username"))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"following": following})
}

func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	var input domain.UpdateProfileInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	updated, err := h.userService.UpdateProfile(c.Context(), userID, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"user": updated})
}

func (h *UserHandler) Follow(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	if err := h.userService.Follow(c.Context(), userID, c.Params("username")); err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Followed"})
}

func (h *UserHandler) Unfollow(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	if err := h.userService.Unfollow(c.Context(), userID, c.Params("username")); err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Unfollowed"})
}

// UploadAvatar stores the uploaded image and points the user's profile at it.
func (h *UserHandler) UploadAvatar(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		return middleware.BadRequest("Missing avatar file")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return middleware.BadRequest("Cannot read avatar file")
	}
	defer file.Close()

	url, err := h.mediaService.Upload(c.Context(), fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"), fileHeader.Size, file)
	if err != nil {
		return err
	}

	if err := h.userService.SetAvatar(c.Context(), userID, url); err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"avatar_url": url})
}
