package services

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"clan-bingo-system/apperrors"
	"clan-bingo-system/middleware"
	"clan-bingo-system/models"
	"clan-bingo-system/utils"
)

// ProfileService manages player profiles and the admin flag.
type ProfileService struct {
	DB *gorm.DB
}

func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{DB: db}
}

// CreateProfile registers the acting identifier with a username. One
// profile per identifier; usernames are unique.
func (s *ProfileService) CreateProfile(c *fiber.Ctx) error {
	actor := middleware.ActorFrom(c)

	var req struct {
		Username string `json:"username"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON"})
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" {
		return utils.ErrorJSON(c, apperrors.Validationf("username is required"))
	}

	var profile models.Profile
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var count int64
		tx.Model(&models.Profile{}).
			Where("username = ? OR user_identifier = ?", req.Username, actor.Identifier).
			Count(&count)
		if count > 0 {
			return apperrors.Conflictf("username or identifier already registered")
		}
		profile = models.Profile{
			ID:             uuid.NewString(),
			Username:       req.Username,
			UserIdentifier: actor.Identifier,
		}
		return tx.Create(&profile).Error
	})
	if err != nil {
		return utils.ErrorJSON(c, err)
	}

	log.Printf("[Profiles] created profile %q", req.Username)
	return c.Status(201).JSON(profile)
}

// GetMe returns the acting player's profile.
func (s *ProfileService) GetMe(c *fiber.Ctx) error {
	actor := middleware.ActorFrom(c)

	var profile models.Profile
	err := s.DB.Where("user_identifier = ?", actor.Identifier).First(&profile).Error
	if err == gorm.ErrRecordNotFound {
		return utils.ErrorJSON(c, apperrors.NotFoundf("no profile for this identifier"))
	}
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to fetch profile"})
	}
	return c.JSON(profile)
}

// SetAdmin grants or revokes the admin role on a profile.
func (s *ProfileService) SetAdmin(c *fiber.Ctx) error {
	profileID := c.Params("id")

	var req struct {
		IsAdmin bool `json:"is_admin"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON"})
	}

	var profile models.Profile
	err := s.DB.First(&profile, "id = ?", profileID).Error
	if err == gorm.ErrRecordNotFound {
		return utils.ErrorJSON(c, apperrors.NotFoundf("profile %s not found", profileID))
	}
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to fetch profile"})
	}

	profile.IsAdmin = req.IsAdmin
	if err := s.DB.Save(&profile).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to update profile"})
	}

	log.Printf("[Profiles] %q admin=%t", profile.Username, profile.IsAdmin)
	return c.JSON(profile)
}
