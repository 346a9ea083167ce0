package handlers

import (
	"context"
	"database/sql"
	"errors"
	"log"

	"impulseguard/database"
	"impulseguard/models"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
)

// HandleGetProfile returns the caller's profile.
// GET /api/v1/profile
func HandleGetProfile(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return errorJSON(c, fiber.StatusUnauthorized, "Not authenticated")
	}

	profile, err := fetchProfile(c.Context(), userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return errorJSON(c, fiber.StatusNotFound, "Profile not found")
		}
		log.Printf("Error fetching profile for user %s: %v", userID, err)
		return errorJSON(c, fiber.StatusInternalServerError, "Database error")
	}

	return c.JSON(profile)
}

// HandleUpdateProfile applies a partial update to the caller's profile.
// PUT /api/v1/profile
func HandleUpdateProfile(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return errorJSON(c, fiber.StatusUnauthorized, "Not authenticated")
	}

	var req models.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}

	// COALESCE keeps the stored value when a field is absent from the body.
	query := `
		UPDATE profiles
		SET monthly_budget = COALESCE($2, monthly_budget),
		    currency = COALESCE($3, currency),
		    interests = COALESCE($4, interests),
		    savings_goal_id = COALESCE($5, savings_goal_id),
		    updated_at = now()
		WHERE user_id = $1
		RETURNING user_id, monthly_budget, currency, interests, savings_goal_id, is_premium, updated_at
	`

	// A nil slice encodes as NULL, so COALESCE keeps the stored interests.
	profile, err := scanProfile(database.GetDB().QueryRow(
		c.Context(), query, userID, req.MonthlyBudget, req.Currency, req.Interests, req.SavingsGoalID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return errorJSON(c, fiber.StatusNotFound, "Profile not found")
		}
		log.Printf("Error updating profile for user %s: %v", userID, err)
		return errorJSON(c, fiber.StatusInternalServerError, "Could not update profile")
	}

	return c.JSON(profile)
}

// fetchProfile loads a profile snapshot; the analysis pipeline borrows this
// read-only.
func fetchProfile(ctx context.Context, userID string) (*models.Profile, error) {
	query := `
		SELECT user_id, monthly_budget, currency, interests, savings_goal_id, is_premium, updated_at
		FROM profiles
		WHERE user_id = $1`
	return scanProfile(database.GetDB().QueryRow(ctx, query, userID))
}

func scanProfile(row pgx.Row) (*models.Profile, error) {
	var profile models.Profile
	var budget sql.NullFloat64
	var goalID sql.NullString

	err := row.Scan(
		&profile.UserID, &budget, &profile.Currency, &profile.Interests,
		&goalID, &profile.IsPremium, &profile.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if budget.Valid {
		profile.MonthlyBudget = &budget.Float64
	}
	if goalID.Valid {
		profile.SavingsGoalID = &goalID.String
	}
	return &profile, nil
}
