package handlers

import (
	"errors"
	"log"

	"impulseguard/database"
	"impulseguard/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// HandleListSavingsGoals returns every savings goal owned by the caller.
// GET /api/v1/savings
func HandleListSavingsGoals(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return errorJSON(c, fiber.StatusUnauthorized, "Not authenticated")
	}

	query := `
		SELECT id, user_id, name, target_amount, saved_amount, created_at, updated_at
		FROM savings_goals
		WHERE user_id = $1
		ORDER BY created_at DESC`

	rows, err := database.GetDB().Query(c.Context(), query, userID)
	if err != nil {
		log.Printf("Error listing savings goals for user %s: %v", userID, err)
		return errorJSON(c, fiber.StatusInternalServerError, "Database error")
	}
	defer rows.Close()

	goals := []models.SavingsGoal{}
	for rows.Next() {
		var g models.SavingsGoal
		if err := rows.Scan(&g.ID, &g.UserID, &g.Name, &g.TargetAmount, &g.SavedAmount, &g.CreatedAt, &g.UpdatedAt); err != nil {
			log.Printf("Error scanning savings goal row: %v", err)
			continue
		}
		goals = append(goals, g)
	}

	return c.JSON(fiber.Map{"data": goals})
}

// HandleCreateSavingsGoal creates a goal and makes it the active one on the
// caller's profile.
// POST /api/v1/savings
func HandleCreateSavingsGoal(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return errorJSON(c, fiber.StatusUnauthorized, "Not authenticated")
	}

	var req models.CreateSavingsGoalRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}
	if req.Name == "" || req.TargetAmount <= 0 {
		return errorJSON(c, fiber.StatusBadRequest, "Missing required fields (name, target_amount)")
	}

	db := database.GetDB()
	ctx := c.Context()

	tx, err := db.Begin(ctx)
	if err != nil {
		log.Printf("Error starting transaction for savings goal: %v", err)
		return errorJSON(c, fiber.StatusInternalServerError, "Database error")
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO savings_goals (id, user_id, name, target_amount)
		VALUES ($1, $2, $3, $4)
		RETURNING id, user_id, name, target_amount, saved_amount, created_at, updated_at`

	var g models.SavingsGoal
	err = tx.QueryRow(ctx, query, uuid.New().String(), userID, req.Name, req.TargetAmount).Scan(
		&g.ID, &g.UserID, &g.Name, &g.TargetAmount, &g.SavedAmount, &g.CreatedAt, &g.UpdatedAt,
	)
	if err != nil {
		log.Printf("Error creating savings goal for user %s: %v", userID, err)
		return errorJSON(c, fiber.StatusInternalServerError, "Could not create savings goal")
	}

	if _, err := tx.Exec(ctx, `UPDATE profiles SET savings_goal_id = $1, updated_at = now() WHERE user_id = $2`, g.ID, userID); err != nil {
		log.Printf("Error setting active savings goal for user %s: %v", userID, err)
		return errorJSON(c, fiber.StatusInternalServerError, "Could not update profile")
	}

	if err := tx.Commit(ctx); err != nil {
		log.Printf("Error committing savings goal: %v", err)
		return errorJSON(c, fiber.StatusInternalServerError, "Database error")
	}

	return c.Status(fiber.StatusCreated).JSON(g)
}

// HandleUpdateSavingsGoal applies a partial edit to a goal.
// PUT /api/v1/savings/:goalId
func HandleUpdateSavingsGoal(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return errorJSON(c, fiber.StatusUnauthorized, "Not authenticated")
	}

	var req models.UpdateSavingsGoalRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}

	query := `
		UPDATE savings_goals
		SET name = COALESCE($3, name),
		    target_amount = COALESCE($4, target_amount),
		    updated_at = now()
		WHERE id = $1 AND user_id = $2
		RETURNING id, user_id, name, target_amount, saved_amount, created_at, updated_at`

	var g models.SavingsGoal
	err := database.GetDB().QueryRow(
		c.Context(), query, c.Params("goalId"), userID, req.Name, req.TargetAmount,
	).Scan(&g.ID, &g.UserID, &g.Name, &g.TargetAmount, &g.SavedAmount, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return errorJSON(c, fiber.StatusNotFound, "Savings goal not found")
		}
		log.Printf("Error updating savings goal: %v", err)
		return errorJSON(c, fiber.StatusInternalServerError, "Could not update savings goal")
	}

	return c.JSON(g)
}

// HandleCreditSavingsGoal credits a declined purchase amount toward a goal
// (the "decline" decision from an analysis overlay).
// POST /api/v1/savings/:goalId/credit
func HandleCreditSavingsGoal(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return errorJSON(c, fiber.StatusUnauthorized, "Not authenticated")
	}

	var req models.CreditSavingsRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}
	if req.Amount <= 0 {
		return errorJSON(c, fiber.StatusBadRequest, "Amount must be positive")
	}

	query := `
		UPDATE savings_goals
		SET saved_amount = saved_amount + $3,
		    updated_at = now()
		WHERE id = $1 AND user_id = $2
		RETURNING id, user_id, name, target_amount, saved_amount, created_at, updated_at`

	var g models.SavingsGoal
	err := database.GetDB().QueryRow(
		c.Context(), query, c.Params("goalId"), userID, req.Amount,
	).Scan(&g.ID, &g.UserID, &g.Name, &g.TargetAmount, &g.SavedAmount, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return errorJSON(c, fiber.StatusNotFound, "Savings goal not found")
		}
		log.Printf("Error crediting savings goal: %v", err)
		return errorJSON(c, fiber.StatusInternalServerError, "Could not credit savings goal")
	}

	return c.JSON(g)
}
