package handlers

import (
	"database/sql"
	"log"

	"impulseguard/database"
	"impulseguard/models"
	"impulseguard/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// HandleListTransactions returns the caller's transactions, newest first.
// GET /api/v1/transactions?page=1&pageSize=20
func HandleListTransactions(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return errorJSON(c, fiber.StatusUnauthorized, "Not authenticated")
	}

	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("pageSize", 20)
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}

	db := database.GetDB()
	ctx := c.Context()

	var totalItems int
	if err := db.QueryRow(ctx, `SELECT COUNT(*) FROM transactions WHERE user_id = $1`, userID).Scan(&totalItems); err != nil {
		log.Printf("Error counting transactions for user %s: %v", userID, err)
		return errorJSON(c, fiber.StatusInternalServerError, "Database error")
	}

	query := `
		SELECT id, user_id, amount, description, analysis, verdict, created_at
		FROM transactions
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := db.Query(ctx, query, userID, pageSize, (page-1)*pageSize)
	if err != nil {
		log.Printf("Error listing transactions for user %s: %v", userID, err)
		return errorJSON(c, fiber.StatusInternalServerError, "Database error")
	}
	defer rows.Close()

	transactions := []models.Transaction{}
	for rows.Next() {
		var t models.Transaction
		var analysisText, verdict sql.NullString
		if err := rows.Scan(&t.ID, &t.UserID, &t.Amount, &t.Description, &analysisText, &verdict, &t.CreatedAt); err != nil {
			log.Printf("Error scanning transaction row: %v", err)
			continue
		}
		if analysisText.Valid {
			t.Analysis = &analysisText.String
		}
		if verdict.Valid {
			t.Verdict = &verdict.String
		}
		transactions = append(transactions, t)
	}

	return c.JSON(fiber.Map{
		"data":       transactions,
		"pagination": utils.CreatePagination(totalItems, page, pageSize),
	})
}

// HandleCreateTransaction logs a purchase, including the "accept" decision
// after an analysis. Rows are immutable once created.
// POST /api/v1/transactions
func HandleCreateTransaction(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return errorJSON(c, fiber.StatusUnauthorized, "Not authenticated")
	}

	var req models.CreateTransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}
	if req.Description == "" || req.Amount <= 0 {
		return errorJSON(c, fiber.StatusBadRequest, "Missing required fields (amount, description)")
	}

	query := `
		INSERT INTO transactions (id, user_id, amount, description, analysis, verdict)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, user_id, amount, description, analysis, verdict, created_at`

	var t models.Transaction
	var analysisText, verdict sql.NullString
	err := database.GetDB().QueryRow(
		c.Context(), query, uuid.New().String(), userID, req.Amount, req.Description, req.Analysis, req.Verdict,
	).Scan(&t.ID, &t.UserID, &t.Amount, &t.Description, &analysisText, &verdict, &t.CreatedAt)
	if err != nil {
		log.Printf("Error creating transaction for user %s: %v", userID, err)
		return errorJSON(c, fiber.StatusInternalServerError, "Could not create transaction")
	}

	if analysisText.Valid {
		t.Analysis = &analysisText.String
	}
	if verdict.Valid {
		t.Verdict = &verdict.String
	}

	return c.Status(fiber.StatusCreated).JSON(t)
}

// HandleDeleteTransaction removes a transaction by explicit user action.
// DELETE /api/v1/transactions/:transactionId
func HandleDeleteTransaction(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return errorJSON(c, fiber.StatusUnauthorized, "Not authenticated")
	}

	transactionID := c.Params("transactionId")
	tag, err := database.GetDB().Exec(
		c.Context(), `DELETE FROM transactions WHERE id = $1 AND user_id = $2`, transactionID, userID,
	)
	if err != nil {
		log.Printf("Error deleting transaction %s: %v", transactionID, err)
		return errorJSON(c, fiber.StatusInternalServerError, "Could not delete transaction")
	}
	if tag.RowsAffected() == 0 {
		return errorJSON(c, fiber.StatusNotFound, "Transaction not found")
	}

	return c.JSON(fiber.Map{"deleted": true})
}
