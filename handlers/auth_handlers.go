package handlers

import (
	"errors"
	"log"
	"strings"
	"time"

	"impulseguard/config"
	"impulseguard/database"
	"impulseguard/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"
)

// HandleRegister creates a new user with an empty profile.
// POST /api/v1/auth/register
func HandleRegister(c *fiber.Ctx) error {
	var req models.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return errorJSON(c, fiber.StatusBadRequest, "Missing required fields (name, email, password)")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return errorJSON(c, fiber.StatusInternalServerError, "Could not process password")
	}

	db := database.GetDB()
	ctx := c.Context()

	tx, err := db.Begin(ctx)
	if err != nil {
		log.Printf("Error starting transaction for registration: %v", err)
		return errorJSON(c, fiber.StatusInternalServerError, "Database error")
	}
	defer tx.Rollback(ctx)

	var user models.User
	userID := uuid.New().String()
	query := `
		INSERT INTO users (id, name, email, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, email, created_at, updated_at
	`
	err = tx.QueryRow(ctx, query, userID, req.Name, req.Email, string(hashedPassword)).Scan(
		&user.ID, &user.Name, &user.Email, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		log.Printf("Error creating user: %v", err)
		return errorJSON(c, fiber.StatusInternalServerError, "Could not create user")
	}

	if _, err := tx.Exec(ctx, `INSERT INTO profiles (user_id) VALUES ($1)`, user.ID); err != nil {
		log.Printf("Error creating profile for user %s: %v", user.ID, err)
		return errorJSON(c, fiber.StatusInternalServerError, "Could not create profile")
	}

	if err := tx.Commit(ctx); err != nil {
		log.Printf("Error committing registration: %v", err)
		return errorJSON(c, fiber.StatusInternalServerError, "Database error")
	}

	token, err := createJWT(user.ID)
	if err != nil {
		log.Printf("Error creating JWT for user %s: %v", user.ID, err)
		return errorJSON(c, fiber.StatusInternalServerError, "Could not sign token")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"accessToken": token, "user": user})
}

// HandleLogin authenticates a user and returns a JWT token.
// POST /api/v1/auth/login
func HandleLogin(c *fiber.Ctx) error {
	var req models.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))

	var user models.User
	var passwordHash string
	query := `
		SELECT id, name, email, password_hash, created_at, updated_at
		FROM users
		WHERE email = $1`

	err := database.GetDB().QueryRow(c.Context(), query, req.Email).Scan(
		&user.ID, &user.Name, &user.Email, &passwordHash, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return errorJSON(c, fiber.StatusUnauthorized, "Invalid credentials")
		}
		log.Printf("Database error during login for email %s: %v", req.Email, err)
		return errorJSON(c, fiber.StatusInternalServerError, "Database error")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(req.Password)); err != nil {
		return errorJSON(c, fiber.StatusUnauthorized, "Invalid credentials")
	}

	token, err := createJWT(user.ID)
	if err != nil {
		log.Printf("Error creating JWT for user %s: %v", user.ID, err)
		return errorJSON(c, fiber.StatusInternalServerError, "Could not sign token")
	}

	return c.JSON(fiber.Map{"accessToken": token, "user": user})
}

// HandleGetMe returns the authenticated user.
// GET /api/v1/auth/me
func HandleGetMe(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return errorJSON(c, fiber.StatusUnauthorized, "Not authenticated")
	}

	var user models.User
	query := `SELECT id, name, email, created_at, updated_at FROM users WHERE id = $1`
	err := database.GetDB().QueryRow(c.Context(), query, userID).Scan(
		&user.ID, &user.Name, &user.Email, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return errorJSON(c, fiber.StatusUnauthorized, "User no longer exists")
		}
		log.Printf("Database error fetching user %s: %v", userID, err)
		return errorJSON(c, fiber.StatusInternalServerError, "Database error")
	}

	return c.JSON(fiber.Map{"user": user})
}

func createJWT(userID string) (string, error) {
	claims := models.JwtClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour * 72)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.AppConfig.JWTSecret))
}
