package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// --- JWT & Auth ---

type JwtClaims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// --- Core Models ---

// User is an account holder. Profiles, transactions and savings goals all
// hang off the user id.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Profile carries the read-mostly context injected into analysis prompts:
// budget, currency, interests and the active savings goal.
type Profile struct {
	UserID        string    `json:"user_id"`
	MonthlyBudget *float64  `json:"monthly_budget,omitempty"`
	Currency      string    `json:"currency"`
	Interests     []string  `json:"interests,omitempty"`
	SavingsGoalID *string   `json:"savings_goal_id,omitempty"`
	IsPremium     bool      `json:"is_premium"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Transaction is a logged purchase. Rows are created when a user logs a
// purchase or accepts an analyzed cart, and never mutated afterwards.
type Transaction struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Amount      float64   `json:"amount"`
	Description string    `json:"description"`
	Analysis    *string   `json:"analysis,omitempty"`
	Verdict     *string   `json:"verdict,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// SavingsGoal tracks money set aside, including amounts credited when a user
// declines an analyzed purchase.
type SavingsGoal struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	Name         string    `json:"name"`
	TargetAmount float64   `json:"target_amount"`
	SavedAmount  float64   `json:"saved_amount"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// --- API Request Structs ---

// UpdateProfileRequest defines the body for profile edits.
type UpdateProfileRequest struct {
	MonthlyBudget *float64 `json:"monthly_budget,omitempty"`
	Currency      *string  `json:"currency,omitempty"`
	Interests     []string `json:"interests,omitempty"`
	SavingsGoalID *string  `json:"savings_goal_id,omitempty"`
}

// CreateTransactionRequest defines the body for logging a purchase.
type CreateTransactionRequest struct {
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	Analysis    *string `json:"analysis,omitempty"`
	Verdict     *string `json:"verdict,omitempty"`
}

// CreateSavingsGoalRequest defines the body for creating a savings goal.
type CreateSavingsGoalRequest struct {
	Name         string  `json:"name"`
	TargetAmount float64 `json:"target_amount"`
}

// UpdateSavingsGoalRequest defines the body for editing a savings goal.
type UpdateSavingsGoalRequest struct {
	Name         *string  `json:"name,omitempty"`
	TargetAmount *float64 `json:"target_amount,omitempty"`
}

// CreditSavingsRequest credits a declined purchase amount toward a goal.
type CreditSavingsRequest struct {
	Amount float64 `json:"amount"`
}
