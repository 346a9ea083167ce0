package handlers

import (
	"context"
	"encoding/json"
	"log"

	"impulseguard/config"
	"impulseguard/database"

	"github.com/gofiber/fiber/v2"
	"github.com/stripe/stripe-go/v72"
	"github.com/stripe/stripe-go/v72/webhook"
)

// HandleStripeWebhook verifies the billing provider's signature and toggles
// the premium flag on the referenced profile. Unknown event types are
// acknowledged so the provider stops redelivering them.
// POST /api/v1/webhooks/stripe
func HandleStripeWebhook(c *fiber.Ctx) error {
	event, err := webhook.ConstructEvent(c.Body(), c.Get("Stripe-Signature"), config.AppConfig.StripeWebhookSecret)
	if err != nil {
		log.Printf("Stripe webhook signature verification failed: %v", err)
		return errorJSON(c, fiber.StatusBadRequest, "Invalid webhook signature")
	}

	switch event.Type {
	case "checkout.session.completed":
		var session stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			log.Printf("Error parsing checkout session: %v", err)
			return errorJSON(c, fiber.StatusBadRequest, "Malformed event payload")
		}
		if session.ClientReferenceID != "" {
			if err := setPremium(c.Context(), session.ClientReferenceID, true); err != nil {
				log.Printf("Error enabling premium for user %s: %v", session.ClientReferenceID, err)
				return errorJSON(c, fiber.StatusInternalServerError, "Could not update profile")
			}
		}

	case "customer.subscription.deleted":
		var subscription stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &subscription); err != nil {
			log.Printf("Error parsing subscription: %v", err)
			return errorJSON(c, fiber.StatusBadRequest, "Malformed event payload")
		}
		if userID := subscription.Metadata["user_id"]; userID != "" {
			if err := setPremium(c.Context(), userID, false); err != nil {
				log.Printf("Error disabling premium for user %s: %v", userID, err)
				return errorJSON(c, fiber.StatusInternalServerError, "Could not update profile")
			}
		}

	default:
		log.Printf("Ignoring stripe event type %s", event.Type)
	}

	return c.JSON(fiber.Map{"received": true})
}

func setPremium(ctx context.Context, userID string, premium bool) error {
	_, err := database.GetDB().Exec(
		ctx, `UPDATE profiles SET is_premium = $2, updated_at = now() WHERE user_id = $1`, userID, premium,
	)
	return err
}
