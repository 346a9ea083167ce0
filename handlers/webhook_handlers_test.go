package handlers

import (
	"net/http/httptest"
	"strings"
	"testing"

	"impulseguard/config"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripeWebhookRejectsMissingSignature(t *testing.T) {
	config.AppConfig.StripeWebhookSecret = "whsec_test"
	app := fiber.New()
	app.Post("/webhooks/stripe", HandleStripeWebhook)

	req := httptest.NewRequest("POST", "/webhooks/stripe", strings.NewReader(`{"type":"checkout.session.completed"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, 400, resp.StatusCode)
}

func TestStripeWebhookRejectsBadSignature(t *testing.T) {
	config.AppConfig.StripeWebhookSecret = "whsec_test"
	app := fiber.New()
	app.Post("/webhooks/stripe", HandleStripeWebhook)

	req := httptest.NewRequest("POST", "/webhooks/stripe", strings.NewReader(`{"type":"checkout.session.completed"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Stripe-Signature", "t=12345,v1=deadbeef")
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, 400, resp.StatusCode)
}
