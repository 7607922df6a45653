package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/moodflow-ai/moodflow-backend/internal/models"
	"github.com/moodflow-ai/moodflow-backend/internal/services"
)

var (
	paymentProvider services.PaymentProvider
	premiumPriceKES int
)

func InitPaymentService(provider services.PaymentProvider, priceKES int) {
	paymentProvider = provider
	premiumPriceKES = priceKES
}

type MpesaPaymentRequest struct {
	PhoneNumber string `json:"phone_number"`
	Amount      int    `json:"amount"`
}

type MpesaPaymentResponse struct {
	Success       bool         `json:"success"`
	Message       string       `json:"message"`
	TransactionID string       `json:"transaction_id,omitempty"`
	User          *models.User `json:"user,omitempty"`
}

// MpesaPayment charges the premium subscription via the M-Pesa gateway and
// upgrades the account on success. Amount defaults to the configured premium
// price when omitted.
func MpesaPayment(w http.ResponseWriter, r *http.Request) {
	user, _, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req MpesaPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Amount == 0 {
		req.Amount = premiumPriceKES
	}

	receipt, err := paymentProvider.Pay(r.Context(), req.PhoneNumber, req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidPhoneNumber), errors.Is(err, services.ErrInvalidAmount):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			log.Printf("[MpesaPayment] gateway failure for user %s: %v", user.ID, err)
			writeError(w, http.StatusBadGateway, "Payment failed. Please try again.")
		}
		return
	}

	if err := services.RecordPayment(user.ID, req.PhoneNumber, req.Amount, receipt.TransactionID); err != nil {
		// The charge went through; log loudly and keep going so the user
		// still gets what they paid for.
		log.Printf("[MpesaPayment] failed to record payment %s for user %s: %v", receipt.TransactionID, user.ID, err)
	}

	if err := services.UpgradeToPremium(user.ID); err != nil {
		log.Printf("[MpesaPayment] failed to upgrade user %s after payment %s: %v", user.ID, receipt.TransactionID, err)
		writeError(w, http.StatusInternalServerError, "Payment received but the upgrade failed. Please contact support.")
		return
	}

	upgraded, err := services.GetUserByID(user.ID)
	if err != nil {
		upgraded = user
		upgraded.SubscriptionStatus = models.SubscriptionPremium
	}

	writeJSON(w, http.StatusOK, MpesaPaymentResponse{
		Success:       true,
		Message:       "Payment successful. Welcome to premium!",
		TransactionID: receipt.TransactionID,
		User:          upgraded,
	})
}
