package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"regexp"
	"time"
)

var (
	// ErrInvalidPhoneNumber is returned for numbers not matching the Kenyan
	// mobile format. The message is shown to the user as-is.
	ErrInvalidPhoneNumber = errors.New("invalid Kenyan phone number format, use e.g. 0712345678")
	// ErrInvalidAmount is returned for zero or negative amounts.
	ErrInvalidAmount = errors.New("payment amount must be positive")
	// ErrPaymentFailed is returned when the gateway declines or errors.
	ErrPaymentFailed = errors.New("the payment could not be processed, please try again")
)

// kenyanPhonePattern matches Safaricom-style mobile numbers: 07XXXXXXXX,
// 2547XXXXXXXX, +2547XXXXXXXX or bare 7XXXXXXXX.
var kenyanPhonePattern = regexp.MustCompile(`^(?:\+?254|0)?(7\d{8})$`)

// ValidateMpesaPhone reports whether the number matches the expected format.
func ValidateMpesaPhone(phoneNumber string) bool {
	return kenyanPhonePattern.MatchString(phoneNumber)
}

// PaymentReceipt confirms one gateway transaction.
type PaymentReceipt struct {
	TransactionID string `json:"transaction_id"`
}

// PaymentProvider is the capability interface for the mobile-money gateway.
// The sandbox simulator and a real gateway client are interchangeable.
type PaymentProvider interface {
	Pay(ctx context.Context, phoneNumber string, amount int) (*PaymentReceipt, error)
}

// SandboxMpesaProvider simulates the M-Pesa gateway: it validates inputs the
// way the real gateway does, waits out a realistic processing delay and issues
// a synthetic transaction id.
type SandboxMpesaProvider struct {
	Latency time.Duration
}

func NewSandboxMpesaProvider() *SandboxMpesaProvider {
	return &SandboxMpesaProvider{Latency: 2500 * time.Millisecond}
}

func (p *SandboxMpesaProvider) Pay(ctx context.Context, phoneNumber string, amount int) (*PaymentReceipt, error) {
	if !ValidateMpesaPhone(phoneNumber) {
		return nil, ErrInvalidPhoneNumber
	}
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(p.Latency):
	}

	ref, err := randomReference(7)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPaymentFailed, err)
	}
	return &PaymentReceipt{
		TransactionID: fmt.Sprintf("MPESA_%d_%s", time.Now().UnixMilli(), ref),
	}, nil
}

const referenceAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func randomReference(n int) (string, error) {
	out := make([]byte, n)
	max := big.NewInt(int64(len(referenceAlphabet)))
	for i := range out {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		out[i] = referenceAlphabet[idx.Int64()]
	}
	return string(out), nil
}
