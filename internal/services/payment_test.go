package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateMpesaPhone(t *testing.T) {
	valid := []string{
		"0712345678",
		"712345678",
		"254712345678",
		"+254712345678",
	}
	for _, num := range valid {
		assert.True(t, ValidateMpesaPhone(num), "expected %s to be valid", num)
	}

	invalid := []string{
		"",
		"0812345678",   // not a 7xx mobile prefix
		"071234567",    // too short
		"07123456789",  // too long
		"255712345678", // wrong country code
		"0712 345 678", // whitespace
		"phone",
	}
	for _, num := range invalid {
		assert.False(t, ValidateMpesaPhone(num), "expected %s to be invalid", num)
	}
}

func TestSandboxMpesaProviderPay(t *testing.T) {
	provider := &SandboxMpesaProvider{Latency: time.Millisecond}

	t.Run("successful payment", func(t *testing.T) {
		receipt, err := provider.Pay(context.Background(), "0712345678", 500)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(receipt.TransactionID, "MPESA_"), "got %s", receipt.TransactionID)
		parts := strings.Split(receipt.TransactionID, "_")
		require.Len(t, parts, 3)
		assert.Len(t, parts[2], 7)
	})

	t.Run("invalid phone", func(t *testing.T) {
		_, err := provider.Pay(context.Background(), "12345", 500)
		assert.ErrorIs(t, err, ErrInvalidPhoneNumber)
	})

	t.Run("invalid amount", func(t *testing.T) {
		_, err := provider.Pay(context.Background(), "0712345678", 0)
		assert.ErrorIs(t, err, ErrInvalidAmount)

		_, err = provider.Pay(context.Background(), "0712345678", -100)
		assert.ErrorIs(t, err, ErrInvalidAmount)
	})

	t.Run("cancelled context", func(t *testing.T) {
		slow := &SandboxMpesaProvider{Latency: time.Minute}
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := slow.Pay(ctx, "0712345678", 500)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
