package services

import (
	"testing"
	"time"

	"saraf-backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestPhoneValidation(t *testing.T) {
	tests := []struct {
		name  string
		phone string
		valid bool
	}{
		{"ten digits", "9876543210", true},
		{"nine digits", "987654321", false},
		{"eleven digits", "98765432101", false},
		{"letters", "98765abcde", false},
		{"with country code", "+919876543210", false},
		{"with spaces", "98765 43210", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := billReq(models.ModeCash, 100, 100)
			req.CustomerPhoneNo = tt.phone
			err := validateBill(req)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidateOrder(t *testing.T) {
	t.Run("payment type optional when nothing prepaid", func(t *testing.T) {
		req := orderReq("", 0)
		assert.NoError(t, validateOrder(req))
	})

	t.Run("bogus payment type rejected even with zero prepaid", func(t *testing.T) {
		req := orderReq("cheque", 0)
		assert.Error(t, validateOrder(req))
	})

	t.Run("negative prepaid rejected", func(t *testing.T) {
		req := orderReq(models.ModeCash, -5)
		assert.Error(t, validateOrder(req))
	})

	t.Run("missing completion time rejected", func(t *testing.T) {
		req := orderReq(models.ModeCash, 100)
		req.ExpectedCompletionTime = time.Time{}
		assert.Error(t, validateOrder(req))
	})
}

func TestValidateTransaction(t *testing.T) {
	t.Run("negative amount rejected", func(t *testing.T) {
		req := txnReq(models.TransactionInflow, models.ModeCash, -10)
		assert.Error(t, validateTransaction(req))
	})

	t.Run("unknown category rejected", func(t *testing.T) {
		req := txnReq(models.TransactionInflow, models.ModeCash, 10)
		req.Category = "misc"
		assert.Error(t, validateTransaction(req))
	})

	t.Run("missing description rejected", func(t *testing.T) {
		req := txnReq(models.TransactionInflow, models.ModeCash, 10)
		req.Description = ""
		assert.Error(t, validateTransaction(req))
	})
}
