package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/partnerdesk/inventory_ingest_app/internal/core/domain"
)

func TestUploadStatus_CanTransitionTo(t *testing.T) {
	testCases := []struct {
		from    domain.UploadStatus
		to      domain.UploadStatus
		allowed bool
	}{
		{domain.UploadPending, domain.UploadProcessing, true},
		{domain.UploadPending, domain.UploadFailed, true},
		{domain.UploadPending, domain.UploadCompleted, false},
		{domain.UploadPending, domain.UploadPending, false},
		{domain.UploadProcessing, domain.UploadCompleted, true},
		{domain.UploadProcessing, domain.UploadFailed, true},
		{domain.UploadProcessing, domain.UploadPending, false},
		{domain.UploadCompleted, domain.UploadProcessing, false},
		{domain.UploadCompleted, domain.UploadFailed, false},
		{domain.UploadFailed, domain.UploadProcessing, false},
		{domain.UploadFailed, domain.UploadCompleted, false},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestUploadStatus_IsTerminal(t *testing.T) {
	assert.False(t, domain.UploadPending.IsTerminal())
	assert.False(t, domain.UploadProcessing.IsTerminal())
	assert.True(t, domain.UploadCompleted.IsTerminal())
	assert.True(t, domain.UploadFailed.IsTerminal())
}

func TestTransactionType_QuantityDelta(t *testing.T) {
	assert.EqualValues(t, 5, domain.TxnPurchase.QuantityDelta(5))
	assert.EqualValues(t, -5, domain.TxnSale.QuantityDelta(5))
	assert.EqualValues(t, 5, domain.TxnAdjustment.QuantityDelta(5))
}
