package pagination_test

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/partnerdesk/inventory_ingest_app/internal/utils/pagination"
)

func TestEncodeDecodeToken_RoundTrip(t *testing.T) {
	createdAt := time.Date(2024, 7, 1, 12, 30, 45, 123456789, time.UTC)
	id := "txn-42"

	token := pagination.EncodeToken(createdAt, id)
	gotTime, gotID, err := pagination.DecodeToken(token)

	require.NoError(t, err)
	assert.True(t, createdAt.Equal(gotTime))
	assert.Equal(t, id, gotID)
}

func TestDecodeToken_IDWithSeparator(t *testing.T) {
	createdAt := time.Now().UTC()
	token := pagination.EncodeToken(createdAt, "odd|id|with|pipes")

	_, gotID, err := pagination.DecodeToken(token)

	require.NoError(t, err)
	assert.Equal(t, "odd|id|with|pipes", gotID)
}

func TestDecodeToken_InvalidBase64(t *testing.T) {
	_, _, err := pagination.DecodeToken("not-valid-base64!!!")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "base64")
}

func TestDecodeToken_MissingSeparator(t *testing.T) {
	token := base64.StdEncoding.EncodeToString([]byte("no separator here"))
	_, _, err := pagination.DecodeToken(token)
	require.Error(t, err)
}

func TestDecodeToken_BadTimestamp(t *testing.T) {
	token := base64.StdEncoding.EncodeToString([]byte("yesterday|txn-1"))
	_, _, err := pagination.DecodeToken(token)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "created_at")
}
