package pagination

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeToken(t *testing.T) {
	date := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	createdAt := time.Date(2025, 3, 14, 9, 26, 53, 589793238, time.UTC)

	token := EncodeToken(date, createdAt)
	assert.NotEmpty(t, token)

	gotDate, gotCreatedAt, err := DecodeToken(token)
	assert.NoError(t, err)
	assert.Equal(t, date, gotDate)
	assert.Equal(t, createdAt, gotCreatedAt)
}

func TestDecodeTokenErrors(t *testing.T) {
	_, _, err := DecodeToken("not base64!")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "base64 decode")

	// Valid base64 but no separator.
	_, _, err = DecodeToken("MjAyNS0wMy0xNFQwMDowMDowMFo=")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "split")
}
