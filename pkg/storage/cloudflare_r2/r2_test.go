package cloudflare_r2

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfig_SDKEndpoint(t *testing.T) {
	e := (&Config{AccountID: "abc123"}).SDKEndpoint()
	assert.Equal(t, "https://abc123.r2.cloudflarestorage.com", e.URL)
	assert.Equal(t, "auto", e.Region)
	assert.False(t, e.PathStyle)

	e = (&Config{AccountID: "abc123", Jurisdiction: "eu"}).SDKEndpoint()
	assert.Equal(t, "https://abc123.eu.r2.cloudflarestorage.com", e.URL)
}

func TestNewClient_EmptyAccount(t *testing.T) {
	_, err := NewClient(&Config{BucketName: "exports"})
	assert.Error(t, err)
}
