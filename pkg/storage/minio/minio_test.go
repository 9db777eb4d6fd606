package minio

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfig_SDKEndpoint(t *testing.T) {
	e := (&Config{Endpoint: "minio.internal:9000/", AccessKeyID: "k", AccessKeySecret: "s"}).SDKEndpoint()
	assert.Equal(t, "https://minio.internal:9000", e.URL)
	assert.Equal(t, defaultRegion, e.Region)
	assert.True(t, e.PathStyle)
	assert.Equal(t, "k", e.AccessKeyID)

	e = (&Config{Endpoint: "http://127.0.0.1:9000", Region: "eu-west-1"}).SDKEndpoint()
	assert.Equal(t, "http://127.0.0.1:9000", e.URL)
	assert.Equal(t, "eu-west-1", e.Region)
}

func TestNewClient_EmptyEndpoint(t *testing.T) {
	_, err := NewClient(&Config{BucketName: "exports"})
	assert.Error(t, err)
}
