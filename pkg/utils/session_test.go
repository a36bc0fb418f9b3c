package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateSessionID(t *testing.T) {
	id := GenerateSessionID("192.168.1.1Mozilla/5.0")

	assert.Len(t, id, 16)
	assert.True(t, ValidateSessionID(id))

	// Same fingerprint within the same hour yields the same session.
	assert.Equal(t, id, GenerateSessionID("192.168.1.1Mozilla/5.0"))
	assert.NotEqual(t, id, GenerateSessionID("10.0.0.1curl/8.0"))
}

func TestMD5Hash(t *testing.T) {
	assert.Equal(t, "5d41402abc4b2a76b9719d911017c592", MD5Hash("hello"))
	assert.Equal(t, MD5Hash("query|forms||0"), MD5Hash("query|forms||0"))
}

func TestValidateSessionID(t *testing.T) {
	assert.True(t, ValidateSessionID("0123456789abcdef"))
	assert.False(t, ValidateSessionID("too-short"))
	assert.False(t, ValidateSessionID("0123456789abcdeg"))
	assert.False(t, ValidateSessionID(""))
}
