package security

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func genTestKeyPair(t *testing.T) (private, public []byte) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	private = pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	})

	pub, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	public = pem.EncodeToMemory(&pem.Block{
		Type:  "PUBLIC KEY",
		Bytes: pub,
	})
	return
}

func TestJWTRoundTrip(t *testing.T) {
	private, public := genTestKeyPair(t)

	claims := NewTokenClaims("studyhall", "studyhall", "user-1", "student", time.Now().Add(time.Hour).Unix())
	token, err := GenerateJWT(claims, private)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	parsed, err := VerifyToken(token, public)
	require.NoError(t, err)
	assert.Equal(t, "user-1", parsed.GetUser())
	assert.Equal(t, "student", parsed.GetRole())
	assert.Equal(t, "studyhall", parsed.Appid)
}

func TestVerifyTokenExpired(t *testing.T) {
	private, public := genTestKeyPair(t)

	claims := NewTokenClaims("studyhall", "studyhall", "user-1", "student", time.Now().Add(-time.Hour).Unix())
	token, err := GenerateJWT(claims, private)
	require.NoError(t, err)

	_, err = VerifyToken(token, public)
	assert.Error(t, err)
}
