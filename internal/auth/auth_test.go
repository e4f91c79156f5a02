package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MauLang18/Cotizacion-CF/internal/domain/models"
)

func sign(t *testing.T, secret string, mc jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, mc).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestDecode_Verified(t *testing.T) {
	d := NewDecoder("s3cret")
	token := sign(t, "s3cret", jwt.MapClaims{
		"sub":      "maria",
		"role":     "Admin",
		"services": []string{"Maritimo", "aduanas"},
		"exp":      time.Now().Add(time.Hour).Unix(),
	})

	p, err := d.Decode("Bearer " + token)
	require.NoError(t, err)
	assert.Equal(t, "maria", p.Subject)
	assert.True(t, p.Verified)
	assert.True(t, p.IsAdmin())
	assert.Equal(t, []models.ServiceCategory{models.ServiceMaritime, models.ServiceCustoms}, p.Services)
}

func TestDecode_Rejections(t *testing.T) {
	d := NewDecoder("s3cret")

	t.Run("wrong secret", func(t *testing.T) {
		_, err := d.Decode(sign(t, "other", jwt.MapClaims{"role": "admin"}))
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		_, err := d.Decode(sign(t, "s3cret", jwt.MapClaims{"exp": time.Now().Add(-time.Hour).Unix()}))
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := d.Decode("not.a.jwt")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestDecode_UnverifiedNeverAdmin(t *testing.T) {
	d := NewDecoder("")
	token := sign(t, "whatever", jwt.MapClaims{
		"http://schemas.microsoft.com/ws/2008/06/identity/claims/role": "admin",
	})

	p, err := d.Decode(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", p.Role)
	assert.False(t, p.Verified)
	assert.False(t, p.IsAdmin())
}

func TestDecode_Empty(t *testing.T) {
	p, err := NewDecoder("x").Decode("")
	require.NoError(t, err)
	assert.Equal(t, Principal{}, p)
}

func TestCanView(t *testing.T) {
	maritime := models.QuotationRecord{Maritime: true}
	air := models.QuotationRecord{Air: true}
	untagged := models.QuotationRecord{}

	viewer := Principal{Services: []models.ServiceCategory{models.ServiceMaritime}}
	assert.True(t, viewer.CanView(maritime))
	assert.False(t, viewer.CanView(air))
	assert.True(t, viewer.CanView(untagged))

	admin := Principal{Role: "admin", Verified: true}
	assert.True(t, admin.CanView(air))
}
