package services

import (
	"testing"

	"github.com/dmitrijs2005/cateringplus/internal/client/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signed(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("k"))
	require.NoError(t, err)
	return tok
}

func TestApplyTokenClaims(t *testing.T) {
	tests := []struct {
		name     string
		session  models.Session
		wantID   string
		wantName string
	}{
		{
			name:    "opaque token untouched",
			session: models.Session{Token: "not-a-jwt"},
		},
		{
			name:     "server identity wins",
			session:  models.Session{Token: signed(t, jwt.MapClaims{"sub": "1", "name": "X"}), UserID: "42", UserName: "Ann"},
			wantID:   "42",
			wantName: "Ann",
		},
		{
			name:     "asp.net style claims",
			session:  models.Session{Token: signed(t, jwt.MapClaims{"nameid": float64(9001), "unique_name": "dave"})},
			wantID:   "9001",
			wantName: "dave",
		},
		{
			name:     "email as name fallback",
			session:  models.Session{Token: signed(t, jwt.MapClaims{"sub": "5", "email": "e@x.io"})},
			wantID:   "5",
			wantName: "e@x.io",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := tt.session
			applyTokenClaims(&s)
			assert.Equal(t, tt.wantID, s.UserID)
			assert.Equal(t, tt.wantName, s.UserName)
			assert.True(t, s.ExpiresAt.IsZero())
		})
	}
}
