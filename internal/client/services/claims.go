package services

import (
	"strconv"

	"github.com/dmitrijs2005/cateringplus/internal/client/models"
	"github.com/golang-jwt/jwt/v5"
)

// applyTokenClaims fills identity gaps from the token's JWT claims. The
// signature is not checked: the client is not the token authority and only
// reads what the server already vouched for. Opaque tokens are left alone.
func applyTokenClaims(s *models.Session) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(s.Token, claims); err != nil {
		return
	}

	if s.UserID == "" {
		s.UserID = firstClaim(claims, "sub", "nameid")
	}
	if s.UserName == "" {
		s.UserName = firstClaim(claims, "name", "unique_name", "email")
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		s.ExpiresAt = exp.Time.UTC()
	}
}

func firstClaim(claims jwt.MapClaims, keys ...string) string {
	for _, k := range keys {
		switch v := claims[k].(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		}
	}
	return ""
}
