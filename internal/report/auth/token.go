package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"reportd/internal/report/model"
)

var ErrInvalidToken = errors.New("invalid access token")

// Claims carried by an access token: the user and the tenant.
type Claims struct {
	UserID    string `json:"_id"`
	CompanyID string `json:"companyId"`
	jwt.RegisteredClaims
}

type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), ttl: ttl}
}

func (m *TokenManager) Generate(user *model.User) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		UserID:    user.ID.Hex(),
		CompanyID: user.CompanyID.Hex(),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// Parse verifies the signature and expiry and resolves the claim ids.
func (m *TokenManager) Parse(raw string) (primitive.ObjectID, primitive.ObjectID, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return primitive.NilObjectID, primitive.NilObjectID, ErrInvalidToken
	}
	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return primitive.NilObjectID, primitive.NilObjectID, ErrInvalidToken
	}
	companyID, err := primitive.ObjectIDFromHex(claims.CompanyID)
	if err != nil {
		return primitive.NilObjectID, primitive.NilObjectID, ErrInvalidToken
	}
	return userID, companyID, nil
}
