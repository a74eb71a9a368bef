package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var errNoIdentity = errors.New("no authenticated identity in context")

// Identity is the authenticated caller extracted from the verified JWT.
type Identity struct {
	UserID uuid.UUID
	Email  string
	Name   string
}

// CallerIdentity reads the verified token placed by JWTProtected.
func CallerIdentity(c *fiber.Ctx) (Identity, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok || token == nil {
		return Identity{}, errNoIdentity
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, errNoIdentity
	}

	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return Identity{}, errNoIdentity
	}

	email, _ := claims["email"].(string)
	name, _ := claims["name"].(string)
	if name == "" {
		name = email
	}
	return Identity{UserID: userID, Email: email, Name: name}, nil
}
