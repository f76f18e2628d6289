package session

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// Handler issues anonymous browsing-session tokens. There are no user
// accounts: the token only carries a session id so that cart state can
// be attributed to one browsing session across requests.
type Handler struct {
	secret []byte
}

func NewHandler(secret []byte) *Handler {
	return &Handler{secret: secret}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Post("/api/v1/session", h.createSession)
}

func (h *Handler) createSession(c *fiber.Ctx) error {
	sessionID := uuid.NewString()

	claims := jwt.MapClaims{
		"session_id": sessionID,
		"exp":        time.Now().Add(72 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(h.secret)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to generate token"})
	}

	return c.JSON(fiber.Map{
		"sessionId": sessionID,
		"token":     signed,
	})
}

// GetSessionIDFromCtx extracts the session_id claim from the JWT token
// stored in `c.Locals("user")` by the jwt middleware. Several packages
// need this, so it is exported here for reuse.
func GetSessionIDFromCtx(c *fiber.Ctx) (string, error) {
	u := c.Locals("user")
	if u == nil {
		return "", fiber.ErrUnauthorized
	}
	tok, ok := u.(*jwt.Token)
	if !ok {
		return "", fiber.ErrUnauthorized
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return "", fiber.ErrUnauthorized
	}
	raw, ok := claims["session_id"]
	if !ok {
		return "", fiber.ErrUnauthorized
	}
	id, ok := raw.(string)
	if !ok || id == "" {
		return "", fiber.ErrUnauthorized
	}
	return id, nil
}
