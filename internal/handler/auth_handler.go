package handler

import (
	"os"
	"time"

	"go-product-inventory/internal/service"
	"go-product-inventory/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// SignInRequest represents the sign-in request body
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// setSessionCookie attaches the session token as an HTTP-only cookie.
func setSessionCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     jwt.SessionCookie,
		Value:    token,
		Expires:  time.Now().Add(jwt.TokenValidity),
		HTTPOnly: true,
		Secure:   os.Getenv("APP_ENV") == "production",
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// SignUp handles account creation
// POST /api/auth/signup
func (h *AuthHandler) SignUp(c *fiber.Ctx) error {
	var req service.SignUpRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	response, err := h.authService.SignUp(&req)
	if err != nil {
		return respondError(c, err)
	}

	setSessionCookie(c, response.Token)
	return c.Status(201).JSON(fiber.Map{"message": "User created successfully", "user": response.User})
}

// SignIn handles user authentication
// POST /api/auth/signin
func (h *AuthHandler) SignIn(c *fiber.Ctx) error {
	var req SignInRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if req.Email == "" || req.Password == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Email and password are required"})
	}

	response, err := h.authService.SignIn(req.Email, req.Password)
	if err != nil {
		return respondError(c, err)
	}

	setSessionCookie(c, response.Token)
	return c.JSON(fiber.Map{"message": "Sign in successful", "user": response.User})
}

// Me returns the verified session identity
// GET /api/auth/me
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	userID := c.Locals("user_id")
	if userID == nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	return c.JSON(fiber.Map{"user": fiber.Map{
		"id":    userID,
		"email": c.Locals("user_email"),
		"name":  c.Locals("user_name"),
		"role":  c.Locals("user_role"),
	}})
}
