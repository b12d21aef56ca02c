package auth

import (
	"context"
	"errors"
	"net/http"
	"regexp"
	"strings"
	"time"

	"entitlements-api/internal/domain/access"
	"entitlements-api/internal/domain/users"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// TrialDays is the length of the trial granted on sign-up.
const TrialDays = 14

const tokenTTL = 24 * time.Hour

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*users.User, error)
	FindByGoogleSub(ctx context.Context, sub string) (*users.User, error)
	Create(ctx context.Context, u *users.User) error
	Save(ctx context.Context, u *users.User) error
}

type Handler struct {
	users     UserStore
	jwtSecret []byte
	google    *GoogleConfig
	log       *zap.Logger
	now       func() time.Time
}

// NewHandler builds the auth endpoints. google may be nil when Google sign-in is disabled.
func NewHandler(store UserStore, jwtSecret string, google *GoogleConfig, log *zap.Logger) *Handler {
	return &Handler{
		users:     store,
		jwtSecret: []byte(jwtSecret),
		google:    google,
		log:       log.With(zap.String("component", "auth")),
		now:       time.Now,
	}
}

func isPasswordStrong(password string) bool {
	if len(password) < 8 {
		return false
	}
	hasLetter := false
	hasDigit := false
	for _, c := range password {
		switch {
		case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z':
			hasLetter = true
		case '0' <= c && c <= '9':
			hasDigit = true
		}
	}
	return hasLetter && hasDigit
}

// newMember returns a member account with a fresh trial window.
func (h *Handler) newMember(name, lastname, email string) users.User {
	now := h.now()
	trialEnd := now.AddDate(0, 0, TrialDays)
	return users.User{
		Name:         name,
		Lastname:     lastname,
		Email:        email,
		AuthProvider: "local",
		Role:         string(access.RoleMember),
		TrialStartAt: &now,
		TrialEndAt:   &trialEnd,
	}
}

func (h *Handler) Register(c *gin.Context) {
	var input struct {
		Name     string `json:"name" binding:"required"`
		Lastname string `json:"lastname" binding:"required"`
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	if !emailPattern.MatchString(email) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email format"})
		return
	}
	if !isPasswordStrong(input.Password) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Password must be at least 8 characters long and contain both letters and numbers"})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}
	hashed := string(hashedPassword)

	user := h.newMember(input.Name, input.Lastname, email)
	user.Password = &hashed

	if err := h.users.Create(c.Request.Context(), &user); err != nil {
		h.log.Warn("register failed", zap.String("email", email), zap.Error(err))
		c.JSON(http.StatusConflict, gin.H{"error": "Email may already exist"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully", "id": user.ID})
}

func (h *Handler) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.FindByEmail(c.Request.Context(), strings.ToLower(strings.TrimSpace(input.Email)))
	if err != nil {
		if !errors.Is(err, users.ErrNotFound) {
			h.log.Error("login lookup failed", zap.Error(err))
		}
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	if user.Password == nil || *user.Password == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "This account uses Google sign-in"})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.Password), []byte(input.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	tokenString, err := IssueToken(*user, h.jwtSecret, h.now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": tokenString})
}

// IssueToken signs the session JWT read by middleware.AuthMiddleware.
func IssueToken(user users.User, secret []byte, now time.Time) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    user.Role,
		"exp":     now.Add(tokenTTL).Unix(),
	})
	return t.SignedString(secret)
}
