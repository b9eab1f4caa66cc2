package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/roel-sundiam/RecreationalRacketBall-sub000/config"
	"github.com/roel-sundiam/RecreationalRacketBall-sub000/internal/middleware"
	"github.com/roel-sundiam/RecreationalRacketBall-sub000/internal/user"
	"github.com/roel-sundiam/RecreationalRacketBall-sub000/pkg/token"
	pkgvalidator "github.com/roel-sundiam/RecreationalRacketBall-sub000/pkg/validator"
	"github.com/roel-sundiam/RecreationalRacketBall-sub000/utils"
)

type AuthController struct {
	repo   AuthRepository
	config *config.Config
}

func NewAuthController(repo AuthRepository, cfg *config.Config) *AuthController {
	return &AuthController{
		repo:   repo,
		config: cfg,
	}
}

func (ac *AuthController) generateAndSaveTokens(u *user.User) (string, string, error) {
	accessToken, err := token.GenerateAccessToken(u.ID, u.Role, ac.config.JWT.AccessTokenSecret, ac.config.JWT.AccessTokenExpiryMinutes)
	if err != nil {
		return "", "", fmt.Errorf("access token generation failed: %w", err)
	}

	refreshTokenString, err := token.GenerateRefreshToken(u.ID, ac.config.JWT.RefreshTokenSecret, ac.config.JWT.RefreshTokenExpiryDays)
	if err != nil {
		return "", "", fmt.Errorf("refresh token generation failed: %w", err)
	}

	refreshToken := &user.RefreshToken{
		UserID:    u.ID,
		Token:     refreshTokenString,
		ExpiresAt: time.Now().AddDate(0, 0, ac.config.JWT.RefreshTokenExpiryDays),
	}

	if err := ac.repo.SaveRefreshToken(refreshToken); err != nil {
		return "", "", fmt.Errorf("failed to save refresh token: %w", err)
	}
	return accessToken, refreshTokenString, nil
}

// Register godoc
// @Summary      Register a new user
// @Description  Create a new user with name, username, email and password.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        user  body  RegisterRequest  true  "User registration details"
// @Success      201   {object} AuthResponse "User registered successfully, returns tokens and user info"
// @Failure      400   {object} map[string]string "Validation error or invalid input"
// @Failure      409   {object} map[string]string "User with this email or username already exists"
// @Failure      500   {object} map[string]string "Internal server error"
// @Router       /auth/register [post]
func (ac *AuthController) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "fields": pkgvalidator.ParseError(err)})
		return
	}

	// Check for existing users
	if _, err := ac.repo.GetUserByEmail(req.Email); !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusConflict, gin.H{"error": "User with this email already exists"})
		return
	}
	if _, err := ac.repo.GetUserByUsername(req.Username); !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusConflict, gin.H{"error": "User with this username already exists"})
		return
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	newUser := &user.User{
		Name:     req.Name,
		Username: strings.ToLower(req.Username),
		Email:    strings.ToLower(req.Email),
		Password: hashed,
		Role:     user.RoleMember,
		Active:   true,
	}

	if err := ac.repo.CreateUser(newUser); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	accessToken, refreshToken, err := ac.generateAndSaveTokens(newUser)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         FilterUserRecord(newUser),
	})
}

// Login godoc
// @Summary      Log in
// @Description  Authenticate with email or username plus password.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        credentials  body  LoginRequest  true  "Login credentials"
// @Success      200  {object} AuthResponse "Tokens and user info"
// @Failure      400  {object} map[string]string "Validation error"
// @Failure      401  {object} map[string]string "Invalid credentials"
// @Router       /auth/login [post]
func (ac *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "fields": pkgvalidator.ParseError(err)})
		return
	}

	identifier := strings.ToLower(req.LoginIdentifier)
	var u *user.User
	var err error
	if strings.Contains(identifier, "@") {
		u, err = ac.repo.GetUserByEmail(identifier)
	} else {
		u, err = ac.repo.GetUserByUsername(identifier)
	}
	if err != nil || !u.Active {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	if !utils.CheckPassword(u.Password, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	accessToken, refreshToken, err := ac.generateAndSaveTokens(u)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         FilterUserRecord(u),
	})
}

// RefreshToken godoc
// @Summary      Refresh access token
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        refresh  body  RefreshTokenRequest  true  "Refresh token"
// @Success      200  {object} AuthResponse "New token pair"
// @Failure      401  {object} map[string]string "Invalid or expired refresh token"
// @Router       /auth/refresh-token [post]
func (ac *AuthController) RefreshToken(c *gin.Context) {
	var req RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	claims, err := token.ValidateJWT(req.RefreshToken, ac.config.JWT.RefreshTokenSecret)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid refresh token: " + err.Error()})
		return
	}

	stored, err := ac.repo.GetRefreshToken(req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Refresh token is revoked or expired"})
		return
	}

	u, err := ac.repo.GetUserByID(claims.UserID)
	if err != nil || !u.Active {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found or inactive"})
		return
	}

	// Rotate: revoke the used token before issuing a new pair.
	if err := ac.repo.RevokeRefreshToken(stored.Token); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to rotate refresh token"})
		return
	}

	accessToken, refreshToken, err := ac.generateAndSaveTokens(u)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         FilterUserRecord(u),
	})
}

// Logout godoc
// @Summary      Log out
// @Description  Revoke the given refresh token.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        logout  body  LogoutRequest  true  "Refresh token to revoke"
// @Success      200  {object} map[string]string "Logged out"
// @Router       /auth/logout [post]
// @Security     Bearer
func (ac *AuthController) Logout(c *gin.Context) {
	var req LogoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	if err := ac.repo.RevokeRefreshToken(req.RefreshToken); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to revoke refresh token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// GetProfile godoc
// @Summary      Get the authenticated user's profile
// @Tags         Auth
// @Produce      json
// @Success      200  {object} UserResponse "User profile"
// @Failure      401  {object} map[string]string "Unauthorized"
// @Router       /auth/me [get]
// @Security     Bearer
func (ac *AuthController) GetProfile(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	u, err := ac.repo.GetUserByID(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, FilterUserRecord(u))
}
