package handlers

import (
	"net/http"
	"time"

	userRepo "workhive/database/repository/user"
	"workhive/models"
	"workhive/services/ranking"
	"workhive/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var userRepository userRepo.UserRepository

// SetUserRepo injects the user repository for the auth handlers.
func SetUserRepo(repo userRepo.UserRepository) {
	userRepository = repo
}

const tokenLifetime = 72 * time.Hour

// RegisterHandler creates a worker or contractor account.
func RegisterHandler(c *gin.Context) {
	var input struct {
		Name        string   `json:"name" binding:"required"`
		Email       string   `json:"email" binding:"required,email"`
		Password    string   `json:"password" binding:"required,min=6"`
		Role        string   `json:"role" binding:"required"`
		PhoneNumber string   `json:"phoneNumber"`
		Address     string   `json:"address"`
		Skills      []string `json:"skills"`
		Longitude   *float64 `json:"longitude"`
		Latitude    *float64 `json:"latitude"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	if input.Role != models.RoleWorker && input.Role != models.RoleContractor {
		utils.JSONError(c, http.StatusBadRequest, "role must be worker or contractor", "")
		return
	}

	existing, err := userRepository.GetByEmail(input.Email)
	if err != nil {
		utils.RespondError(c, utils.NewUpstreamError("failed to check email", err))
		return
	}
	if existing != nil {
		utils.JSONError(c, http.StatusConflict, "email already registered", "")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondError(c, utils.NewUpstreamError("failed to hash password", err))
		return
	}

	user := &models.User{
		ID:           uuid.New().String(),
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: string(hash),
		PhoneNumber:  input.PhoneNumber,
		Role:         input.Role,
		Address:      input.Address,
	}
	if input.Longitude != nil && input.Latitude != nil {
		user.LocationGeo = models.NewGeoPoint(*input.Longitude, *input.Latitude)
	}
	if input.Role == models.RoleWorker {
		user.Skills = input.Skills
		// New workers start at the zero-history baseline.
		user.TrustScore, user.RankLabel = ranking.Compute(ranking.History{})
	}

	if err := userRepository.Create(user); err != nil {
		utils.RespondError(c, utils.NewUpstreamError("failed to create user", err))
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Role, tokenLifetime)
	if err != nil {
		utils.RespondError(c, utils.NewUpstreamError("failed to issue token", err))
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user": user, "token": token})
}

// LoginHandler authenticates by email and password.
func LoginHandler(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	user, err := userRepository.GetByEmail(input.Email)
	if err != nil {
		utils.RespondError(c, utils.NewUpstreamError("failed to load user", err))
		return
	}
	if user == nil {
		utils.JSONError(c, http.StatusUnauthorized, "invalid credentials", "")
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)) != nil {
		utils.JSONError(c, http.StatusUnauthorized, "invalid credentials", "")
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Role, tokenLifetime)
	if err != nil {
		utils.RespondError(c, utils.NewUpstreamError("failed to issue token", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user, "token": token})
}
