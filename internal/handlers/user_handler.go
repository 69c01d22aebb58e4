package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"

	"dalbhaat-backend/internal/middleware"
	"dalbhaat-backend/internal/models"
	"dalbhaat-backend/internal/repository"
)

type UserHandler struct {
	users     *repository.UserRepository
	jwtSecret []byte
}

func NewUserHandler(users *repository.UserRepository, jwtSecret []byte) *UserHandler {
	return &UserHandler{users: users, jwtSecret: jwtSecret}
}

func (h *UserHandler) Register(c *gin.Context) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Phone    string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" || req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name, email and password are required"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not hash password"})
		return
	}

	// isAdmin is always false here; admin accounts are seeded, never
	// self-registered.
	user := models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashed),
		Phone:    req.Phone,
	}
	if err := h.users.Create(c.Request.Context(), &user); err != nil {
		fail(c, err)
		return
	}

	user.Password = ""
	c.JSON(http.StatusCreated, user)
}

func (h *UserHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	user, err := h.users.FindByEmail(c.Request.Context(), req.Email)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
		return
	}

	token, err := middleware.NewToken(h.jwtSecret, user.ID.Hex(), user.IsAdmin)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not issue token"})
		return
	}

	user.Password = ""
	c.JSON(http.StatusOK, gin.H{"user": user, "token": token})
}

func (h *UserHandler) GetProfile(c *gin.Context) {
	user, err := h.users.FindByID(c.Request.Context(), c.GetString("userId"))
	if err != nil {
		fail(c, err)
		return
	}
	user.Password = ""
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req struct {
		Name    string `json:"name"`
		Bio     string `json:"bio"`
		Phone   string `json:"phone"`
		Address string `json:"address"`
		Avatar  string `json:"avatar"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	update := bson.M{}
	if req.Name != "" {
		update["name"] = req.Name
	}
	if req.Bio != "" {
		update["bio"] = req.Bio
	}
	if req.Phone != "" {
		update["phone"] = req.Phone
	}
	if req.Address != "" {
		update["address"] = req.Address
	}
	if req.Avatar != "" {
		update["avatar"] = req.Avatar
	}
	if len(update) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no fields to update"})
		return
	}

	if err := h.users.UpdateProfile(c.Request.Context(), c.GetString("userId"), update); err != nil {
		fail(c, err)
		return
	}
	h.GetProfile(c)
}
