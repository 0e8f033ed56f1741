package profilesapi

import (
	"net/http"

	"linkbio/database"
	"linkbio/internal/api/respond"
	"linkbio/internal/domain/profiles"
	"linkbio/internal/domain/users"

	"github.com/gin-gonic/gin"
)

// GET /profile
func GetProfile(c *gin.Context) {
	userID, ok := respond.UserID(c)
	if !ok {
		return
	}

	p, err := profiles.GetByUser(c.Request.Context(), database.DB, userID)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, ToProfileDTO(*p))
}

// POST /profile
func CreateProfile(c *gin.Context) {
	userID, ok := respond.UserID(c)
	if !ok {
		return
	}

	var req ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user users.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return
	}

	p, err := profiles.Create(c.Request.Context(), database.DB, userID, user.Email, req.toInput())
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, ToProfileDTO(*p))
}

// PUT /profile
func UpdateProfile(c *gin.Context) {
	userID, ok := respond.UserID(c)
	if !ok {
		return
	}

	var req ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p, err := profiles.Update(c.Request.Context(), database.DB, userID, req.toInput())
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, ToProfileDTO(*p))
}
