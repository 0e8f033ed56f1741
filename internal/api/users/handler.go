package users

import (
	"net/http"

	"linkbio/config"
	"linkbio/database"
	"linkbio/internal/api/respond"
	"linkbio/internal/domain/blocks"
	"linkbio/internal/domain/errs"
	"linkbio/internal/domain/profiles"
	"linkbio/internal/domain/users"

	"github.com/gin-gonic/gin"
)

// GET /me
func GetCurrentUser(c *gin.Context) {
	userID, ok := respond.UserID(c)
	if !ok {
		return
	}

	var user users.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	resp := MeResponse{
		User: UserDTO{
			ID:           user.ID,
			Email:        user.Email,
			Role:         user.Role,
			AuthProvider: user.AuthProvider,
			HasPassword:  user.Password != nil && *user.Password != "",
		},
	}

	p, err := profiles.GetByUser(c.Request.Context(), database.DB, userID)
	switch {
	case err == nil:
		resp.Profile = &ProfileLite{
			Username:  p.Username,
			PublicURL: profiles.BuildPublicURL(config.PUBLIC_BASE_URL, p.Username),
		}
	case !errs.IsNotFound(err):
		respond.Error(c, err)
		return
	}

	if err := database.DB.Model(&blocks.Block{}).
		Where("owner_id = ?", userID).
		Count(&resp.Stats.Total).Error; err != nil {
		respond.Error(c, errs.Store("count blocks", err))
		return
	}
	if err := database.DB.Model(&blocks.Block{}).
		Where("owner_id = ? AND is_visible = ?", userID, true).
		Count(&resp.Stats.Visible).Error; err != nil {
		respond.Error(c, errs.Store("count blocks", err))
		return
	}

	c.JSON(http.StatusOK, resp)
}
