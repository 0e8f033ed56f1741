package admin

import (
	"net/http"
	"time"

	"linkbio/database"
	"linkbio/internal/domain/blocks"
	"linkbio/internal/domain/profiles"
	"linkbio/internal/domain/users"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AdminUser struct {
	ID           uint      `json:"id"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	AuthProvider string    `json:"auth_provider"`
	Username     *string   `json:"username,omitempty"`
	BlockCount   int64     `json:"block_count"`
	CreatedAt    time.Time `json:"created_at"`
}

type AdminStats struct {
	TotalUsers    int64 `json:"total_users"`
	TotalProfiles int64 `json:"total_profiles"`
	TotalBlocks   int64 `json:"total_blocks"`
}

// GET /admin/users
func ListAllUsers(c *gin.Context) {
	var all []users.User
	if err := database.DB.Order("id ASC").Find(&all).Error; err != nil {
		zap.L().Error("admin: list users", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load users"})
		return
	}

	var owned []profiles.Profile
	if err := database.DB.Select("user_id", "username").Find(&owned).Error; err != nil {
		zap.L().Error("admin: list profiles", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load profiles"})
		return
	}
	usernames := make(map[uint]string, len(owned))
	for _, p := range owned {
		usernames[p.UserID] = p.Username
	}

	type ownerCount struct {
		OwnerID uint
		Count   int64
	}
	var counts []ownerCount
	if err := database.DB.Model(&blocks.Block{}).
		Select("owner_id, COUNT(*) AS count").
		Group("owner_id").
		Scan(&counts).Error; err != nil {
		zap.L().Error("admin: count blocks", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count blocks"})
		return
	}
	blockCounts := make(map[uint]int64, len(counts))
	for _, oc := range counts {
		blockCounts[oc.OwnerID] = oc.Count
	}

	out := make([]AdminUser, 0, len(all))
	for _, u := range all {
		au := AdminUser{
			ID:           u.ID,
			Email:        u.Email,
			Role:         u.Role,
			AuthProvider: u.AuthProvider,
			BlockCount:   blockCounts[u.ID],
			CreatedAt:    u.CreatedAt,
		}
		if name, ok := usernames[u.ID]; ok {
			au.Username = &name
		}
		out = append(out, au)
	}

	c.JSON(http.StatusOK, out)
}

// GET /admin/stats
func GetAdminStats(c *gin.Context) {
	var stats AdminStats
	if err := database.DB.Model(&users.User{}).Count(&stats.TotalUsers).Error; err != nil {
		zap.L().Error("admin: count users", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load stats"})
		return
	}
	if err := database.DB.Model(&profiles.Profile{}).Count(&stats.TotalProfiles).Error; err != nil {
		zap.L().Error("admin: count profiles", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load stats"})
		return
	}
	if err := database.DB.Model(&blocks.Block{}).Count(&stats.TotalBlocks).Error; err != nil {
		zap.L().Error("admin: count blocks", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load stats"})
		return
	}
	c.JSON(http.StatusOK, stats)
}
