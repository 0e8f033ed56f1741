package publicapi

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"linkbio/database"
	blocksapi "linkbio/internal/api/blocks"
	"linkbio/internal/api/respond"
	"linkbio/internal/domain/analytics"
	"linkbio/internal/domain/blocks"
	"linkbio/internal/domain/errs"
	"linkbio/internal/domain/profiles"
	"linkbio/internal/infra/chat"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GET /u/:username
func GetPublicPage(c *gin.Context) {
	ctx := c.Request.Context()

	p, err := profiles.GetByUsername(ctx, database.DB, c.Param("username"))
	if err != nil {
		respond.Error(c, err)
		return
	}

	list, err := blocks.NewStore(database.DB).ListBlocks(ctx, p.UserID)
	if err != nil {
		respond.Error(c, err)
		return
	}

	// a lost view is not worth failing the page for
	if err := analytics.Record(ctx, database.DB, p.UserID, nil, analytics.KindView, time.Now()); err != nil {
		zap.L().Warn("failed to record view", zap.String("username", p.Username), zap.Error(err))
	}

	c.JSON(http.StatusOK, PublicPageResponse{
		Profile: PublicProfileDTO{
			Username:    p.Username,
			DisplayName: p.DisplayName,
			Bio:         p.Bio,
			AvatarURL:   p.AvatarURL,
			Theme:       p.Theme,
		},
		Blocks: blocksapi.ToBlockDTOs(list),
	})
}

// POST /u/:username/blocks/:id/click
func RecordClick(c *gin.Context) {
	p, b, ok := visibleBlock(c)
	if !ok {
		return
	}

	if err := analytics.Record(c.Request.Context(), database.DB, p.UserID, &b.ID, analytics.KindClick, time.Now()); err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "recorded"})
}

// POST /u/:username/blocks/:id/chat
func Chat(c *gin.Context) {
	completer, err := chat.Provider()
	if errors.Is(err, chat.ErrNotConfigured) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "AI chat is not available"})
		return
	}

	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid chat request"})
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message required"})
		return
	}

	p, b, ok := visibleBlock(c)
	if !ok {
		return
	}
	if b.Type != blocks.TypeAIChat {
		respond.Error(c, errs.NotFound("chat block", b.ID))
		return
	}

	decoded, err := b.Decoded()
	if err != nil {
		respond.Error(c, err)
		return
	}
	cfg := decoded.(*blocks.AIChatContent)

	messages := chat.BuildConversation(cfg.SystemPrompt, req.history(), req.Message)
	reply, err := completer.Complete(c.Request.Context(), messages)
	if err != nil {
		zap.L().Error("chat completion failed",
			zap.String("username", p.Username),
			zap.String("block_id", b.ID),
			zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to get a reply"})
		return
	}

	c.JSON(http.StatusOK, ChatResponse{Reply: reply})
}

// visibleBlock resolves :username and :id to a visible block of that profile.
func visibleBlock(c *gin.Context) (*profiles.Profile, *blocks.Block, bool) {
	ctx := c.Request.Context()

	p, err := profiles.GetByUsername(ctx, database.DB, c.Param("username"))
	if err != nil {
		respond.Error(c, err)
		return nil, nil, false
	}

	b, err := blocks.NewStore(database.DB).GetBlock(ctx, p.UserID, c.Param("id"))
	if err == nil && !b.IsVisible {
		err = errs.NotFound("block", b.ID)
	}
	if err != nil {
		var nf *errs.NotFoundError
		if errors.As(err, &nf) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Block not found"})
			return nil, nil, false
		}
		respond.Error(c, err)
		return nil, nil, false
	}
	return p, b, true
}
