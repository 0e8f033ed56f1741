package blocksapi

import (
	"net/http"

	"linkbio/database"
	"linkbio/internal/api/respond"
	"linkbio/internal/domain/blocks"

	"github.com/gin-gonic/gin"
)

func store() *blocks.Store {
	return blocks.NewStore(database.DB)
}

// ------------------------------
// GET /blocks (editor view, hidden blocks included)
// ------------------------------
func ListBlocks(c *gin.Context) {
	userID, ok := respond.UserID(c)
	if !ok {
		return
	}

	list, version, err := store().ListAllBlocks(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, ListBlocksResponse{Blocks: ToBlockDTOs(list), Version: version})
}

// ------------------------------
// GET /blocks/:id
// ------------------------------
func GetBlock(c *gin.Context) {
	userID, ok := respond.UserID(c)
	if !ok {
		return
	}

	b, err := store().GetBlock(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, ToBlockDTO(*b))
}

// ------------------------------
// POST /blocks (appends)
// ------------------------------
func CreateBlock(c *gin.Context) {
	userID, ok := respond.UserID(c)
	if !ok {
		return
	}

	var req CreateBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	t, err := blocks.ParseType(req.Type)
	if err != nil {
		respond.Error(c, err)
		return
	}

	b, err := store().CreateBlock(c.Request.Context(), userID, t, req.Content)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, ToBlockDTO(*b))
}

// ------------------------------
// PUT /blocks/:id (content only; type never changes)
// ------------------------------
func UpdateBlock(c *gin.Context) {
	userID, ok := respond.UserID(c)
	if !ok {
		return
	}

	var req UpdateBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	b, err := store().UpdateBlockContent(c.Request.Context(), userID, c.Param("id"), req.Content)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, ToBlockDTO(*b))
}

// ------------------------------
// PUT /blocks/:id/visibility
// ------------------------------
func SetBlockVisibility(c *gin.Context) {
	userID, ok := respond.UserID(c)
	if !ok {
		return
	}

	var req VisibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "is_visible required"})
		return
	}

	if err := store().SetVisibility(c.Request.Context(), userID, c.Param("id"), *req.IsVisible); err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ------------------------------
// DELETE /blocks/:id
// ------------------------------
func DeleteBlock(c *gin.Context) {
	userID, ok := respond.UserID(c)
	if !ok {
		return
	}

	if err := store().DeleteBlock(c.Request.Context(), userID, c.Param("id")); err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// ------------------------------
// PUT /blocks/reorder
// ------------------------------
func ReorderBlocks(c *gin.Context) {
	userID, ok := respond.UserID(c)
	if !ok {
		return
	}

	var req ReorderBlocksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "block_ids required"})
		return
	}

	version, err := store().ReorderBlocks(c.Request.Context(), userID, req.BlockIDs, req.Version)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "version": version})
}
