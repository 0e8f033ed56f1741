package blocksapi

import (
	"encoding/json"

	"linkbio/internal/domain/blocks"
)

// ---------- requests

type CreateBlockRequest struct {
	Type    string          `json:"type" binding:"required"`
	Content json.RawMessage `json:"content"`
}

type UpdateBlockRequest struct {
	Content json.RawMessage `json:"content" binding:"required"`
}

type VisibilityRequest struct {
	IsVisible *bool `json:"is_visible" binding:"required"`
}

type ReorderBlocksRequest struct {
	BlockIDs []string `json:"block_ids" binding:"required"` // full ordered list, hidden blocks included
	Version  *int64   `json:"version"`                      // optional optimistic check
}

// ---------- responses

type BlockDTO struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	Content    json.RawMessage `json:"content"`
	OrderIndex int             `json:"order_index"`
	IsVisible  bool            `json:"is_visible"`
}

type ListBlocksResponse struct {
	Blocks  []BlockDTO `json:"blocks"`
	Version int64      `json:"version"`
}

func ToBlockDTO(b blocks.Block) BlockDTO {
	content := json.RawMessage(b.Content)
	if len(content) == 0 {
		content = json.RawMessage("{}")
	}
	return BlockDTO{
		ID:         b.ID,
		Type:       string(b.Type),
		Content:    content,
		OrderIndex: b.OrderIndex,
		IsVisible:  b.IsVisible,
	}
}

func ToBlockDTOs(bs []blocks.Block) []BlockDTO {
	out := make([]BlockDTO, 0, len(bs))
	for _, b := range bs {
		out = append(out, ToBlockDTO(b))
	}
	return out
}
