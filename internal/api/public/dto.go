package publicapi

import (
	blocksapi "linkbio/internal/api/blocks"
	"linkbio/internal/domain/profiles"
	"linkbio/internal/infra/chat"
)

type PublicProfileDTO struct {
	Username    string         `json:"username"`
	DisplayName string         `json:"display_name"`
	Bio         string         `json:"bio"`
	AvatarURL   string         `json:"avatar_url,omitempty"`
	Theme       profiles.Theme `json:"theme"`
}

type PublicPageResponse struct {
	Profile PublicProfileDTO     `json:"profile"`
	Blocks  []blocksapi.BlockDTO `json:"blocks"`
}

type ChatTurn struct {
	Role    string `json:"role" binding:"required,oneof=user assistant system"`
	Content string `json:"content" binding:"max=2000"`
}

type ChatRequest struct {
	Message string     `json:"message" binding:"required,max=2000"`
	History []ChatTurn `json:"history" binding:"max=50,dive"`
}

func (r ChatRequest) history() []chat.Message {
	out := make([]chat.Message, 0, len(r.History))
	for _, turn := range r.History {
		out = append(out, chat.Message{Role: turn.Role, Content: turn.Content})
	}
	return out
}

type ChatResponse struct {
	Reply string `json:"reply"`
}
