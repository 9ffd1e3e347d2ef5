package api

import "github.com/Mooyguy/Travel-Magazine-Secure/internal/model"

// ErrorResponse 所有錯誤回應的 body
// swagger:model api.ErrorResponse
type ErrorResponse struct {
	Message string `json:"message" example:"Not found."`
}

// swagger:model api.MessageResponse
type MessageResponse struct {
	Message string `json:"message" example:"Updated"`
}

// swagger:model api.SavedResponse
type SavedResponse struct {
	Message string `json:"message" example:"Saved"`
	ID      int    `json:"id" example:"1"`
}

// swagger:model api.RegistrationListResponse
type RegistrationListResponse struct {
	Data []model.Registration `json:"data"`
}

// swagger:model api.RegistrationResponse
type RegistrationResponse struct {
	Data model.Registration `json:"data"`
}

// swagger:model api.MeResponse
type MeResponse struct {
	Username string `json:"username" example:"admin"`
}
