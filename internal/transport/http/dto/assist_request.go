package dto

// -------- AI assistance --------

type GenerateDescriptionRequest struct {
	Title    string `json:"title" validate:"required,max=200"`
	Location string `json:"location" validate:"required,max=200"`
	Keywords string `json:"keywords" validate:"max=500"`
}

func (r *GenerateDescriptionRequest) Validate() error { return check(r) }

type GenerateDescriptionData struct {
	Description string `json:"description"`
}

type ChatTurn struct {
	Role    string `json:"role" validate:"required,oneof=user assistant"`
	Content string `json:"content" validate:"required"`
}

type ChatRequest struct {
	Message string     `json:"message" validate:"required,max=2000"`
	History []ChatTurn `json:"history" validate:"omitempty,max=50,dive"`
}

func (r *ChatRequest) Validate() error { return check(r) }

type ChatData struct {
	Reply string `json:"reply"`
}
