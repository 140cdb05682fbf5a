package model

// TokenRequest is the payload for exchanging the admin key for a JWT.
type TokenRequest struct {
	AdminKey string `json:"admin_key" binding:"required"`
}

// CreateSessionRequest is the payload for starting a quiz session.
type CreateSessionRequest struct {
	Count      int    `json:"count" binding:"required,min=1,max=100"`
	Genre      string `json:"genre" binding:"omitempty,max=100"`
	Difficulty string `json:"difficulty" binding:"omitempty,max=50"`
	// Shuffle overrides the server-wide option shuffle setting when set.
	Shuffle *bool `json:"shuffle"`
}

// AnswerRequest is the payload for answering the current question.
// Selected is a pointer so option 0 survives required-field binding.
type AnswerRequest struct {
	Selected *int `json:"selected" binding:"required,min=0,max=3"`
}
