package types

type AskRequest struct {
	Question string `json:"question"`
	UserID   string `json:"userId,omitempty"`
}
