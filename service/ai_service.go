package service

import (
	"context"
)

// AIService produces an answer grounded in the supplied context text.
type AIService interface {
	Answer(ctx context.Context, question, contextText string) (string, error)
}
