package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/tieubaoca/studymate-be/service"
	"github.com/tieubaoca/studymate-be/types"
	"go.uber.org/zap"
)

type AskHandler struct {
	answerService service.AnswerService
	logger        *zap.Logger
}

func NewAskHandler(answerService service.AnswerService, logger *zap.Logger) *AskHandler {
	return &AskHandler{
		answerService: answerService,
		logger:        logger,
	}
}

// HandleAsk answers a question from the user's uploaded documents.
// Degraded outcomes (no documents, nothing relevant, empty model answer)
// are 200 responses; only input errors and collaborator failures map to
// error statuses.
func (h *AskHandler) HandleAsk() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		if r.Method != http.MethodPost {
			h.sendError(w, "Method not allowed", "", http.StatusMethodNotAllowed)
			return
		}

		var req types.AskRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.sendError(w, "Invalid request body", "", http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(req.Question) == "" {
			h.sendError(w, "Question is required", "", http.StatusBadRequest)
			return
		}

		h.logger.Info("processing question", zap.String("question", req.Question))

		result, err := h.answerService.AnswerQuestion(r.Context(), req.Question, req.UserID)
		if err != nil {
			if errors.Is(err, service.ErrEmptyQuestion) {
				h.sendError(w, "Question is required", "", http.StatusBadRequest)
				return
			}
			h.logger.Error("failed to process question", zap.Error(err))
			h.sendError(w, "Failed to process question", err.Error(), http.StatusInternalServerError)
			return
		}

		json.NewEncoder(w).Encode(result)
	}
}

func (h *AskHandler) sendError(w http.ResponseWriter, message, details string, status int) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(types.ErrorResponse{
		Error:   message,
		Details: details,
	})
}
