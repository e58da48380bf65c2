package handler

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"

	"github.com/tieubaoca/studymate-be/repository"
	"github.com/tieubaoca/studymate-be/types"
	"go.uber.org/zap"
)

type DocumentHandler struct {
	documents repository.DocumentRepo
	uploadDir string
	logger    *zap.Logger
}

func NewDocumentHandler(documents repository.DocumentRepo, uploadDir string, logger *zap.Logger) *DocumentHandler {
	return &DocumentHandler{
		documents: documents,
		uploadDir: uploadDir,
		logger:    logger,
	}
}

// HandleList returns the user's document metadata without the extracted
// text bodies.
func (h *DocumentHandler) HandleList() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		if r.Method != http.MethodGet {
			h.sendError(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		userID := r.URL.Query().Get("userId")
		if userID == "" {
			userID = types.DefaultUserID
		}

		docs, err := h.documents.FetchByUser(r.Context(), userID)
		if err != nil {
			h.logger.Error("list documents failed", zap.Error(err))
			h.sendError(w, "Failed to list documents", http.StatusInternalServerError)
			return
		}

		infos := make([]types.UploadedDocInfo, 0, len(docs))
		for _, doc := range docs {
			infos = append(infos, types.UploadedDocInfo{
				ID:         doc.ID,
				FileName:   doc.FileName,
				UploadDate: doc.UploadDate,
				TextLength: doc.TextLength,
			})
		}
		json.NewEncoder(w).Encode(types.DocumentListResponse{Documents: infos})
	}
}

// ServeDocument streams a stored PDF back to the client by blob name.
func (h *DocumentHandler) ServeDocument() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		requestedName := r.URL.Query().Get("file")
		if requestedName == "" {
			http.Error(w, "File parameter is required", http.StatusBadRequest)
			return
		}
		if filepath.Ext(requestedName) != ".pdf" {
			http.Error(w, "Only PDF files are allowed", http.StatusBadRequest)
			return
		}

		// Guard against path traversal: the resolved path must stay
		// inside the upload directory.
		cleanName := filepath.Base(filepath.Clean(requestedName))
		fullPath := filepath.Join(h.uploadDir, cleanName)
		if _, err := os.Stat(fullPath); err != nil {
			http.Error(w, "File not found", http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "application/pdf")
		http.ServeFile(w, r, fullPath)
	}
}

func (h *DocumentHandler) sendError(w http.ResponseWriter, message string, status int) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(types.ErrorResponse{Error: message})
}
