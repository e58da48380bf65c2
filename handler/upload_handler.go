package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/tieubaoca/studymate-be/service"
	"github.com/tieubaoca/studymate-be/types"
	"go.uber.org/zap"
)

const maxUploadSize = 10 << 20

type UploadHandler struct {
	fileService *service.FileService
	logger      *zap.Logger
}

func NewUploadHandler(fileService *service.FileService, logger *zap.Logger) *UploadHandler {
	return &UploadHandler{
		fileService: fileService,
		logger:      logger,
	}
}

// HandleUpload accepts one multipart file per request. The optional userId
// form value attributes the document; absent, the default user owns it.
func (h *UploadHandler) HandleUpload() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		if r.Method != http.MethodPost {
			h.sendError(w, "Method not allowed. Use POST.", "", http.StatusMethodNotAllowed)
			return
		}

		// cap while streaming so an oversized body is cut off, not buffered
		r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
		if err := r.ParseMultipartForm(maxUploadSize); err != nil {
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				h.sendError(w, "File too large", "", http.StatusBadRequest)
				return
			}
			h.sendError(w, "No file uploaded", "", http.StatusBadRequest)
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			h.sendError(w, "No file uploaded", "", http.StatusBadRequest)
			return
		}
		defer file.Close()

		userID := r.FormValue("userId")
		contentType := header.Header.Get("Content-Type")

		doc, err := h.fileService.SaveDocument(r.Context(), userID, header.Filename, contentType, file)
		if err != nil {
			h.logger.Error("upload failed",
				zap.String("file_name", header.Filename),
				zap.Error(err),
			)
			h.sendError(w, "Failed to upload document", err.Error(), http.StatusInternalServerError)
			return
		}

		json.NewEncoder(w).Encode(types.UploadResponse{
			Success: true,
			Message: "Document uploaded successfully",
			Document: types.UploadedDocInfo{
				ID:         doc.ID,
				FileName:   doc.FileName,
				UploadDate: doc.UploadDate,
				TextLength: doc.TextLength,
			},
		})
	}
}

func (h *UploadHandler) sendError(w http.ResponseWriter, message, details string, status int) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(types.ErrorResponse{
		Error:   message,
		Details: details,
	})
}
