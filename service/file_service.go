package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/tieubaoca/studymate-be/repository"
	"github.com/tieubaoca/studymate-be/types"
	"go.uber.org/zap"
)

// PreviewLength caps the stored text preview. The preview is the ranking
// fallback for documents whose full text is missing, so it has to stay
// small enough to embed in any grounding context.
const PreviewLength = 500

const pdfExtractionFailed = "[PDF text extraction failed]"

// FileService ingests uploaded files: the raw blob goes to the upload
// directory, the extracted text and metadata go to the document store.
type FileService struct {
	uploadDir  string
	documents  repository.DocumentRepo
	pdfService *PDFService
	logger     *zap.Logger
}

func NewFileService(
	uploadDir string,
	documents repository.DocumentRepo,
	pdfService *PDFService,
	logger *zap.Logger,
) *FileService {
	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		panic(err)
	}
	return &FileService{
		uploadDir:  uploadDir,
		documents:  documents,
		pdfService: pdfService,
		logger:     logger,
	}
}

// SaveDocument stores the file and records its metadata. Text extraction
// failure is not an upload failure: the document is kept with a marker
// text so the user sees it listed, it just never ranks well.
func (s *FileService) SaveDocument(ctx context.Context, userID, fileName, contentType string, r io.Reader) (*types.Document, error) {
	ext := strings.ToLower(filepath.Ext(fileName))
	if ext != ".pdf" && ext != ".txt" && ext != ".md" {
		return nil, fmt.Errorf("unsupported file type: %s", ext)
	}
	if userID == "" {
		userID = types.DefaultUserID
	}

	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}

	blobName := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), sanitizeFileName(fileName))
	if err := os.WriteFile(filepath.Join(s.uploadDir, blobName), content, 0644); err != nil {
		return nil, fmt.Errorf("store file: %w", err)
	}

	var extracted string
	if ext == ".pdf" {
		extracted, err = s.pdfService.ExtractText(content)
		if err != nil {
			s.logger.Warn("PDF parsing failed",
				zap.String("file_name", fileName),
				zap.Error(err),
			)
			extracted = pdfExtractionFailed
		}
	} else {
		extracted = string(content)
	}

	preview := extracted
	if len(preview) > PreviewLength {
		// back off to a rune boundary so the stored preview stays valid UTF-8
		cut := PreviewLength
		for cut > 0 && !utf8.RuneStart(preview[cut]) {
			cut--
		}
		preview = preview[:cut]
	}

	doc := &types.Document{
		ID:          "doc-" + uuid.NewString(),
		FileName:    fileName,
		UserID:      userID,
		BlobName:    blobName,
		ContentType: contentType,
		FullText:    extracted,
		TextPreview: preview,
		TextLength:  len(extracted),
		UploadDate:  time.Now().Unix(),
	}
	if err := s.documents.Insert(ctx, doc); err != nil {
		return nil, fmt.Errorf("save metadata: %w", err)
	}

	s.logger.Info("document uploaded",
		zap.String("id", doc.ID),
		zap.String("file_name", fileName),
		zap.Int("text_length", doc.TextLength),
	)
	return doc, nil
}

// sanitizeFileName keeps blob names filesystem-safe.
func sanitizeFileName(name string) string {
	return strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' || r == '.' {
			return r
		}
		return '_'
	}, name)
}
