package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tieubaoca/studymate-be/types"
	"go.uber.org/zap"
)

type stubDocumentRepo struct {
	docs       []types.Document
	err        error
	lastUserID string
	inserted   []*types.Document
}

func (r *stubDocumentRepo) Insert(ctx context.Context, doc *types.Document) error {
	r.inserted = append(r.inserted, doc)
	return r.err
}

func (r *stubDocumentRepo) FetchByUser(ctx context.Context, userID string) ([]types.Document, error) {
	r.lastUserID = userID
	return r.docs, r.err
}

func TestHandleList_ReturnsMetadataOnly(t *testing.T) {
	repo := &stubDocumentRepo{docs: []types.Document{
		{ID: "doc-1", FileName: "a.pdf", FullText: "secret full text", TextLength: 16, UploadDate: 42},
	}}
	h := NewDocumentHandler(repo, t.TempDir(), zap.NewNop())

	r := httptest.NewRequest(http.MethodGet, "/api/v1/documents?userId=u1", nil)
	w := httptest.NewRecorder()
	h.HandleList()(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "u1", repo.lastUserID)

	var resp types.DocumentListResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.Len(t, resp.Documents, 1)
	assert.Equal(t, "a.pdf", resp.Documents[0].FileName)
	assert.Equal(t, 16, resp.Documents[0].TextLength)
	assert.NotContains(t, w.Body.String(), "secret full text")
}

func TestHandleList_DefaultsUserID(t *testing.T) {
	repo := &stubDocumentRepo{}
	h := NewDocumentHandler(repo, t.TempDir(), zap.NewNop())

	r := httptest.NewRequest(http.MethodGet, "/api/v1/documents", nil)
	w := httptest.NewRecorder()
	h.HandleList()(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, types.DefaultUserID, repo.lastUserID)
}

func TestHandleList_StoreError(t *testing.T) {
	repo := &stubDocumentRepo{err: errors.New("down")}
	h := NewDocumentHandler(repo, t.TempDir(), zap.NewNop())

	r := httptest.NewRequest(http.MethodGet, "/api/v1/documents", nil)
	w := httptest.NewRecorder()
	h.HandleList()(w, r)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestServeDocument_Validation(t *testing.T) {
	h := NewDocumentHandler(&stubDocumentRepo{}, t.TempDir(), zap.NewNop())

	tests := []struct {
		name   string
		target string
		want   int
	}{
		{"missing file param", "/api/v1/documents/file", http.StatusBadRequest},
		{"non pdf", "/api/v1/documents/file?file=a.txt", http.StatusBadRequest},
		{"not found", "/api/v1/documents/file?file=missing.pdf", http.StatusNotFound},
		{"traversal attempt", "/api/v1/documents/file?file=..%2F..%2Fetc%2Fpasswd.pdf", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, tt.target, nil)
			w := httptest.NewRecorder()
			h.ServeDocument()(w, r)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestServeDocument_ServesStoredFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.pdf"), []byte("%PDF-1.4 data"), 0644))
	h := NewDocumentHandler(&stubDocumentRepo{}, dir, zap.NewNop())

	r := httptest.NewRequest(http.MethodGet, "/api/v1/documents/file?file=notes.pdf", nil)
	w := httptest.NewRecorder()
	h.ServeDocument()(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Equal(t, "%PDF-1.4 data", w.Body.String())
}
