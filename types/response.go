package types

// AnswerResult is the contract returned by the ask endpoint. Sources lists
// the filenames behind the answer in rank order without duplicates.
type AnswerResult struct {
	Answer     string   `json:"answer"`
	Sources    []string `json:"sources"`
	ChunksUsed int      `json:"chunksUsed"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

type UploadResponse struct {
	Success  bool            `json:"success"`
	Message  string          `json:"message"`
	Document UploadedDocInfo `json:"document"`
}

// UploadedDocInfo echoes stored metadata back to the caller without the
// extracted text.
type UploadedDocInfo struct {
	ID         string `json:"id"`
	FileName   string `json:"fileName"`
	UploadDate int64  `json:"uploadDate"`
	TextLength int    `json:"textLength"`
}

type DocumentListResponse struct {
	Documents []UploadedDocInfo `json:"documents"`
}
