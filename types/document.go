package types

// DefaultUserID is used when a request does not carry a user identifier.
// Until real accounts exist, anonymous uploads and questions are attributed
// to this sentinel so they see each other's data consistently.
const DefaultUserID = "default-user"

// Document is one uploaded file together with its extracted text.
// Documents are immutable after upload.
type Document struct {
	ID          string `bson:"_id" json:"id"`
	FileName    string `bson:"file_name" json:"fileName"`
	UserID      string `bson:"user_id" json:"userId"`
	BlobName    string `bson:"blob_name,omitempty" json:"blobName,omitempty"`
	ContentType string `bson:"content_type,omitempty" json:"contentType,omitempty"`
	FullText    string `bson:"full_text,omitempty" json:"fullText,omitempty"`
	TextPreview string `bson:"text_preview,omitempty" json:"textPreview,omitempty"`
	TextLength  int    `bson:"text_length" json:"textLength"`
	UploadDate  int64  `bson:"upload_date" json:"uploadDate"`
}

// SearchableText returns the text to rank against and whether it is the
// full extracted text. Older records only carry a preview; a document with
// neither is not searchable and the caller must skip it.
func (d *Document) SearchableText() (text string, hasFullText bool) {
	if d.FullText != "" {
		return d.FullText, true
	}
	return d.TextPreview, false
}

// RankedChunk is a scored slice of one document's text, produced per
// question and discarded once the response is built.
type RankedChunk struct {
	FileName    string
	Text        string
	Score       int
	HasFullText bool
}
