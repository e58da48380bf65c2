package service

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/tieubaoca/studymate-be/types"
)

// RankConfig holds the retrieval heuristics. The values here are policy,
// not correctness: they control how much text reaches the model, not what
// the pipeline returns for a given ranking.
type RankConfig struct {
	// MinTokenLength drops question words of this length or shorter
	// before scoring, which keeps articles and particles out of the
	// occurrence counts.
	MinTokenLength int
	// WindowBefore/WindowAfter bound the snippet cut around the first
	// matched keyword in a full-text document.
	WindowBefore int
	WindowAfter  int
	// NoMatchPrefix caps the snippet when a document scored but the
	// first-match lookup misses. Score > 0 implies a match exists, so
	// this is a guard, not an expected path.
	NoMatchPrefix int
	// LowScoreThreshold and TopChunks drive the fallback policy: a top
	// score below the threshold returns every scored document, a
	// confident one narrows to the best TopChunks.
	LowScoreThreshold int
	TopChunks         int
}

// DefaultRankConfig matches the production settings.
var DefaultRankConfig = RankConfig{
	MinTokenLength:    2,
	WindowBefore:      500,
	WindowAfter:       1500,
	NoMatchPrefix:     2000,
	LowScoreThreshold: 2,
	TopChunks:         3,
}

// RankService scores documents against a question and extracts the text
// windows that go into the grounding context. Pure computation, no I/O.
type RankService struct {
	config RankConfig
}

func NewRankService(config RankConfig) *RankService {
	return &RankService{
		config: config,
	}
}

// Tokenize lowercases the question and keeps whitespace-separated words
// longer than MinTokenLength. Tokens are not deduplicated; matching is
// case-insensitive because both sides are lowercased.
func (s *RankService) Tokenize(question string) []string {
	words := strings.Fields(strings.ToLower(question))
	tokens := make([]string, 0, len(words))
	for _, w := range words {
		if len(w) > s.config.MinTokenLength {
			tokens = append(tokens, w)
		}
	}
	return tokens
}

// Rank produces one scored chunk per searchable document, best first.
//
// The score of a document is the total number of case-insensitive substring
// occurrences of the question tokens in its text. Documents with neither
// full text nor a preview are skipped entirely. When the best score is
// below LowScoreThreshold every scored document is returned unfiltered:
// with low confidence the model is a better judge of relevance than the
// counter, so over-inclusion beats returning nothing.
func (s *RankService) Rank(question string, docs []types.Document) []types.RankedChunk {
	tokens := s.Tokenize(question)

	chunks := make([]types.RankedChunk, 0, len(docs))
	for i := range docs {
		text, hasFullText := docs[i].SearchableText()
		if text == "" {
			continue
		}

		lower := strings.ToLower(text)
		score := 0
		for _, tok := range tokens {
			score += strings.Count(lower, tok)
		}

		chunks = append(chunks, types.RankedChunk{
			FileName:    docs[i].FileName,
			Text:        s.window(text, lower, tokens, score, hasFullText),
			Score:       score,
			HasFullText: hasFullText,
		})
	}

	// Stable: equal scores keep the original document order
	sort.SliceStable(chunks, func(i, j int) bool {
		return chunks[i].Score > chunks[j].Score
	})

	if len(chunks) == 0 {
		return chunks
	}
	if chunks[0].Score < s.config.LowScoreThreshold {
		return chunks
	}
	if len(chunks) > s.config.TopChunks {
		chunks = chunks[:s.config.TopChunks]
	}
	return chunks
}

// window cuts the snippet around the first question token that occurs in a
// full-text document. Previews are short enough to pass through whole, and
// a full text that matched nothing stays whole so the fallback path still
// hands the model something to read.
func (s *RankService) window(text, lower string, tokens []string, score int, hasFullText bool) string {
	if !hasFullText || score <= 0 {
		return text
	}
	for _, tok := range tokens {
		idx := foldedIndex(text, lower, tok)
		if idx < 0 {
			continue
		}
		start := idx - s.config.WindowBefore
		if start < 0 {
			start = 0
		}
		end := idx + s.config.WindowAfter
		if end > len(text) {
			end = len(text)
		}
		return text[start:end]
	}
	if len(text) > s.config.NoMatchPrefix {
		return text[:s.config.NoMatchPrefix]
	}
	return text
}

// foldedIndex locates tok in the lowercased text and maps the match back to
// a byte offset in the original. Lowercasing folds rune by rune but can
// change rune widths (U+023A is two bytes, its lowercase U+2C65 is three),
// so an index into lower is not always a valid index into text.
func foldedIndex(text, lower, tok string) int {
	li := strings.Index(lower, tok)
	if li < 0 {
		return -1
	}
	if len(lower) == len(text) {
		return li
	}
	oi := 0
	for i := 0; i < li; {
		_, ln := utf8.DecodeRuneInString(lower[i:])
		_, on := utf8.DecodeRuneInString(text[oi:])
		i += ln
		oi += on
	}
	return oi
}

// BuildContext renders ranked chunks into the single grounding string sent
// to the model. Source numbers follow the final rank order.
func (s *RankService) BuildContext(chunks []types.RankedChunk) string {
	parts := make([]string, len(chunks))
	for i, chunk := range chunks {
		parts[i] = fmt.Sprintf("[Source %d: %s]\n%s", i+1, chunk.FileName, chunk.Text)
	}
	return strings.Join(parts, "\n\n")
}
