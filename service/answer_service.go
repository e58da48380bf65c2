package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tieubaoca/studymate-be/repository"
	"github.com/tieubaoca/studymate-be/types"
	"go.uber.org/zap"
)

const (
	answerNoDocuments = "You haven't uploaded any documents yet. " +
		"Please upload course materials first!"
	answerNoRelevantContent = "I couldn't find relevant information in your " +
		"uploaded documents to answer this question."
)

// ErrEmptyQuestion marks invalid input so the handler can answer 400
// instead of 500.
var ErrEmptyQuestion = errors.New("question is required")

// AnswerService runs the whole pipeline for one question: fetch the user's
// documents, rank them, assemble the context and ask the model.
type AnswerService interface {
	AnswerQuestion(ctx context.Context, question, userID string) (*types.AnswerResult, error)
}

type answerService struct {
	documents repository.DocumentRepo
	ranker    *RankService
	ai        AIService
	logger    *zap.Logger
}

func NewAnswerService(
	documents repository.DocumentRepo,
	ranker *RankService,
	ai AIService,
	logger *zap.Logger,
) AnswerService {
	return &answerService{
		documents: documents,
		ranker:    ranker,
		ai:        ai,
		logger:    logger,
	}
}

// AnswerQuestion resolves every non-error path to an answer string. "No
// documents", "nothing relevant" and an empty model reply are all valid
// terminal states, not failures.
func (s *answerService) AnswerQuestion(ctx context.Context, question, userID string) (*types.AnswerResult, error) {
	if strings.TrimSpace(question) == "" {
		return nil, ErrEmptyQuestion
	}
	if userID == "" {
		userID = types.DefaultUserID
	}

	docs, err := s.documents.FetchByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("fetch documents: %w", err)
	}
	s.logger.Debug("documents fetched",
		zap.String("user_id", userID),
		zap.Int("count", len(docs)),
	)

	if len(docs) == 0 {
		return &types.AnswerResult{
			Answer:  answerNoDocuments,
			Sources: []string{},
		}, nil
	}

	chunks := s.ranker.Rank(question, docs)
	if len(chunks) == 0 {
		return &types.AnswerResult{
			Answer:  answerNoRelevantContent,
			Sources: []string{},
		}, nil
	}
	for _, chunk := range chunks {
		s.logger.Debug("ranked chunk",
			zap.String("file_name", chunk.FileName),
			zap.Int("score", chunk.Score),
		)
	}

	contextText := s.ranker.BuildContext(chunks)
	answer, err := s.ai.Answer(ctx, question, contextText)
	if err != nil {
		return nil, fmt.Errorf("generate answer: %w", err)
	}

	return &types.AnswerResult{
		Answer:     answer,
		Sources:    uniqueSources(chunks),
		ChunksUsed: len(chunks),
	}, nil
}

// uniqueSources keeps the first occurrence of each filename in rank order.
// Never nil, so the JSON field stays an array.
func uniqueSources(chunks []types.RankedChunk) []string {
	seen := make(map[string]bool, len(chunks))
	sources := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		if seen[chunk.FileName] {
			continue
		}
		seen[chunk.FileName] = true
		sources = append(sources, chunk.FileName)
	}
	return sources
}
