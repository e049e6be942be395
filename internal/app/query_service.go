package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	apperrors "docanalyzer/internal/common/errors"
	"docanalyzer/internal/repository"
)

const systemPrompt = "You are an AI assistant specialized in document analysis and question answering. " +
	"Your task is to provide accurate, concise answers based solely on the content of the provided documents. " +
	"Follow these guidelines:\n" +
	"1. Only use information explicitly stated in the documents\n" +
	"2. If the answer is not in the documents, say so clearly\n" +
	"3. Cite specific document names when referencing information\n" +
	"4. Provide direct quotes when appropriate\n" +
	"5. Structure complex answers with bullet points or numbered lists\n" +
	"6. Format code snippets, tables, and technical content appropriately\n"

const emptyContentResponse = "I couldn't find any content in the selected documents. " +
	"Please try with different documents or check if the documents were processed correctly."

// Generator produces a model completion for an assembled prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Source identifies one document that contributed to an answer.
type Source struct {
	DocumentID string `json:"document_id"`
	FileName   string `json:"file_name"`
}

type Answer struct {
	Response  string    `json:"response"`
	Sources   []Source  `json:"sources"`
	CreatedAt time.Time `json:"created_at"`
}

type QueryService struct {
	docs      *repository.DocumentRepository
	generator Generator
	logger    *slog.Logger
}

func NewQueryService(docs *repository.DocumentRepository, generator Generator, logger *slog.Logger) *QueryService {
	if logger == nil {
		logger = slog.Default()
	}
	return &QueryService{docs: docs, generator: generator, logger: logger}
}

// Answer runs a one-shot question over the given documents. When none of the
// documents carries extracted text the fixed fallback response is returned
// without calling the model.
func (s *QueryService) Answer(ctx context.Context, documentIDs []string, question string) (*Answer, error) {
	if len(documentIDs) == 0 {
		return nil, fmt.Errorf("%w: no documents selected", apperrors.ErrInvalidInput)
	}
	if strings.TrimSpace(question) == "" {
		return nil, fmt.Errorf("%w: query is required", apperrors.ErrInvalidInput)
	}

	sources := make([]Source, 0, len(documentIDs))
	var contextBuilder strings.Builder
	for i, id := range documentIDs {
		doc, err := s.docs.GetByID(id)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrPersistence, err)
		}
		if doc == nil {
			return nil, fmt.Errorf("%w: document %s", apperrors.ErrNotFound, id)
		}
		sources = append(sources, Source{DocumentID: doc.ID, FileName: doc.FileName})

		content, err := s.docs.GetContent(id)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrPersistence, err)
		}
		if content == nil || content.ExtractedText == "" {
			s.logger.Warn("no content extracted for document", "document_id", id, "file_name", doc.FileName)
			continue
		}
		fmt.Fprintf(&contextBuilder, "\n\n--- DOCUMENT %d: %s (ID: %s) ---\n%s\n", i+1, doc.FileName, doc.ID, content.ExtractedText)
	}

	documentContext := contextBuilder.String()
	if strings.TrimSpace(documentContext) == "" {
		s.logger.Error("no document content available for query")
		return &Answer{
			Response:  emptyContentResponse,
			Sources:   sources,
			CreatedAt: time.Now(),
		}, nil
	}

	if s.generator == nil {
		return nil, fmt.Errorf("model generator is not configured")
	}

	prompt := fmt.Sprintf(
		"%s\n\nDOCUMENT CONTENT:\n%s\n\nUSER QUERY: %s\n\nPlease provide a comprehensive answer based only on the information in the documents above.",
		systemPrompt, documentContext, question)
	s.logger.Info("generated prompt", "length", len(prompt), "documents", len(documentIDs))

	response, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("generate answer failed: %w", err)
	}

	return &Answer{
		Response:  response,
		Sources:   sources,
		CreatedAt: time.Now(),
	}, nil
}
