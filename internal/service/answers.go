package service

import (
	"context"
	"time"

	"github.com/soominpark/nihongo-tracker/internal/domain/entities"
)

// WrongAnswerRepo persists the wrong-answer ledger.
type WrongAnswerRepo interface {
	RecordMiss(ctx context.Context, questionType string, ref entities.ContentRef, at time.Time) error
	Resolve(ctx context.Context, id int64) error
	ListUnresolvedWords(ctx context.Context) ([]entities.WrongWord, error)
	ListUnresolvedGrammars(ctx context.Context) ([]entities.WrongGrammar, error)
}

// LearningRepo persists learning history records.
type LearningRepo interface {
	MarkLearned(ctx context.Context, ref entities.ContentRef, at time.Time) error
}

// AnswerRecorder checks quiz answers and maintains the wrong-answer
// ledger and learning history.
type AnswerRecorder struct {
	wrong    WrongAnswerRepo
	learning LearningRepo

	now func() time.Time
}

// NewAnswerRecorder creates a new AnswerRecorder.
func NewAnswerRecorder(wrong WrongAnswerRepo, learning LearningRepo) *AnswerRecorder {
	return &AnswerRecorder{
		wrong:    wrong,
		learning: learning,
		now:      time.Now,
	}
}

// RecordAnswer checks the selected option against the question. Incorrect
// answers upsert the ledger entry for (question type, content); correct
// answers leave the ledger untouched, so a prior wrong entry stays open
// until explicitly resolved.
func (s *AnswerRecorder) RecordAnswer(ctx context.Context, q *entities.Question, selected string) (bool, error) {
	if q.IsCorrect(selected) {
		return true, nil
	}

	if err := s.wrong.RecordMiss(ctx, q.QuestionType(), q.Content, s.now()); err != nil {
		return false, err
	}

	return false, nil
}

// ResolveWrongAnswer marks a ledger entry as resolved. Already-resolved
// and unknown ids are a no-op.
func (s *AnswerRecorder) ResolveWrongAnswer(ctx context.Context, id int64) error {
	return s.wrong.Resolve(ctx, id)
}

// WrongAnswers returns all unresolved ledger entries joined with current
// content, grouped by kind and ordered worst-first.
func (s *AnswerRecorder) WrongAnswers(ctx context.Context) (*entities.WrongAnswerSet, error) {
	words, err := s.wrong.ListUnresolvedWords(ctx)
	if err != nil {
		return nil, err
	}

	grammars, err := s.wrong.ListUnresolvedGrammars(ctx)
	if err != nil {
		return nil, err
	}

	return &entities.WrongAnswerSet{Words: words, Grammars: grammars}, nil
}

// MarkLearned records that a piece of content was studied today.
func (s *AnswerRecorder) MarkLearned(ctx context.Context, ref entities.ContentRef) error {
	return s.learning.MarkLearned(ctx, ref, s.now())
}
