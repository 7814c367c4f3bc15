package service

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/soominpark/nihongo-tracker/internal/domain/entities"
)

// fakeWrongLedger mirrors the upsert semantics of the wrong-answer table:
// one row per (question type, content), a miss bumps the count and
// reopens the entry.
type fakeWrongLedger struct {
	entries map[string]*entities.WrongAnswer
	nextID  int64
}

func newFakeWrongLedger() *fakeWrongLedger {
	return &fakeWrongLedger{entries: make(map[string]*entities.WrongAnswer), nextID: 1}
}

func ledgerKey(questionType string, ref entities.ContentRef) string {
	return questionType + "/" + string(ref.Type) + "/" + strconv.FormatInt(ref.ID, 10)
}

func (f *fakeWrongLedger) RecordMiss(_ context.Context, questionType string, ref entities.ContentRef, at time.Time) error {
	key := ledgerKey(questionType, ref)
	if e, ok := f.entries[key]; ok {
		e.WrongCount++
		e.LastWrongAt = at
		e.Resolved = false
		return nil
	}

	f.entries[key] = &entities.WrongAnswer{
		ID:           f.nextID,
		QuestionType: questionType,
		Content:      ref,
		WrongCount:   1,
		LastWrongAt:  at,
	}
	f.nextID++
	return nil
}

func (f *fakeWrongLedger) Resolve(_ context.Context, id int64) error {
	for _, e := range f.entries {
		if e.ID == id {
			e.Resolved = true
		}
	}
	return nil
}

func (f *fakeWrongLedger) ListUnresolvedWords(_ context.Context) ([]entities.WrongWord, error) {
	var out []entities.WrongWord
	for _, e := range f.entries {
		if e.Content.Type == entities.ContentWord && !e.Resolved {
			out = append(out, entities.WrongWord{WrongAnswer: *e})
		}
	}
	return out, nil
}

func (f *fakeWrongLedger) ListUnresolvedGrammars(_ context.Context) ([]entities.WrongGrammar, error) {
	var out []entities.WrongGrammar
	for _, e := range f.entries {
		if e.Content.Type == entities.ContentGrammar && !e.Resolved {
			out = append(out, entities.WrongGrammar{WrongAnswer: *e})
		}
	}
	return out, nil
}

func (f *fakeWrongLedger) get(questionType string, ref entities.ContentRef) *entities.WrongAnswer {
	return f.entries[ledgerKey(questionType, ref)]
}

type fakeLearningLog struct {
	marked map[entities.ContentRef]int
}

func newFakeLearningLog() *fakeLearningLog {
	return &fakeLearningLog{marked: make(map[entities.ContentRef]int)}
}

func (f *fakeLearningLog) MarkLearned(_ context.Context, ref entities.ContentRef, _ time.Time) error {
	f.marked[ref]++
	return nil
}

func wordQuestion(id int64) *entities.Question {
	return &entities.Question{
		Content:       entities.ContentRef{Type: entities.ContentWord, ID: id},
		Direction:     entities.DirectionJPToKR,
		Prompt:        "「水」의 뜻은?",
		Options:       []string{"물", "불", "바람", "흙"},
		CorrectAnswer: "물",
	}
}

func TestRecordAnswer_Correct(t *testing.T) {
	ledger := newFakeWrongLedger()
	rec := NewAnswerRecorder(ledger, newFakeLearningLog())

	ok, err := rec.RecordAnswer(context.Background(), wordQuestion(1), "물")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("expected correct answer")
	}
	if len(ledger.entries) != 0 {
		t.Fatalf("correct answer must not touch the ledger, found %d entries", len(ledger.entries))
	}
}

func TestRecordAnswer_MissResolveMissCycle(t *testing.T) {
	ledger := newFakeWrongLedger()
	rec := NewAnswerRecorder(ledger, newFakeLearningLog())
	rec.now = func() time.Time { return time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC) }

	q := wordQuestion(1)
	ref := q.Content

	ok, err := rec.RecordAnswer(context.Background(), q, "불")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("expected incorrect answer")
	}

	entry := ledger.get(q.QuestionType(), ref)
	if entry == nil {
		t.Fatal("expected a ledger entry after first miss")
	}
	if entry.WrongCount != 1 || entry.Resolved {
		t.Fatalf("after first miss: want count 1 unresolved, got count %d resolved=%v", entry.WrongCount, entry.Resolved)
	}

	if _, err = rec.RecordAnswer(context.Background(), q, "바람"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entry.WrongCount != 2 {
		t.Fatalf("after second miss: want count 2, got %d", entry.WrongCount)
	}

	if err = rec.ResolveWrongAnswer(context.Background(), entry.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !entry.Resolved {
		t.Fatal("expected entry to be resolved")
	}

	// A later miss reopens the same entry at count 3.
	if _, err = rec.RecordAnswer(context.Background(), q, "흙"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entry.WrongCount != 3 || entry.Resolved {
		t.Fatalf("after reopening miss: want count 3 unresolved, got count %d resolved=%v", entry.WrongCount, entry.Resolved)
	}
}

func TestRecordAnswer_SeparateEntriesPerDirection(t *testing.T) {
	ledger := newFakeWrongLedger()
	rec := NewAnswerRecorder(ledger, newFakeLearningLog())

	jpToKR := wordQuestion(1)

	krToJP := wordQuestion(1)
	krToJP.Direction = entities.DirectionKRToJP
	krToJP.CorrectAnswer = "水"

	if _, err := rec.RecordAnswer(context.Background(), jpToKR, "불"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := rec.RecordAnswer(context.Background(), krToJP, "火"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(ledger.entries) != 2 {
		t.Fatalf("misses in different directions must not share an entry, got %d", len(ledger.entries))
	}
}

func TestWrongAnswers_GroupsByKind(t *testing.T) {
	ledger := newFakeWrongLedger()
	rec := NewAnswerRecorder(ledger, newFakeLearningLog())

	grammarQ := &entities.Question{
		Content:       entities.ContentRef{Type: entities.ContentGrammar, ID: 5},
		Prompt:        "「〜てから」의 의미는?",
		Options:       []string{"하고 나서", "하기 전에", "하는 동안", "하자마자"},
		CorrectAnswer: "하고 나서",
	}

	if _, err := rec.RecordAnswer(context.Background(), wordQuestion(1), "불"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := rec.RecordAnswer(context.Background(), grammarQ, "하기 전에"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	set, err := rec.WrongAnswers(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(set.Words) != 1 || len(set.Grammars) != 1 {
		t.Fatalf("expected 1 word and 1 grammar entry, got %d / %d", len(set.Words), len(set.Grammars))
	}
	if set.Grammars[0].QuestionType != entities.QuestionGeneral {
		t.Fatalf("grammar misses record under %q, got %q", entities.QuestionGeneral, set.Grammars[0].QuestionType)
	}
}

func TestMarkLearned(t *testing.T) {
	learning := newFakeLearningLog()
	rec := NewAnswerRecorder(newFakeWrongLedger(), learning)

	ref := entities.ContentRef{Type: entities.ContentWord, ID: 9}
	if err := rec.MarkLearned(context.Background(), ref); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if learning.marked[ref] != 1 {
		t.Fatalf("expected one learning record for %v", ref)
	}
}
