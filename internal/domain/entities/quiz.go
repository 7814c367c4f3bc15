package entities

import "time"

// QuizType selects the candidate pool for a generated quiz.
type QuizType string

const (
	QuizToday QuizType = "today" // today's assigned words
	QuizAll   QuizType = "all"   // user-added words plus everything learned
)

// Question direction for word questions. Grammar questions have no
// direction; their wrong answers are recorded under QuestionGeneral.
const (
	DirectionJPToKR = "jp_to_kr" // shown Japanese, answer in Korean
	DirectionKRToJP = "kr_to_jp" // shown Korean, answer in Japanese

	QuestionGeneral = "general"
)

// Question is a single multiple-choice question. Options always contain
// the correct answer; the rest are distractors drawn from the same pool.
type Question struct {
	Content       ContentRef
	Direction     string // jp_to_kr / kr_to_jp for words, empty for grammar
	Prompt        string
	Options       []string
	CorrectAnswer string
	Hint          string // memo tip for words, explanation for grammar
}

// IsCorrect reports whether the selected option matches the correct answer.
func (q *Question) IsCorrect(selected string) bool {
	return selected == q.CorrectAnswer
}

// QuestionType returns the ledger key for this question's wrong answers.
func (q *Question) QuestionType() string {
	if q.Direction == "" {
		return QuestionGeneral
	}
	return q.Direction
}

// QuizResult is one row of the append-only quiz score log.
type QuizResult struct {
	ID             int64
	QuizType       QuizType
	Score          int
	TotalQuestions int
	Details        string // serialized per-answer correctness, may be empty
	CompletedAt    time.Time
}

// Percentage returns the result score scaled to 0-100.
func (r *QuizResult) Percentage() float64 {
	if r.TotalQuestions == 0 {
		return 0
	}
	return float64(r.Score) * 100 / float64(r.TotalQuestions)
}
