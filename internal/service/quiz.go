package service

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/soominpark/nihongo-tracker/internal/domain/entities"
)

const distractorsPerQuestion = 3

// TodayWordSource provides today's assigned words for the "today" quiz pool.
type TodayWordSource interface {
	TodaysWords(ctx context.Context, limit int) ([]entities.Word, error)
}

// WordPoolRepo provides the word listings quiz pools are built from.
type WordPoolRepo interface {
	GetAll(ctx context.Context) ([]entities.Word, error)
	GetUserAdded(ctx context.Context) ([]entities.Word, error)
	GetByIDs(ctx context.Context, ids []int64) ([]entities.Word, error)
}

// LearnedWordRepo lists words that have a learning record.
type LearnedWordRepo interface {
	ListLearnedWordIDs(ctx context.Context) ([]int64, error)
}

// GrammarPoolRepo provides the grammar pool.
type GrammarPoolRepo interface {
	GetAll(ctx context.Context) ([]entities.Grammar, error)
}

// QuizConfig tunes quiz pool construction.
type QuizConfig struct {
	// TodayPoolSize oversamples the today-set so distractors exist even
	// when the quiz draws fewer subjects.
	TodayPoolSize int
	// AllPoolFallback widens an empty "all" pool to the full corpus
	// instead of failing with zero questions.
	AllPoolFallback bool
}

// QuizGenerator builds shuffled multiple-choice question sets.
type QuizGenerator struct {
	today    TodayWordSource
	words    WordPoolRepo
	learned  LearnedWordRepo
	grammars GrammarPoolRepo
	cfg      QuizConfig

	rng *rand.Rand
}

// NewQuizGenerator creates a new QuizGenerator.
func NewQuizGenerator(
	today TodayWordSource,
	words WordPoolRepo,
	learned LearnedWordRepo,
	grammars GrammarPoolRepo,
	cfg QuizConfig,
) *QuizGenerator {
	if cfg.TodayPoolSize <= 0 {
		cfg.TodayPoolSize = 10
	}

	return &QuizGenerator{
		today:    today,
		words:    words,
		learned:  learned,
		grammars: grammars,
		cfg:      cfg,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// GenerateFullQuiz builds a combined word + grammar quiz for the given
// pool type. Undersized pools degrade to fewer (or zero) questions per
// type; the caller treats an empty result as "cannot start quiz".
func (g *QuizGenerator) GenerateFullQuiz(
	ctx context.Context, quizType entities.QuizType, wordCount, grammarCount int,
) ([]entities.Question, error) {
	pool, err := g.wordPool(ctx, quizType)
	if err != nil {
		return nil, err
	}

	grammarPool, err := g.grammars.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	questions := g.GenerateWordQuiz(pool, wordCount)
	questions = append(questions, g.GenerateGrammarQuiz(grammarPool, grammarCount)...)

	g.rng.Shuffle(len(questions), func(i, j int) {
		questions[i], questions[j] = questions[j], questions[i]
	})

	return questions, nil
}

func (g *QuizGenerator) wordPool(ctx context.Context, quizType entities.QuizType) ([]entities.Word, error) {
	switch quizType {
	case entities.QuizToday:
		return g.today.TodaysWords(ctx, g.cfg.TodayPoolSize)

	case entities.QuizAll:
		return g.allPool(ctx)

	default:
		return nil, fmt.Errorf("unknown quiz type: %s", quizType)
	}
}

// allPool prioritizes the learner's own words, then everything with a
// learning record. When nothing qualifies and the fallback is enabled,
// the full corpus serves as the pool.
func (g *QuizGenerator) allPool(ctx context.Context) ([]entities.Word, error) {
	userWords, err := g.words.GetUserAdded(ctx)
	if err != nil {
		return nil, err
	}

	learnedIDs, err := g.learned.ListLearnedWordIDs(ctx)
	if err != nil {
		return nil, err
	}

	var learnedWords []entities.Word
	if len(learnedIDs) > 0 {
		learnedWords, err = g.words.GetByIDs(ctx, learnedIDs)
	} else if g.cfg.AllPoolFallback {
		learnedWords, err = g.words.GetAll(ctx)
	}
	if err != nil {
		return nil, err
	}

	seen := make(map[int64]struct{}, len(userWords))
	pool := make([]entities.Word, 0, len(userWords)+len(learnedWords))
	for _, w := range userWords {
		seen[w.ID] = struct{}{}
		pool = append(pool, w)
	}
	for _, w := range learnedWords {
		if _, dup := seen[w.ID]; dup {
			continue
		}
		seen[w.ID] = struct{}{}
		pool = append(pool, w)
	}

	return pool, nil
}

// GenerateWordQuiz builds up to n word questions from the pool. A pool
// smaller than four items cannot supply three distractors plus the
// correct answer, so it yields no questions at all.
func (g *QuizGenerator) GenerateWordQuiz(pool []entities.Word, n int) []entities.Question {
	if len(pool) < distractorsPerQuestion+1 {
		return nil
	}

	subjects := g.sampleWords(pool, n)

	questions := make([]entities.Question, 0, len(subjects))
	for _, w := range subjects {
		others := make([]entities.Word, 0, len(pool)-1)
		for _, o := range pool {
			if o.ID != w.ID {
				others = append(others, o)
			}
		}
		distractors := g.sampleWords(others, distractorsPerQuestion)

		var q entities.Question
		if g.rng.Intn(2) == 0 {
			q = entities.Question{
				Content:       w.Ref(),
				Direction:     entities.DirectionJPToKR,
				Prompt:        fmt.Sprintf("「%s」의 뜻은?", w.Japanese),
				CorrectAnswer: w.Korean,
				Hint:          w.MemoTip,
			}
			q.Options = append(q.Options, w.Korean)
			for _, d := range distractors {
				q.Options = append(q.Options, d.Korean)
			}
		} else {
			q = entities.Question{
				Content:       w.Ref(),
				Direction:     entities.DirectionKRToJP,
				Prompt:        fmt.Sprintf("「%s」을(를) 일본어로?", w.Korean),
				CorrectAnswer: w.Japanese,
				Hint:          w.MemoTip,
			}
			q.Options = append(q.Options, w.Japanese)
			for _, d := range distractors {
				q.Options = append(q.Options, d.Japanese)
			}
		}

		g.shuffleOptions(q.Options)
		questions = append(questions, q)
	}

	return questions
}

// GenerateGrammarQuiz builds up to n pattern-to-meaning questions.
// Same pool-size rule as word questions.
func (g *QuizGenerator) GenerateGrammarQuiz(pool []entities.Grammar, n int) []entities.Question {
	if len(pool) < distractorsPerQuestion+1 {
		return nil
	}

	subjects := g.sampleGrammars(pool, n)

	questions := make([]entities.Question, 0, len(subjects))
	for _, gr := range subjects {
		others := make([]entities.Grammar, 0, len(pool)-1)
		for _, o := range pool {
			if o.ID != gr.ID {
				others = append(others, o)
			}
		}
		distractors := g.sampleGrammars(others, distractorsPerQuestion)

		q := entities.Question{
			Content:       gr.Ref(),
			Prompt:        fmt.Sprintf("「%s」의 의미는?", gr.Pattern),
			CorrectAnswer: gr.Meaning,
			Hint:          gr.Explanation,
		}
		q.Options = append(q.Options, gr.Meaning)
		for _, d := range distractors {
			q.Options = append(q.Options, d.Meaning)
		}

		g.shuffleOptions(q.Options)
		questions = append(questions, q)
	}

	return questions
}

// sampleWords picks up to n words without replacement.
func (g *QuizGenerator) sampleWords(pool []entities.Word, n int) []entities.Word {
	out := make([]entities.Word, len(pool))
	copy(out, pool)
	g.rng.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})

	if n < len(out) {
		out = out[:n]
	}
	return out
}

func (g *QuizGenerator) sampleGrammars(pool []entities.Grammar, n int) []entities.Grammar {
	out := make([]entities.Grammar, len(pool))
	copy(out, pool)
	g.rng.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})

	if n < len(out) {
		out = out[:n]
	}
	return out
}

func (g *QuizGenerator) shuffleOptions(options []string) {
	g.rng.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})
}
