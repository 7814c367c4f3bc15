package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/soominpark/nihongo-tracker/internal/config"
	"github.com/soominpark/nihongo-tracker/internal/domain/entities"
	"github.com/soominpark/nihongo-tracker/internal/logger"
	"github.com/soominpark/nihongo-tracker/internal/repository"
	"github.com/soominpark/nihongo-tracker/internal/service"
)

func main() {
	// .env is optional; real environments set variables directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	zlog, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer zlog.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dsn, err := cfg.DB.DSN()
	if err != nil {
		zlog.Fatal("database is not configured", zap.Error(err))
	}

	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		zlog.Fatal("invalid database config", zap.Error(err))
	}
	poolConfig.MaxConns = int32(cfg.DB.MaxConnections)
	poolConfig.MaxConnLifetime = cfg.DB.MaxConnLifetime

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		zlog.Fatal("failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	if err = repository.InitSchema(ctx, pool); err != nil {
		zlog.Fatal("failed to initialize schema", zap.Error(err))
	}

	// Seed the content store on first run.
	loader := repository.NewCorpusLoader(pool)
	words, grammars, err := loader.LoadIfEmpty(ctx, cfg.Corpus.WordsPath, cfg.Corpus.GrammarPath)
	if err != nil {
		zlog.Fatal("failed to load corpus", zap.Error(err))
	}
	if words > 0 || grammars > 0 {
		zlog.Info("corpus loaded", zap.Int("words", words), zap.Int("grammars", grammars))
	}

	// Initialize repositories and services.
	wordRepo := repository.NewWordRepository(pool)
	grammarRepo := repository.NewGrammarRepository(pool)
	learningRepo := repository.NewLearningRepository(pool)
	assignmentRepo := repository.NewAssignmentRepository(pool)
	quizResultRepo := repository.NewQuizResultRepository(pool)
	wrongAnswerRepo := repository.NewWrongAnswerRepository(pool)
	attendanceRepo := repository.NewAttendanceRepository(pool)

	assignmentEngine := service.NewAssignmentEngine(wordRepo, assignmentRepo)
	quizGenerator := service.NewQuizGenerator(assignmentEngine, wordRepo, learningRepo, grammarRepo, service.QuizConfig{
		TodayPoolSize:   cfg.Quiz.TodayPoolSize,
		AllPoolFallback: cfg.Quiz.AllPoolFallback,
	})
	answerRecorder := service.NewAnswerRecorder(wrongAnswerRepo, learningRepo)
	statsAggregator := service.NewStatsAggregator(attendanceRepo, quizResultRepo, learningRepo, wordRepo)
	vocabManager := service.NewVocabManager(wordRepo)

	// Mark today's attendance before anything reads the streak.
	if err = statsAggregator.CheckInToday(ctx); err != nil {
		zlog.Fatal("failed to check in attendance", zap.Error(err))
	}

	todays, err := assignmentEngine.TodaysWords(ctx, cfg.Daily.WordLimit)
	if err != nil {
		zlog.Fatal("failed to compute today's words", zap.Error(err))
	}
	for _, w := range todays {
		zlog.Info("today's word",
			zap.Int64("id", w.ID),
			zap.String("japanese", w.Japanese),
			zap.String("korean", w.Korean),
		)
	}

	quiz, err := quizGenerator.GenerateFullQuiz(ctx, entities.QuizToday, cfg.Quiz.WordCount, cfg.Quiz.GrammarCount)
	if err != nil {
		zlog.Fatal("failed to generate quiz", zap.Error(err))
	}
	if len(quiz) == 0 {
		zlog.Warn("not enough content to start a quiz")
	} else {
		zlog.Info("today's quiz ready", zap.Int("questions", len(quiz)))
	}

	userWords, err := vocabManager.UserWords(ctx)
	if err != nil {
		zlog.Fatal("failed to load user vocabulary", zap.Error(err))
	}
	zlog.Info("my vocabulary", zap.Int("words", len(userWords)))

	wrongs, err := answerRecorder.WrongAnswers(ctx)
	if err != nil {
		zlog.Fatal("failed to load wrong answers", zap.Error(err))
	}
	zlog.Info("review notebook",
		zap.Int("words", len(wrongs.Words)),
		zap.Int("grammars", len(wrongs.Grammars)),
	)

	stats, err := statsAggregator.Statistics(ctx)
	if err != nil {
		zlog.Fatal("failed to compute statistics", zap.Error(err))
	}
	zlog.Info("statistics",
		zap.Int("learned_words", stats.LearnedWords),
		zap.Int("total_words", stats.TotalWords),
		zap.Int("user_added_words", stats.UserAddedWords),
		zap.Int("quiz_count", stats.QuizCount),
		zap.Float64("avg_score", stats.AvgScore),
		zap.Float64("best_score", stats.BestScore),
		zap.Int("total_study_days", stats.TotalStudyDays),
		zap.Int("streak", stats.Streak),
	)
}
