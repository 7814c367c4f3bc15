package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// InitSchema creates all tables and indexes if they don't exist yet.
// Called once at startup before any repository is used.
func InitSchema(ctx context.Context, db *pgxpool.Pool) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS words (
			id BIGSERIAL PRIMARY KEY,
			japanese TEXT NOT NULL,
			hiragana TEXT DEFAULT '',
			kanji TEXT DEFAULT '',
			korean TEXT NOT NULL,
			level TEXT DEFAULT 'N5',
			category TEXT DEFAULT '',
			example_sentence TEXT DEFAULT '',
			example_korean TEXT DEFAULT '',
			memo_tip TEXT DEFAULT '',
			is_user_added BOOLEAN DEFAULT FALSE,
			created_at TIMESTAMPTZ DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS grammars (
			id BIGSERIAL PRIMARY KEY,
			pattern TEXT NOT NULL,
			meaning TEXT NOT NULL,
			explanation TEXT DEFAULT '',
			level TEXT DEFAULT 'N5',
			connection_rule TEXT DEFAULT '',
			example_sentence TEXT DEFAULT '',
			example_korean TEXT DEFAULT '',
			created_at TIMESTAMPTZ DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS learning_history (
			id BIGSERIAL PRIMARY KEY,
			content_type TEXT NOT NULL,
			content_id BIGINT NOT NULL,
			learned_at TIMESTAMPTZ DEFAULT now(),
			review_count INT DEFAULT 0,
			next_review DATE,
			mastery_level INT DEFAULT 0,
			UNIQUE (content_type, content_id)
		)`,
		`CREATE TABLE IF NOT EXISTS quiz_results (
			id BIGSERIAL PRIMARY KEY,
			quiz_type TEXT NOT NULL,
			score INT NOT NULL,
			total_questions INT NOT NULL,
			details TEXT DEFAULT '',
			completed_at TIMESTAMPTZ DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS wrong_answers (
			id BIGSERIAL PRIMARY KEY,
			question_type TEXT NOT NULL,
			content_type TEXT NOT NULL,
			content_id BIGINT NOT NULL,
			wrong_count INT DEFAULT 1,
			last_wrong_at TIMESTAMPTZ DEFAULT now(),
			resolved BOOLEAN DEFAULT FALSE,
			UNIQUE (question_type, content_type, content_id)
		)`,
		`CREATE TABLE IF NOT EXISTS attendance (
			id BIGSERIAL PRIMARY KEY,
			date DATE UNIQUE NOT NULL,
			study_minutes INT DEFAULT 0,
			words_learned INT DEFAULT 0,
			quiz_taken INT DEFAULT 0,
			created_at TIMESTAMPTZ DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS daily_assignment (
			id BIGSERIAL PRIMARY KEY,
			date DATE NOT NULL,
			content_type TEXT NOT NULL,
			content_id BIGINT NOT NULL,
			completed BOOLEAN DEFAULT FALSE,
			created_at TIMESTAMPTZ DEFAULT now(),
			UNIQUE (date, content_type, content_id)
		)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}
