package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/soominpark/nihongo-tracker/internal/domain/entities"
)

var ErrGrammarNotFound = errors.New("grammar not found")

const grammarColumns = `id, pattern, meaning, explanation, level,
	connection_rule, example_sentence, example_korean, created_at`

// GrammarRepository provides read access to grammar patterns.
// Grammar content is corpus-only; there is no write path after seeding.
type GrammarRepository struct {
	db *pgxpool.Pool
}

// NewGrammarRepository creates a new GrammarRepository.
func NewGrammarRepository(db *pgxpool.Pool) *GrammarRepository {
	return &GrammarRepository{db: db}
}

func scanGrammar(row pgx.Row) (*entities.Grammar, error) {
	var g entities.Grammar
	err := row.Scan(
		&g.ID,
		&g.Pattern,
		&g.Meaning,
		&g.Explanation,
		&g.Level,
		&g.ConnectionRule,
		&g.ExampleSentence,
		&g.ExampleTranslation,
		&g.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

// GetByID retrieves a grammar pattern by its id.
// Returns ErrGrammarNotFound if it doesn't exist.
func (r *GrammarRepository) GetByID(ctx context.Context, id int64) (*entities.Grammar, error) {
	query := `SELECT ` + grammarColumns + ` FROM grammars WHERE id = $1`

	g, err := scanGrammar(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrGrammarNotFound
		}
		return nil, fmt.Errorf("get grammar: %w", err)
	}

	return g, nil
}

// GetAll retrieves all grammar patterns in corpus order.
func (r *GrammarRepository) GetAll(ctx context.Context) ([]entities.Grammar, error) {
	query := `SELECT ` + grammarColumns + ` FROM grammars ORDER BY id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("get all grammars: %w", err)
	}
	defer rows.Close()

	var grammars []entities.Grammar
	for rows.Next() {
		g, err := scanGrammar(rows)
		if err != nil {
			return nil, fmt.Errorf("scan grammar: %w", err)
		}
		grammars = append(grammars, *g)
	}

	return grammars, rows.Err()
}

// Count returns the total number of grammar patterns.
func (r *GrammarRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM grammars`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count grammars: %w", err)
	}

	return count, nil
}
