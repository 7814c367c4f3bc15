package service

import (
	"context"
	"math/rand"
	"time"

	"github.com/soominpark/nihongo-tracker/internal/domain/entities"
)

// WordCandidateRepo provides the word listings the assignment engine
// selects from.
type WordCandidateRepo interface {
	GetByIDs(ctx context.Context, ids []int64) ([]entities.Word, error)
	ListIDs(ctx context.Context, userAdded bool) ([]int64, error)
	ListUnlearnedIDs(ctx context.Context, userAdded bool) ([]int64, error)
}

// AssignmentRepo persists per-date study sets.
type AssignmentRepo interface {
	ListForDate(ctx context.Context, date time.Time, contentType entities.ContentType) ([]int64, error)
	Store(ctx context.Context, date time.Time, contentType entities.ContentType, ids []int64) ([]int64, error)
}

// AssignmentEngine computes the fixed study set for the current date.
// The first call of a day selects and persists the set; every later call
// returns the same items, ordered by id.
type AssignmentEngine struct {
	words       WordCandidateRepo
	assignments AssignmentRepo

	rng *rand.Rand
	now func() time.Time
}

// NewAssignmentEngine creates a new AssignmentEngine.
func NewAssignmentEngine(words WordCandidateRepo, assignments AssignmentRepo) *AssignmentEngine {
	return &AssignmentEngine{
		words:       words,
		assignments: assignments,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
		now:         time.Now,
	}
}

// TodaysWords returns today's study set, selecting and persisting it on
// the first call of the day. Returns at most limit words and never an
// error for an empty corpus, just an empty list.
func (e *AssignmentEngine) TodaysWords(ctx context.Context, limit int) ([]entities.Word, error) {
	if limit <= 0 {
		return nil, nil
	}

	today := civilDate(e.now())

	assigned, err := e.assignments.ListForDate(ctx, today, entities.ContentWord)
	if err != nil {
		return nil, err
	}
	if len(assigned) > 0 {
		return e.words.GetByIDs(ctx, assigned)
	}

	selected, err := e.selectCandidates(ctx, limit)
	if err != nil {
		return nil, err
	}
	if len(selected) == 0 {
		return nil, nil
	}

	// Store returns the canonical set: if a concurrent caller won the
	// per-date race, its rows come back instead of ours.
	stored, err := e.assignments.Store(ctx, today, entities.ContentWord, selected)
	if err != nil {
		return nil, err
	}

	return e.words.GetByIDs(ctx, stored)
}

// selectCandidates fills the day's quota from prioritized tiers. Each
// tier is shuffled independently; an id picked by an earlier tier is
// never picked again by a later one.
func (e *AssignmentEngine) selectCandidates(ctx context.Context, limit int) ([]int64, error) {
	tiers := []func(context.Context) ([]int64, error){
		// Tier 1: user-added words never studied.
		func(ctx context.Context) ([]int64, error) {
			return e.words.ListUnlearnedIDs(ctx, true)
		},
		// Tier 2: corpus words never studied.
		func(ctx context.Context) ([]int64, error) {
			return e.words.ListUnlearnedIDs(ctx, false)
		},
		// Tier 3: the full set, user-added first, learned or not. Only
		// reached when the unlearned pool is smaller than the quota.
		func(ctx context.Context) ([]int64, error) {
			userAdded, err := e.words.ListIDs(ctx, true)
			if err != nil {
				return nil, err
			}
			standard, err := e.words.ListIDs(ctx, false)
			if err != nil {
				return nil, err
			}
			e.shuffleIDs(userAdded)
			e.shuffleIDs(standard)
			return append(userAdded, standard...), nil
		},
	}

	picked := make([]int64, 0, limit)
	seen := make(map[int64]struct{}, limit)

	for i, tier := range tiers {
		if len(picked) >= limit {
			break
		}

		ids, err := tier(ctx)
		if err != nil {
			return nil, err
		}
		// The final tier orders its groups itself.
		if i < len(tiers)-1 {
			e.shuffleIDs(ids)
		}

		for _, id := range ids {
			if len(picked) >= limit {
				break
			}
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			picked = append(picked, id)
		}
	}

	return picked, nil
}

func (e *AssignmentEngine) shuffleIDs(ids []int64) {
	e.rng.Shuffle(len(ids), func(i, j int) {
		ids[i], ids[j] = ids[j], ids[i]
	})
}

// civilDate truncates a timestamp to its UTC calendar date.
func civilDate(t time.Time) time.Time {
	return t.UTC().Truncate(24 * time.Hour)
}
