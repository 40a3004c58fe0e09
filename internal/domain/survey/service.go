package survey

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotFound marks a lookup miss. Handlers map it to a 404; it is a
// normal outcome, not a storage failure.
var ErrNotFound = errors.New("survey not found")

// ErrScoringFailed wraps failures from the configured scorer. Only the
// webhook scorer can produce it; the rule scorer never fails.
var ErrScoringFailed = errors.New("scoring failed")

type Service struct {
	repo   Repository
	scorer Scorer
}

func NewService(repo Repository, scorer Scorer) *Service {
	return &Service{repo: repo, scorer: scorer}
}

func (s *Service) List(ctx context.Context) ([]Entity, error) {
	return s.repo.List(ctx)
}

func (s *Service) GetByID(ctx context.Context, id string) (*Entity, error) {
	return s.repo.GetByID(ctx, id)
}

// Create scores the submission synchronously and persists it in a
// single insert. The score is computed exactly once here; no later
// update path recomputes it.
func (s *Service) Create(ctx context.Context, in CreateInput) (*Entity, error) {
	score, err := s.scorer.Score(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrScoringFailed, err)
	}
	in.CreditScore = score

	created, err := s.repo.Create(ctx, in)
	if err != nil {
		return nil, err
	}
	return created, nil
}

// ReplaceSalarySlip reproduces the historical PUT semantics: the only
// attribute it touches is the salary-slip attachment.
func (s *Service) ReplaceSalarySlip(ctx context.Context, id string, image []byte) (*Entity, error) {
	return s.repo.ReplaceSalarySlip(ctx, id, image)
}

func (s *Service) ReplaceUtilityBill(ctx context.Context, id string, image []byte) (*Entity, error) {
	return s.repo.ReplaceUtilityBill(ctx, id, image)
}

// Update applies a general partial patch. It never touches the credit
// score or the attachments.
func (s *Service) Update(ctx context.Context, id string, p Patch) (*Entity, error) {
	return s.repo.ApplyPatch(ctx, id, p)
}

func (s *Service) UpdateScore(ctx context.Context, id string, score int32) (*Entity, error) {
	return s.repo.UpdateScore(ctx, id, clampScore(score))
}

func (s *Service) Delete(ctx context.Context, id string) (bool, error) {
	return s.repo.Delete(ctx, id)
}

func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	return s.repo.Stats(ctx)
}
