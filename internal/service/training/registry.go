package training

import (
	"context"
	"log/slog"

	"github.com/voclab/trainer-api/internal/domain"
	"github.com/voclab/trainer-api/internal/platform/logger"
)

// ActivateScope implements Service.ActivateScope.
func (s *service) ActivateScope(ctx context.Context, ref domain.ScopeRef) error {
	return s.setScopeActive(ctx, ref, true)
}

// DeactivateScope implements Service.DeactivateScope.
func (s *service) DeactivateScope(ctx context.Context, ref domain.ScopeRef) error {
	return s.setScopeActive(ctx, ref, false)
}

// setScopeActive validates the reference and forwards the toggle to the
// scope store, which applies it as one atomic row update. Repeating the
// same toggle is a no-op success.
func (s *service) setScopeActive(ctx context.Context, ref domain.ScopeRef, active bool) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := ref.Validate(); err != nil {
		return ErrInvalidScope
	}

	if err := s.scopes.SetLearningActive(ctx, ref, active); err != nil {
		mapped := mapScopeErr(err)
		if mapped == ErrScopeNotFound {
			log.Warn("scope not found for toggle",
				slog.String("kind", string(ref.Kind)),
				slog.String("scope_id", ref.ID.String()))
			return ErrScopeNotFound
		}
		log.Error("failed to toggle scope",
			slog.String("error", err.Error()),
			slog.String("kind", string(ref.Kind)),
			slog.String("scope_id", ref.ID.String()))
		return &ServiceError{Operation: "toggle_scope", Message: "failed to toggle scope", Err: err}
	}

	log.Debug("scope toggled",
		slog.String("kind", string(ref.Kind)),
		slog.String("scope_id", ref.ID.String()),
		slog.Bool("active", active))
	return nil
}

// ScopeActive implements Service.ScopeActive.
func (s *service) ScopeActive(ctx context.Context, ref domain.ScopeRef) (bool, error) {
	if err := ref.Validate(); err != nil {
		return false, ErrInvalidScope
	}

	active, err := s.scopes.IsLearningActive(ctx, ref)
	if err != nil {
		return false, mapScopeErr(err)
	}
	return active, nil
}

// SetOrphanPoolActive implements Service.SetOrphanPoolActive.
func (s *service) SetOrphanPoolActive(ctx context.Context, active bool) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.scopes.SetOrphanPoolActive(ctx, active); err != nil {
		log.Error("failed to set orphan pool flag",
			slog.String("error", err.Error()),
			slog.Bool("active", active))
		return &ServiceError{Operation: "set_orphan_pool", Message: "failed to update orphan pool setting", Err: err}
	}

	log.Debug("orphan pool flag set", slog.Bool("active", active))
	return nil
}
