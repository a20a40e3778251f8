package training

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/voclab/trainer-api/internal/domain"
)

func TestActivateScope(t *testing.T) {
	t.Parallel() // Enable parallel execution
	env := newTestEnv(t)
	ctx := context.Background()

	deck := env.addDeck(t, "Verbs", false)

	require.NoError(t, env.svc.ActivateScope(ctx, deck.Ref()))
	active, err := env.svc.ScopeActive(ctx, deck.Ref())
	require.NoError(t, err)
	assert.True(t, active)

	// Activating an already-active scope is a no-op success.
	require.NoError(t, env.svc.ActivateScope(ctx, deck.Ref()))
	active, err = env.svc.ScopeActive(ctx, deck.Ref())
	require.NoError(t, err)
	assert.True(t, active)
}

func TestDeactivateScope(t *testing.T) {
	t.Parallel() // Enable parallel execution
	env := newTestEnv(t)
	ctx := context.Background()

	category := env.addCategory(t, "Food", true)

	require.NoError(t, env.svc.DeactivateScope(ctx, category.Ref()))
	active, err := env.svc.ScopeActive(ctx, category.Ref())
	require.NoError(t, err)
	assert.False(t, active)

	// Idempotent.
	require.NoError(t, env.svc.DeactivateScope(ctx, category.Ref()))
}

func TestToggleUnknownScope(t *testing.T) {
	t.Parallel() // Enable parallel execution
	env := newTestEnv(t)
	ctx := context.Background()

	missing := domain.DeckRef(uuid.New())

	assert.ErrorIs(t, env.svc.ActivateScope(ctx, missing), ErrScopeNotFound)
	assert.ErrorIs(t, env.svc.DeactivateScope(ctx, missing), ErrScopeNotFound)

	_, err := env.svc.ScopeActive(ctx, missing)
	assert.ErrorIs(t, err, ErrScopeNotFound)
}

func TestToggleInvalidScopeRef(t *testing.T) {
	t.Parallel() // Enable parallel execution
	env := newTestEnv(t)
	ctx := context.Background()

	assert.ErrorIs(t, env.svc.ActivateScope(ctx, domain.ScopeRef{Kind: "pool", ID: uuid.New()}), ErrInvalidScope)
	assert.ErrorIs(t, env.svc.ActivateScope(ctx, domain.DeckRef(uuid.Nil)), ErrInvalidScope)
}

func TestSetOrphanPoolActive(t *testing.T) {
	t.Parallel() // Enable parallel execution
	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.svc.SetOrphanPoolActive(ctx, true))
	active, err := env.scopes.OrphanPoolActive(ctx)
	require.NoError(t, err)
	assert.True(t, active)

	require.NoError(t, env.svc.SetOrphanPoolActive(ctx, false))
	active, err = env.scopes.OrphanPoolActive(ctx)
	require.NoError(t, err)
	assert.False(t, active)
}
