package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"organledger/internal/access"
	logisticsmodels "organledger/internal/logistics/models"
	logisticsstore "organledger/internal/logistics/store"
	matchmodels "organledger/internal/match/models"
	matchstore "organledger/internal/match/store"
	recipientmodels "organledger/internal/recipient/models"
	recipientstore "organledger/internal/recipient/store"
	"organledger/pkg/domain"
)

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "ledger.db")
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	matches := matchstore.NewInMemory()
	recipients := recipientstore.NewInMemory()
	logistics := logisticsstore.NewInMemory()

	store, err := NewStore(path, matches, recipients, logistics)
	require.NoError(t, err)
	store.BindGuard(access.NewGuard(domain.Principal("ST1OWNER")))

	m, err := matchmodels.NewMatch(1, 2, "kidney", 85, now)
	require.NoError(t, err)
	require.NoError(t, matches.Create(ctx, m))

	r, err := recipientmodels.NewRecipient(domain.Principal("ST2PATIENT"), "Jane Doe", "B-", "heart", 8, 1, now)
	require.NoError(t, err)
	require.NoError(t, recipients.CreateRecipient(ctx, r))

	h, err := recipientmodels.NewHospital(1, "General", "Springfield", now)
	require.NoError(t, err)
	require.NoError(t, recipients.CreateHospital(ctx, h))

	c, err := logisticsmodels.NewCourier(4, "Swift Logistics", "swift@example.com", now)
	require.NoError(t, err)
	require.NoError(t, logistics.CreateCourier(ctx, c))

	tr, err := logisticsmodels.NewTransport(1, "kidney", 2, 3, 4, now)
	require.NoError(t, err)
	require.NoError(t, logistics.CreateTransport(ctx, tr))

	require.NoError(t, store.Commit(ctx))
	require.NoError(t, store.Close())

	// Reopen against fresh registries and verify everything came back.
	matches2 := matchstore.NewInMemory()
	recipients2 := recipientstore.NewInMemory()
	logistics2 := logisticsstore.NewInMemory()

	store2, err := NewStore(path, matches2, recipients2, logistics2)
	require.NoError(t, err)
	defer func() { _ = store2.Close() }()

	owner, err := store2.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, domain.Principal("ST1OWNER"), owner)

	gotMatch, err := matches2.FindByID(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, "kidney", gotMatch.OrganType)
	require.Equal(t, 85, gotMatch.CompatibilityScore)

	gotRecipient, err := recipients2.FindRecipient(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, "Jane Doe", gotRecipient.Name)
	require.Equal(t, 8, gotRecipient.MedicalUrgency)

	gotHospital, err := recipients2.FindHospital(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, "General", gotHospital.Name)

	gotCourier, err := logistics2.FindCourier(ctx, 4)
	require.NoError(t, err)
	require.True(t, gotCourier.IsActive)

	gotTransport, err := logistics2.FindTransport(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, logisticsmodels.TransportStatusPreparing, gotTransport.Status)

	// Restored stores continue numbering after the highest persisted ID.
	m2, err := matchmodels.NewMatch(3, 4, "heart", 60, now)
	require.NoError(t, err)
	require.NoError(t, matches2.Create(ctx, m2))
	require.EqualValues(t, 2, m2.ID)
}

func TestLoadWithoutSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.db")
	store, err := NewStore(path, matchstore.NewInMemory(), recipientstore.NewInMemory(), logisticsstore.NewInMemory())
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	owner, err := store.Load(context.Background())
	require.NoError(t, err)
	require.True(t, owner.Zero())
}
