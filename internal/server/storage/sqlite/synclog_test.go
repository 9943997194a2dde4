package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bizsync/bizsync/internal/models"
)

func TestStorage_AppendSyncLog_AndRead(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	localTime := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	entries := []*models.SyncLogEntry{
		{
			DeviceID:   "device-1",
			EntityType: models.EntityCustomers,
			LogicalID:  "cust-1",
			EntityID:   10,
			Action:     "CREATE",
			Outcome:    models.OutcomeSuccess,
			CreatedAt:  localTime,
		},
		{
			DeviceID:   "device-1",
			EntityType: models.EntityOrders,
			LogicalID:  "ord-1",
			Action:     "UPDATE",
			Outcome:    models.OutcomeConflict,
			Detail:     "newest_wins",
			LocalTime:  &localTime,
			CreatedAt:  localTime.Add(time.Second),
		},
	}

	require.NoError(t, store.AppendSyncLog(ctx, entries))

	got, err := store.GetSyncLogByDevice(ctx, "device-1", 10)
	require.NoError(t, err)
	require.Len(t, got, 2)

	// Newest first.
	assert.Equal(t, "ord-1", got[0].LogicalID)
	assert.Equal(t, models.OutcomeConflict, got[0].Outcome)
	assert.Equal(t, "newest_wins", got[0].Detail)
	require.NotNil(t, got[0].LocalTime)
	assert.True(t, got[0].LocalTime.Equal(localTime))

	assert.Equal(t, "cust-1", got[1].LogicalID)
	assert.Equal(t, int64(10), got[1].EntityID)
}

func TestStorage_AppendSyncLog_Empty(t *testing.T) {
	store := createTestStorage(t)

	require.NoError(t, store.AppendSyncLog(context.Background(), nil))
}

func TestStorage_GetSyncLogByDevice_Limit(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	var entries []*models.SyncLogEntry
	for i := 0; i < 5; i++ {
		entries = append(entries, &models.SyncLogEntry{
			DeviceID:   "device-1",
			EntityType: models.EntityCustomers,
			LogicalID:  "cust-1",
			Action:     "UPDATE",
			Outcome:    models.OutcomeSuccess,
			CreatedAt:  base.Add(time.Duration(i) * time.Second),
		})
	}
	require.NoError(t, store.AppendSyncLog(ctx, entries))

	got, err := store.GetSyncLogByDevice(ctx, "device-1", 3)
	require.NoError(t, err)
	assert.Len(t, got, 3)

	// Other devices are not visible.
	got, err = store.GetSyncLogByDevice(ctx, "device-2", 10)
	require.NoError(t, err)
	assert.Empty(t, got)
}
