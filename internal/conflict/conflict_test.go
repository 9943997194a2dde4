package conflict

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bizsync/bizsync/internal/models"
)

func makeRecord(logicalID string, updatedAt time.Time, payload string) *models.Record {
	return &models.Record{
		LogicalID:  logicalID,
		EntityType: models.EntityCustomers,
		Payload:    json.RawMessage(payload),
		CreatedAt:  updatedAt.Add(-time.Hour),
		UpdatedAt:  updatedAt,
	}
}

func TestDetect_NoServerRecord(t *testing.T) {
	local := makeRecord("CUST-1", time.Now(), `{"name":"A"}`)

	c := Detect(local, nil)

	assert.Nil(t, c, "missing server record is a create, not a conflict")
}

func TestDetect_ToleranceWindow(t *testing.T) {
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		delta    time.Duration
		conflict bool
	}{
		{name: "identical timestamps", delta: 0, conflict: false},
		{name: "within tolerance", delta: 500 * time.Millisecond, conflict: false},
		{name: "exactly at tolerance", delta: 1000 * time.Millisecond, conflict: false},
		{name: "just past tolerance", delta: 1001 * time.Millisecond, conflict: true},
		{name: "well past tolerance", delta: time.Minute, conflict: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			local := makeRecord("CUST-1", base.Add(tt.delta), `{"name":"local"}`)
			server := makeRecord("CUST-1", base, `{"name":"server"}`)

			c := Detect(local, server)

			if tt.conflict {
				require.NotNil(t, c)
				assert.Equal(t, local, c.Local)
				assert.Equal(t, server, c.Server)
			} else {
				assert.Nil(t, c)
			}

			// Direction of the skew must not matter.
			c = Detect(server, local)
			assert.Equal(t, tt.conflict, c != nil)
		})
	}
}

func TestDetect_FallsBackToCreatedAt(t *testing.T) {
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	local := &models.Record{
		LogicalID:  "ORD-1",
		EntityType: models.EntityOrders,
		CreatedAt:  base.Add(time.Hour),
	}
	server := makeRecord("ORD-1", base, `{}`)

	c := Detect(local, server)

	require.NotNil(t, c)
	assert.Equal(t, local.CreatedAt, c.LocalTimestamp)
}

func TestWinner(t *testing.T) {
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	newerLocal := Detect(makeRecord("C-1", base.Add(time.Minute), `{}`), makeRecord("C-1", base, `{}`))
	require.NotNil(t, newerLocal)
	assert.Equal(t, "client", newerLocal.Winner())

	newerServer := Detect(makeRecord("C-1", base, `{}`), makeRecord("C-1", base.Add(time.Minute), `{}`))
	require.NotNil(t, newerServer)
	assert.Equal(t, "server", newerServer.Winner())
}

func TestResolve_ServerWins(t *testing.T) {
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	local := makeRecord("C-1", base.Add(time.Minute), `{"name":"local"}`)
	server := makeRecord("C-1", base, `{"name":"server"}`)
	c := Detect(local, server)
	require.NotNil(t, c)

	winner, err := Resolve(c, StrategyServerWins)

	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"server"}`, string(winner.Payload))
}

func TestResolve_ClientWins(t *testing.T) {
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	local := makeRecord("C-1", base, `{"name":"local"}`)
	server := makeRecord("C-1", base.Add(time.Minute), `{"name":"server"}`)
	c := Detect(local, server)
	require.NotNil(t, c)

	winner, err := Resolve(c, StrategyClientWins)

	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"local"}`, string(winner.Payload))
}

func TestResolve_NewestWins(t *testing.T) {
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("local newer", func(t *testing.T) {
		c := Detect(makeRecord("C-1", base.Add(time.Minute), `{"v":"local"}`), makeRecord("C-1", base, `{"v":"server"}`))
		require.NotNil(t, c)

		winner, err := Resolve(c, StrategyNewestWins)

		require.NoError(t, err)
		assert.JSONEq(t, `{"v":"local"}`, string(winner.Payload))
	})

	t.Run("server newer", func(t *testing.T) {
		c := Detect(makeRecord("C-1", base, `{"v":"local"}`), makeRecord("C-1", base.Add(time.Minute), `{"v":"server"}`))
		require.NotNil(t, c)

		winner, err := Resolve(c, StrategyNewestWins)

		require.NoError(t, err)
		assert.JSONEq(t, `{"v":"server"}`, string(winner.Payload))
	})

	t.Run("exact tie goes to server", func(t *testing.T) {
		// Construct the conflict directly: an exact tie is inside the
		// detection tolerance, but resolution must still be deterministic.
		c := &Conflict{
			Local:           makeRecord("C-1", base, `{"v":"local"}`),
			Server:          makeRecord("C-1", base, `{"v":"server"}`),
			LocalTimestamp:  base,
			ServerTimestamp: base,
		}

		winner, err := Resolve(c, StrategyNewestWins)

		require.NoError(t, err)
		assert.JSONEq(t, `{"v":"server"}`, string(winner.Payload))
		assert.Equal(t, "server", c.Winner())
	})
}

func TestResolve_Merge(t *testing.T) {
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	local := makeRecord("C-1", base.Add(time.Minute), `{"name":"local","phone":"111"}`)
	server := makeRecord("C-1", base, `{"name":"server","email":"s@x.io"}`)
	server.ID = 42
	server.CreatedBy = "user-srv"
	c := Detect(local, server)
	require.NotNil(t, c)

	merged, err := Resolve(c, StrategyMerge)

	require.NoError(t, err)
	// Local fields overlay server fields; fields only the server has survive.
	assert.JSONEq(t, `{"name":"local","phone":"111","email":"s@x.io"}`, string(merged.Payload))
	// Identity and provenance stay with the server version.
	assert.Equal(t, int64(42), merged.ID)
	assert.Equal(t, "user-srv", merged.CreatedBy)
	assert.Equal(t, server.CreatedAt, merged.CreatedAt)
	// The merged record carries the later timestamp.
	assert.Equal(t, local.UpdatedAt, merged.UpdatedAt)
}

func TestResolve_MergeInvalidPayload(t *testing.T) {
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	c := &Conflict{
		Local:           makeRecord("C-1", base.Add(2*time.Second), `not json`),
		Server:          makeRecord("C-1", base, `{}`),
		LocalTimestamp:  base.Add(2 * time.Second),
		ServerTimestamp: base,
	}

	_, err := Resolve(c, StrategyMerge)

	assert.Error(t, err)
}

func TestResolve_UnknownStrategy(t *testing.T) {
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	c := Detect(makeRecord("C-1", base.Add(time.Minute), `{}`), makeRecord("C-1", base, `{}`))
	require.NotNil(t, c)

	_, err := Resolve(c, Strategy("majority_vote"))

	assert.ErrorIs(t, err, ErrUnknownStrategy)
}

func TestParseStrategy(t *testing.T) {
	for _, valid := range []string{"server_wins", "client_wins", "newest_wins", "merge"} {
		st, err := ParseStrategy(valid)
		require.NoError(t, err)
		assert.Equal(t, Strategy(valid), st)
	}

	_, err := ParseStrategy("oldest_wins")
	assert.ErrorIs(t, err, ErrUnknownStrategy)
}
