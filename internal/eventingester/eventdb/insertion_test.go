package eventdb

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openlava/openlava-go/internal/common/database"
	"github.com/openlava/openlava-go/internal/eventingester/model"
	"github.com/openlava/openlava-go/internal/eventlog"
	"github.com/openlava/openlava-go/pkg/lsb"
)

func withEventDb(t *testing.T, action func(db *EventDb)) {
	migrations, err := Migrations()
	require.NoError(t, err)
	database.WithTestDb(t, migrations, func(pool *pgxpool.Pool) {
		action(NewEventDb(pool))
	})
}

func event(line int64, jobId lsb.JobId) *model.Event {
	return &model.Event{
		LogName: "lsb.events",
		End:     eventlog.Position{Line: line, Offset: line * 100},
		Type:    lsb.EventJobClean,
		Time:    time.Unix(1700000000+line, 0).UTC(),
		JobId:   jobId,
		Text:    []byte(`"JOB_CLEAN" "1.0" 1700000000 1 0`),
		Json:    []byte(`{"type":"JOB_CLEAN"}`),
	}
}

func TestMigrations(t *testing.T) {
	migrations, err := Migrations()
	require.NoError(t, err)
	require.Len(t, migrations, 1)
	assert.Equal(t, 1, migrations[0].Id)
}

func TestRow(t *testing.T) {
	r := row(event(3, lsb.NewJobId(7, 2)))
	assert.Equal(t, int64(7), r[5])
	assert.Equal(t, int32(2), r[6])

	e := event(4, lsb.NoJob)
	e.Time = time.Time{}
	r = row(e)
	assert.Nil(t, r[4])
	assert.Nil(t, r[5])
	assert.Nil(t, r[6])
}

func TestStore(t *testing.T) {
	withEventDb(t, func(db *EventDb) {
		ctx := context.Background()
		_, found, err := db.LastPosition(ctx, "lsb.events")
		require.NoError(t, err)
		assert.False(t, found)

		batch := []*model.Event{event(1, 1), event(2, 2), event(3, 1)}
		require.NoError(t, db.Store(ctx, batch))
		// Storing a batch twice is harmless.
		require.NoError(t, db.Store(ctx, batch))

		pos, found, err := db.LastPosition(ctx, "lsb.events")
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, eventlog.Position{Line: 3, Offset: 300}, pos)

		records, err := db.JobEvents(ctx, "lsb.events", 1)
		require.NoError(t, err)
		assert.Len(t, records, 2)
	})
}
