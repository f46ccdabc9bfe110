package eventdb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openlava/openlava-go/pkg/lsb"
)

func TestLastPositionQuery(t *testing.T) {
	sql, args, err := lastPositionQuery("lsb.events")
	require.NoError(t, err)
	assert.Contains(t, sql, `SELECT "line", "end_offset" FROM "event"`)
	assert.Contains(t, sql, `WHERE ("log_name" = $1)`)
	assert.Contains(t, sql, `ORDER BY "line" DESC`)
	assert.Contains(t, sql, `LIMIT $2`)
	require.NotEmpty(t, args)
	assert.Equal(t, "lsb.events", args[0])
}

func TestJobEventsQuery(t *testing.T) {
	sql, args, err := jobEventsQuery("lsb.events", lsb.NewJobId(42, 3))
	require.NoError(t, err)
	assert.Contains(t, sql, `SELECT "record" FROM "event"`)
	assert.Contains(t, sql, `("log_name" = $1)`)
	assert.Contains(t, sql, `("job_id" = $2)`)
	assert.Contains(t, sql, `("array_index" = $3)`)
	assert.Contains(t, sql, `ORDER BY "line" ASC`)
	require.Len(t, args, 3)
	assert.Equal(t, "lsb.events", args[0])
	assert.EqualValues(t, 42, args[1])
	assert.EqualValues(t, 3, args[2])
}
