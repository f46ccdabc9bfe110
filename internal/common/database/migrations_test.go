package database

import (
	"testing"
	"testing/fstest"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgerrcode"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadMigrations(t *testing.T) {
	fsys := fstest.MapFS{
		"sql/002_index.sql": {Data: []byte("CREATE INDEX;")},
		"sql/001_init.sql":  {Data: []byte("CREATE TABLE;")},
		"sql/README.md":     {Data: []byte("ignored")},
	}
	migrations, err := ReadMigrations(fsys, "sql")
	require.NoError(t, err)
	assert.Equal(t, []Migration{
		{Id: 1, Name: "001_init.sql", Sql: "CREATE TABLE;"},
		{Id: 2, Name: "002_index.sql", Sql: "CREATE INDEX;"},
	}, migrations)
}

func TestReadMigrations_BadName(t *testing.T) {
	fsys := fstest.MapFS{"sql/init.sql": {Data: []byte("CREATE TABLE;")}}
	_, err := ReadMigrations(fsys, "sql")
	assert.Error(t, err)
}

func TestCreateConnectionString(t *testing.T) {
	assert.Equal(t, `password='it\'s'`, CreateConnectionString(map[string]string{"password": "it's"}))
	assert.Equal(t, "", CreateConnectionString(nil))
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(errors.WithStack(&pgconn.PgError{Code: pgerrcode.SerializationFailure})))
	assert.False(t, IsRetryable(&pgconn.PgError{Code: pgerrcode.UniqueViolation}))
	assert.False(t, IsRetryable(errors.New("bad query")))
}
