package database

import (
	"context"
	"io/fs"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/jackc/pgtype/pgxtype"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Migration is one schema change. Migrations are applied in Id order and each only once.
type Migration struct {
	Id   int
	Name string
	Sql  string
}

func UpdateDatabase(ctx context.Context, db pgxtype.Querier, migrations []Migration) error {
	log.Info("Updating postgres...")
	version, err := readVersion(ctx, db)
	if err != nil {
		return err
	}
	log.Infof("Current version %v", version)

	for _, m := range migrations {
		if m.Id <= version {
			continue
		}
		if _, err := db.Exec(ctx, m.Sql); err != nil {
			return errors.Wrapf(err, "applying migration %s", m.Name)
		}
		version = m.Id
		if err := setVersion(ctx, db, version); err != nil {
			return err
		}
	}
	log.Info("Database updated.")
	return nil
}

func readVersion(ctx context.Context, db pgxtype.Querier) (int, error) {
	_, err := db.Exec(ctx, `CREATE SEQUENCE IF NOT EXISTS database_version START WITH 0 MINVALUE 0;`)
	if err != nil {
		return 0, errors.WithStack(err)
	}
	var version int
	if err := db.QueryRow(ctx, `SELECT last_value FROM database_version`).Scan(&version); err != nil {
		return 0, errors.WithStack(err)
	}
	return version, nil
}

func setVersion(ctx context.Context, db pgxtype.Querier, version int) error {
	_, err := db.Exec(ctx, `SELECT setval('database_version', $1)`, version)
	return errors.WithStack(err)
}

// ReadMigrations loads every .sql file in dir. File names start with the migration id, e.g. 001_init.sql.
func ReadMigrations(fsys fs.FS, dir string) ([]Migration, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	var migrations []Migration
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".sql") {
			continue
		}
		id, err := strconv.Atoi(strings.SplitN(name, "_", 2)[0])
		if err != nil {
			return nil, errors.Errorf("migration %s does not start with an id", name)
		}
		sql, err := fs.ReadFile(fsys, path.Join(dir, name))
		if err != nil {
			return nil, errors.WithStack(err)
		}
		migrations = append(migrations, Migration{Id: id, Name: name, Sql: string(sql)})
	}
	sort.Slice(migrations, func(i, j int) bool { return migrations[i].Id < migrations[j].Id })
	return migrations, nil
}
