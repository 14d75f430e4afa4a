package roster

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/kpereira/painel/internal/database"
	"github.com/kpereira/painel/internal/model"
)

const seed = `
- uid: m1
  name: Ana Silva
  war_name: Silva
  rank: 3SGT
  specialty: BCT
  entry_date: 2018-03-01
- uid: m2
  name: Jose Costa
  war_name: Costa
  rank: SO
  specialty: AIS
`

func getTestManager(t *testing.T) *database.DatabaseManager {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	dbm := database.New(db)
	require.NoError(t, dbm.Migrate())

	return dbm
}

func TestLoadSeed(t *testing.T) {
	dbm := getTestManager(t)

	file := filepath.Join(t.TempDir(), "roster.yml")
	require.NoError(t, os.WriteFile(file, []byte(seed), 0o644))

	r := New(dbm, file)
	require.NoError(t, r.Load())

	require.EqualValues(t, 2, dbm.MemberQuery().Count())

	m := dbm.MemberQuery().UID("m1").One()
	require.NotNil(t, m)
	require.Equal(t, "3SGT Silva", m.DisplayName())
	require.Equal(t, 2018, m.EntryDate.Year())
}

func TestLoadKeepsPassword(t *testing.T) {
	dbm := getTestManager(t)

	m := &model.Member{UID: "m1", Name: "Old Name", Rank: "2SGT"}
	require.NoError(t, m.SetPassword("secret"))
	require.NoError(t, dbm.Save(m))

	file := filepath.Join(t.TempDir(), "roster.yml")
	require.NoError(t, os.WriteFile(file, []byte(seed), 0o644))

	require.NoError(t, New(dbm, file).Load())

	got := dbm.MemberQuery().UID("m1").One()
	require.NotNil(t, got)
	require.Equal(t, "Ana Silva", got.Name)
	require.True(t, got.CheckPassword("secret"))
}

func TestLoadMissingFile(t *testing.T) {
	dbm := getTestManager(t)

	file := filepath.Join(t.TempDir(), "roster.yml")

	r := New(dbm, file)
	require.NoError(t, r.Load())

	_, err := os.Stat(file)
	require.NoError(t, err)
}
