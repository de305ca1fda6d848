package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDatabaseConfigGetDSN(t *testing.T) {
	t.Run("mysql enables multi statements", func(t *testing.T) {
		d := DatabaseConfig{
			Driver:   "mysql",
			Host:     "db.internal",
			Port:     3306,
			Username: "nitro",
			Password: "pw",
			Database: "nitrodesk",
		}
		assert.Equal(t,
			"nitro:pw@tcp(db.internal:3306)/nitrodesk?charset=utf8mb4&parseTime=True&loc=UTC&multiStatements=true",
			d.GetDSN())
	})

	t.Run("sqlite uses path", func(t *testing.T) {
		d := DatabaseConfig{Driver: "sqlite", Path: "file::memory:"}
		assert.Equal(t, "file::memory:", d.GetDSN())
	})
}
