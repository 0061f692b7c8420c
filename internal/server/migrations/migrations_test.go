package migrations

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrations_Embedded(t *testing.T) {
	names, err := fs.Glob(Migrations, "*.sql")
	require.NoError(t, err)
	require.Equal(t, []string{"00001_create_users.sql", "00002_create_patient_details.sql"}, names)

	for _, n := range names {
		b, err := fs.ReadFile(Migrations, n)
		require.NoError(t, err)
		body := string(b)
		assert.Contains(t, body, "-- +goose Up", n)
		assert.Contains(t, body, "-- +goose Down", n)
	}

	users, _ := fs.ReadFile(Migrations, "00001_create_users.sql")
	assert.True(t, strings.Contains(string(users), "email       TEXT        NOT NULL UNIQUE"))
	details, _ := fs.ReadFile(Migrations, "00002_create_patient_details.sql")
	assert.Contains(t, string(details), "ON DELETE CASCADE")
}
