package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRole(t *testing.T) {
	assert.True(t, RoleUser.Valid())
	assert.True(t, RoleAdmin.Valid())
	assert.False(t, Role(0).Valid())
	assert.False(t, Role(3).Valid())
	assert.Equal(t, RoleUser, DefaultRole)
	assert.Equal(t, "user", RoleUser.String())
	assert.Equal(t, "admin", RoleAdmin.String())
	assert.Equal(t, "unknown", Role(9).String())
}

func TestUser_JSONOmitsPassword(t *testing.T) {
	u := &User{ID: "u-1", Email: "a@b.c", Password: "$2a$10$hash", Role: RoleAdmin}

	b, err := json.Marshal(u)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))
	assert.NotContains(t, m, "password")
	assert.NotContains(t, string(b), "$2a$10$hash")
	assert.EqualValues(t, 2, m["role"])

	assert.Equal(t, UserIdentity{ID: "u-1", Email: "a@b.c", Role: RoleAdmin}, u.Identity())
}

func TestInsertResult_WireShape(t *testing.T) {
	r := InsertResult{Command: "INSERT", RowCount: 1, Rows: []ProfileRow{{UserID: "u-1"}}}

	b, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, `{"command":"INSERT","rowCount":1,"rows":[{"user_id":"u-1"}]}`, string(b))
}
