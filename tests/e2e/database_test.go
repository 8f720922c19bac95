// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package e2e

import (
	"database/sql"
	"testing"

	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedIsMigrated(t *testing.T) {
	db, err := sql.Open("postgres", dsn())
	require.NoError(t, err)
	defer db.Close()

	var tenants int
	require.NoError(t, db.QueryRow("SELECT count(*) FROM tenants").Scan(&tenants))
	assert.Equal(t, 3, tenants)

	rows, err := db.Query(
		"SELECT m.tenant_id FROM memberships m JOIN users u ON u.id = m.user_id WHERE u.username = $1 ORDER BY m.position",
		"admin",
	)
	require.NoError(t, err)
	defer rows.Close()

	var memberships []string
	for rows.Next() {
		var id string
		require.NoError(t, rows.Scan(&id))
		memberships = append(memberships, id)
	}
	require.NoError(t, rows.Err())

	assert.Equal(t, []string{"1", "2", "3"}, memberships)
}
