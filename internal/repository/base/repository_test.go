package base

import (
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"
)

func TestWhere(t *testing.T) {
	var w Where
	sql, args := w.SQL()
	require.Empty(t, sql)
	require.Nil(t, args)

	w.Add("teacher_id = ?", int64(2))
	w.Add("status = ANY(?)", []string{"scheduled", "confirmed"})

	sql, args = w.SQL()
	require.Equal(t, " WHERE teacher_id = $1 AND status = ANY($2)", sql)
	require.Len(t, args, 2)
}

func TestIsNotFound(t *testing.T) {
	require.True(t, IsNotFound(pgx.ErrNoRows))
	require.False(t, IsNotFound(nil))
}
