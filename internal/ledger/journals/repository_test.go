package journals

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

func TestMapLinkErrorSourceConflict(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "uq_source_links"}
	require.ErrorIs(t, mapLinkError(pgErr), ErrSourceConflict)
	require.ErrorIs(t, mapLinkError(fmt.Errorf("exec insert: %w", pgErr)), ErrSourceConflict)
}

func TestMapLinkErrorPassesThroughOtherErrors(t *testing.T) {
	otherConstraint := &pgconn.PgError{Code: "23505", ConstraintName: "uq_accounts_code"}
	require.Equal(t, error(otherConstraint), mapLinkError(otherConstraint))

	plain := errors.New("connection reset")
	require.Equal(t, plain, mapLinkError(plain))
}
