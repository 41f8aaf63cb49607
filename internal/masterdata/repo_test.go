package masterdata

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

func TestMapAccountErrorDuplicateCode(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "uq_accounts_code"}
	require.ErrorIs(t, mapAccountError(pgErr), ErrDuplicateCode)
	require.ErrorIs(t, mapAccountError(fmt.Errorf("insert account: %w", pgErr)), ErrDuplicateCode)
}

func TestMapAccountErrorPassesThroughOtherErrors(t *testing.T) {
	notNull := &pgconn.PgError{Code: "23502"}
	require.Equal(t, error(notNull), mapAccountError(notNull))

	plain := errors.New("connection reset")
	require.Equal(t, plain, mapAccountError(plain))
}
