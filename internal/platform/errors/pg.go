package errors

import (
	"context"
	stderrs "errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// sqlState classifies the SQLSTATEs the stores can hit; retry marks states worth rerunning the tx for
var sqlState = map[string]struct {
	code  ErrorCode
	retry bool
}{
	"23505": {ErrorCodeConflict, false},        // unique_violation
	"40001": {ErrorCodeConflict, true},         // serialization_failure
	"40P01": {ErrorCodeConflict, true},         // deadlock_detected
	"55P03": {ErrorCodeConflict, true},         // lock_not_available
	"23502": {ErrorCodeValidation, false},      // not_null_violation
	"23514": {ErrorCodeValidation, false},      // check_violation
	"22001": {ErrorCodeInvalidArgument, false}, // string_data_right_truncation
	"22P02": {ErrorCodeInvalidArgument, false}, // invalid_text_representation
	"25006": {ErrorCodeUnavailable, false},     // read_only_sql_transaction
	"57P01": {ErrorCodeUnavailable, false},     // admin_shutdown
	"57P03": {ErrorCodeUnavailable, false},     // cannot_connect_now
}

// pgx reports some retryable failures only as text, e.g. on commit
var retryText = []string{
	"commit unexpectedly resulted in rollback",
	"deadlock detected",
	"could not serialize access",
	"canceling statement due to lock timeout",
}

// pgCode maps err to an ErrorCode; ok is false when err did not come from postgres
func pgCode(err error) (ErrorCode, bool) {
	var ce *pgconn.ConnectError
	if stderrs.As(err, &ce) {
		return ErrorCodeUnavailable, true
	}
	var pe *pgconn.PgError
	if !stderrs.As(err, &pe) {
		return ErrorCodeUnknown, false
	}
	if s, ok := sqlState[pe.Code]; ok {
		return s.code, true
	}
	return ErrorCodeDB, true
}

// FromPostgres wraps err with msg and a code derived from it
// errors postgres did not classify keep fallback; nil stays nil
func FromPostgres(err error, fallback ErrorCode, msg string) error {
	if err == nil {
		return nil
	}
	code, ok := pgCode(err)
	if !ok || code == ErrorCodeDB {
		code = fallback
	}
	return Wrap(err, code, msg)
}

// FromPostgresf is FromPostgres with formatting
func FromPostgresf(err error, fallback ErrorCode, format string, a ...any) error {
	return FromPostgres(err, fallback, fmt.Sprintf(format, a...))
}

// IsRetryable reports whether rerunning the transaction may succeed
// cancellation and deadlines never are
func IsRetryable(err error) bool {
	if err == nil || stderrs.Is(err, context.Canceled) || stderrs.Is(err, context.DeadlineExceeded) {
		return false
	}
	var pe *pgconn.PgError
	if stderrs.As(err, &pe) {
		return sqlState[pe.Code].retry
	}
	msg := strings.ToLower(Root(err).Error())
	for _, s := range retryText {
		if strings.Contains(msg, s) {
			return true
		}
	}
	return false
}
