package bootstrap

import (
	"errors"
	"regexp"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// BackendError is implemented by data-store errors that carry a backend code,
// such as the hosted REST API's error envelope.
type BackendError interface {
	BackendCode() string
	BackendMessage() string
}

// Hosted REST API codes reporting a schema cache miss
const (
	CodeRelationshipNotInCache = "PGRST200"
	CodeColumnNotInCache       = "PGRST204"
	CodeTableNotInCache        = "PGRST205"
)

// transientCodes is the complete allow-list of codes that mean "schema not
// visible yet". Nothing outside it is retried.
var transientCodes = map[string]struct{}{
	pgerrcode.UndefinedTable:   {},
	pgerrcode.UndefinedColumn:  {},
	CodeRelationshipNotInCache: {},
	CodeColumnNotInCache:       {},
	CodeTableNotInCache:        {},
}

// schemaCacheMessages are the exact message forms of a schema cache miss
// reported without one of the codes above. Each pattern is anchored.
var schemaCacheMessages = []*regexp.Regexp{
	regexp.MustCompile(`^Could not find the table '[^']+' in the schema cache$`),
	regexp.MustCompile(`^Could not find the '[^']+' column of '[^']+' in the schema cache$`),
	regexp.MustCompile(`^Could not find a relationship between '[^']+' and '[^']+' in the schema cache$`),
}

var permissionCodes = map[string]struct{}{
	pgerrcode.InsufficientPrivilege: {},
}

// BackendDetails extracts the backend code and message from err. ok is false
// when err carries neither a Postgres error nor a BackendError.
func BackendDetails(err error) (code, message string, ok bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code, pgErr.Message, true
	}
	var be BackendError
	if errors.As(err, &be) {
		return be.BackendCode(), be.BackendMessage(), true
	}
	return "", "", false
}

// Classify maps a data-store error onto the bootstrap taxonomy. It only ever
// returns KindTransientSchema, KindPermissionDenied or KindUnknown.
func Classify(err error) Kind {
	if err == nil {
		return KindUnknown
	}
	code, message, ok := BackendDetails(err)
	if !ok {
		return KindUnknown
	}
	if IsTransientSchema(code, message) {
		return KindTransientSchema
	}
	if _, denied := permissionCodes[code]; denied {
		return KindPermissionDenied
	}
	return KindUnknown
}

// IsTransientSchema reports whether a code or message is on the allow-list
func IsTransientSchema(code, message string) bool {
	if _, ok := transientCodes[code]; ok {
		return true
	}
	for _, re := range schemaCacheMessages {
		if re.MatchString(message) {
			return true
		}
	}
	return false
}
