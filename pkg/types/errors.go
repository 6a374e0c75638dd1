package types

import (
	"errors"
	"strings"
)

// Error kinds. Every failure returned by a migration wraps exactly one of
// these; none of them is recovered locally.
var (
	ErrConfiguration  = errors.New("configuration error")
	ErrConnection     = errors.New("connection error")
	ErrDiscovery      = errors.New("discovery error")
	ErrSchemaCreation = errors.New("schema creation error")
	ErrRead           = errors.New("read error")
	ErrMalformedInput = errors.New("malformed input")
	ErrWrite          = errors.New("write error")
	ErrIntegrity      = errors.New("integrity error")
)

// MigrationError attaches the table and row key being processed to a
// failure. Table and RowID are empty when not known at the failure site.
type MigrationError struct {
	Kind  error
	Table TableName
	RowID string
	Err   error
}

// NewError builds a MigrationError for the given kind and cause.
func NewError(kind error, table TableName, rowID string, err error) *MigrationError {
	return &MigrationError{Kind: kind, Table: table, RowID: rowID, Err: err}
}

func (e *MigrationError) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.Error())
	if e.Table != "" {
		b.WriteString(": table ")
		b.WriteString(string(e.Table))
	}
	if e.RowID != "" {
		b.WriteString(": row ")
		b.WriteString(e.RowID)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *MigrationError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// KindOf returns the error kind wrapped by err, or nil if err carries none.
func KindOf(err error) error {
	for _, kind := range []error{
		ErrConfiguration,
		ErrConnection,
		ErrDiscovery,
		ErrSchemaCreation,
		ErrRead,
		ErrMalformedInput,
		ErrWrite,
		ErrIntegrity,
	} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}
