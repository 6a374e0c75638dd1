// Package types defines the rows, table names, configuration, run summary,
// and standard errors shared by the jsonmend migration packages.
//
// Errors follow a two-level scheme: a sentinel kind (ErrSchemaCreation,
// ErrMalformedInput, ...) identifies what failed, and MigrationError adds the
// table and row key involved. Callers branch with errors.Is on the kind.
package types
