// Copyright 2026 PgBridge Authors
// SPDX-License-Identifier: Apache-2.0

/*
Package base defines the contract between the tool dispatch layer and the
database connectors: the Connector interface, the value types every operation
produces, and the classified error taxonomy.

# Connector Interface

A Connector owns a single live connection. The dispatch layer creates one per
tool invocation, connects, performs one operation (or the short fixed sequence
a table description needs), and closes it. Connectors are never shared across
invocations.

# Result Envelopes

Every executed statement is shaped into a QueryResult regardless of what the
engine returned: ordered rows, a non-negative row count, the command verb
("UNKNOWN" when the engine reports none), field descriptors with resolved
type names, and the wall-clock execution time in milliseconds.

Schema inspection produces TableSummary rows (listing) and TableDescription
values (columns in ordinal order, index definitions, primary key annotation).

All envelopes are transient: constructed fresh per call, owned by the caller,
discarded after serialization.

# Classified Errors

Failures carry one of nine fixed ErrorCode values plus a human-readable
message and optional diagnostic details:

	INVALID_CONNECTION_STRING
	CONNECTION_FAILED
	AUTHENTICATION_FAILED
	QUERY_ERROR
	TIMEOUT
	PERMISSION_DENIED
	TABLE_NOT_FOUND
	INVALID_PARAMS
	NO_CONNECTION

INVALID_PARAMS and NO_CONNECTION are raised by caller-side validation before
a connector is ever invoked; the rest are produced by classifying engine
failures.
*/
package base
