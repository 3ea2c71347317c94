// Copyright 2026 PgBridge Authors
// SPDX-License-Identifier: Apache-2.0

package postgres

import "strconv"

// typeNames maps PostgreSQL type OIDs to canonical type names for the
// common scalar, temporal, JSON, UUID and one-dimensional array types.
// Read-only after initialization; safe for concurrent use.
var typeNames = map[uint32]string{
	16:   "boolean",
	17:   "bytea",
	18:   "char",
	19:   "name",
	20:   "bigint",
	21:   "smallint",
	23:   "integer",
	25:   "text",
	26:   "oid",
	114:  "json",
	700:  "real",
	701:  "double precision",
	1042: "character",
	1043: "character varying",
	1082: "date",
	1083: "time without time zone",
	1114: "timestamp without time zone",
	1184: "timestamp with time zone",
	1186: "interval",
	1266: "time with time zone",
	1700: "numeric",
	2950: "uuid",
	3802: "jsonb",

	// One-dimensional array variants
	199:  "json[]",
	1000: "boolean[]",
	1001: "bytea[]",
	1005: "smallint[]",
	1007: "integer[]",
	1009: "text[]",
	1014: "character[]",
	1015: "character varying[]",
	1016: "bigint[]",
	1021: "real[]",
	1022: "double precision[]",
	1115: "timestamp without time zone[]",
	1182: "date[]",
	1183: "time without time zone[]",
	1185: "timestamp with time zone[]",
	1187: "interval[]",
	1231: "numeric[]",
	1270: "time with time zone[]",
	2951: "uuid[]",
	3807: "jsonb[]",
}

// TypeName resolves a type OID to its canonical name. Unknown OIDs return a
// fallback embedding the raw identifier; an unrecognized type must never
// abort a query whose shape is otherwise valid.
func TypeName(oid uint32) string {
	if name, ok := typeNames[oid]; ok {
		return name
	}
	return "oid:" + strconv.FormatUint(uint64(oid), 10)
}
