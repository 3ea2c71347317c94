// Copyright 2026 PgBridge Authors
// SPDX-License-Identifier: Apache-2.0

/*
Package config owns the connection descriptor: loading it, validating it,
persisting it, and answering the is-configured question the dispatch layer
asks before opening any connection.

# Sources

Settings come from two places, file first, environment second:

 1. A YAML config file (PGBRIDGE_CONFIG, or <user config dir>/pgbridge/
    config.yaml) written by the configure_connection tool.
 2. POSTGRES_* environment variables, overlaid on top:

	POSTGRES_HOST            server hostname
	POSTGRES_PORT            port (default 5432)
	POSTGRES_DATABASE        database name (POSTGRES_DB also accepted)
	POSTGRES_USER            role name
	POSTGRES_PASSWORD        password
	POSTGRES_SSL             true/false (default false)
	POSTGRES_CONNECT_TIMEOUT Go duration, e.g. 10s
	POSTGRES_QUERY_TIMEOUT   Go duration, e.g. 30s

# Store

Store is the runtime holder: Get returns a copy of the current descriptor,
Update validates + applies + persists, IsConfigured is the fail-fast
predicate callers must consult before connecting. The file carries
credentials and is written 0600.
*/
package config
