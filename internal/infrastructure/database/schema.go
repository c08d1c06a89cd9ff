package database

import _ "embed"

// Schema is the idempotent bootstrap DDL for the catalog tables.
//
//go:embed schema.sql
var Schema string
