package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"hash/fnv"
)

// schemaLockName serializes schema initialization across instances.
// In "all" deployments several processes may call InitSchema at startup;
// concurrent DDL against the same tables can deadlock in PostgreSQL.
const schemaLockName = "grademymail:schema"

// lockID converts a lock name to a 64-bit key for PostgreSQL advisory locks.
// Uses FNV-1a for consistent, well-distributed values.
func lockID(name string) int64 {
	h := fnv.New64a()
	h.Write([]byte(name))
	return int64(h.Sum64())
}

// withAdvisoryLock runs fn while holding a session advisory lock.
//
// Advisory locks are connection-scoped, so the lock and unlock must happen
// on the same connection. A dedicated connection is checked out of the pool
// for the duration; if the connection is lost, PostgreSQL releases the lock.
// pg_advisory_lock blocks until the lock is free, so concurrent callers
// serialize rather than fail.
func (db *DB) withAdvisoryLock(ctx context.Context, name string, fn func(conn *sql.Conn) error) error {
	conn, err := db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("checkout connection: %w", err)
	}
	defer conn.Close()

	id := lockID(name)
	if _, err := conn.ExecContext(ctx, "SELECT pg_advisory_lock($1)", id); err != nil {
		return fmt.Errorf("acquire advisory lock %q: %w", name, err)
	}
	defer func() {
		// Unlock even when ctx is already cancelled, otherwise the lock
		// sticks to the pooled connection
		conn.ExecContext(context.WithoutCancel(ctx), "SELECT pg_advisory_unlock($1)", id)
	}()

	return fn(conn)
}
