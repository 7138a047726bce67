package db

import "testing"

func TestOpen_AppliesMigrations(t *testing.T) {
	d, err := Open("file:dbmigrate?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })

	for _, table := range []string{"users", "authtokens", "tasks"} {
		var n int
		if err := d.QueryRow(`SELECT COUNT(*) FROM ` + table).Scan(&n); err != nil {
			t.Fatalf("query %s: %v", table, err)
		}
		if n != 0 {
			t.Fatalf("expected empty %s, got %d rows", table, n)
		}
	}

	var applied int
	if err := d.QueryRow(`SELECT COUNT(*) FROM schema_migrations`).Scan(&applied); err != nil {
		t.Fatalf("query schema_migrations: %v", err)
	}
	if applied == 0 {
		t.Fatalf("expected at least one applied migration")
	}
}

func TestOpen_Idempotent(t *testing.T) {
	d, err := Open("file:dbidempotent?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })

	// A second handle to the same shared-cache database must not re-apply migrations.
	d2, err := Open("file:dbidempotent?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	_ = d2.Close()
}

func TestRollbackLast(t *testing.T) {
	d, err := Open("file:dbrollback?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })

	if err := RollbackLast(d); err != nil {
		t.Fatalf("rollback: %v", err)
	}
	// The schema is gone after rolling back the init migration.
	var n int
	if err := d.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&n); err == nil {
		t.Fatalf("expected users table to be dropped")
	}
	// Rolling back with nothing applied is a no-op.
	if err := RollbackLast(d); err != nil {
		t.Fatalf("rollback empty: %v", err)
	}
}
