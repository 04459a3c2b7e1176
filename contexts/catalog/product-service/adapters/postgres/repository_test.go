package postgresadapter

import (
	"strings"
	"testing"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// dryRunDB renders statements without a server; sql.Open is lazy and the
// automatic ping is disabled.
func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.Open("host=localhost user=crudhub dbname=crudhub sslmode=disable"), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
	})
	if err != nil {
		t.Fatalf("open dry-run db: %v", err)
	}
	return db
}

func TestReserveEventUpsertReplacesOnlyExpiredRows(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	row := eventDedupModel{EventID: "evt-1", PayloadHash: "h", ExpiresAt: now.Add(time.Hour), ProcessedAt: now}

	stmt := dryRunDB(t).Clauses(replaceExpired(
		"product_event_dedup", "event_id", now,
		"payload_hash", "expires_at", "processed_at",
	)).Create(&row).Statement
	sql := stmt.SQL.String()

	for _, want := range []string{
		`ON CONFLICT ("event_id") DO UPDATE SET`,
		`"payload_hash"="excluded"."payload_hash"`,
		`WHERE product_event_dedup.expires_at <= `,
	} {
		if !strings.Contains(sql, want) {
			t.Fatalf("expected %q in %s", want, sql)
		}
	}
	got, ok := stmt.Vars[len(stmt.Vars)-1].(time.Time)
	if !ok || !got.Equal(now) {
		t.Fatalf("expected expiry guard bound to now, got %v", stmt.Vars[len(stmt.Vars)-1])
	}
}

func TestIdempotencyClaimUpsertReplacesOnlyExpiredRows(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	row := idempotencyModel{Key: "k", RequestHash: "h", CreatedAt: now, ExpiresAt: now.Add(24 * time.Hour)}

	sql := dryRunDB(t).Clauses(replaceExpired(
		"product_idempotency", "key", now,
		"request_hash", "response_payload", "created_at", "expires_at",
	)).Create(&row).Statement.SQL.String()

	if !strings.Contains(sql, `ON CONFLICT ("key") DO UPDATE SET`) ||
		!strings.Contains(sql, `WHERE product_idempotency.expires_at <= `) {
		t.Fatalf("unexpected claim statement: %s", sql)
	}
}
