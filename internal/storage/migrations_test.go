package storage

import (
	"strings"
	"testing"
)

// Суммы в таблицах не ограничены точностью: стоимость покупки
// quantity*price может иметь больше знаков, чем ввод клиента.
func TestMigrationsNumericUnbounded(t *testing.T) {
	data, err := embedMigrations.ReadFile("migrations/00002_unbounded_numeric.sql")
	if err != nil {
		t.Fatalf("Expected migration to be embedded, got: '%v'", err)
	}
	up, _, _ := strings.Cut(string(data), "-- +goose Down")

	for _, column := range []string{
		"ACCOUNTS ALTER COLUMN balance TYPE NUMERIC;",
		"LOTS ALTER COLUMN quantity TYPE NUMERIC;",
		"LOTS ALTER COLUMN price TYPE NUMERIC;",
	} {
		if !strings.Contains(up, column) {
			t.Errorf("Expected up migration to contain '%s'", column)
		}
	}
}
