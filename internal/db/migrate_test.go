package db

import (
	"testing"
)

func TestMigrateCreatesSidebarConfigurationsTable(t *testing.T) {
	conn := openTestSQLite(t)

	if errMigrate := Migrate(conn); errMigrate != nil {
		t.Fatalf("migrate: %v", errMigrate)
	}

	if !conn.Migrator().HasTable("sidebar_configurations") {
		t.Fatal("sidebar_configurations table missing")
	}
	for _, column := range []string{"id", "name", "configuration_data", "created_at", "updated_at"} {
		if !conn.Migrator().HasColumn("sidebar_configurations", column) {
			t.Fatalf("sidebar_configurations missing column %s", column)
		}
	}
}

func TestMigrateIsRepeatable(t *testing.T) {
	conn := openTestSQLite(t)

	if errMigrate := Migrate(conn); errMigrate != nil {
		t.Fatalf("first migrate: %v", errMigrate)
	}
	if errMigrate := Migrate(conn); errMigrate != nil {
		t.Fatalf("second migrate: %v", errMigrate)
	}
}
