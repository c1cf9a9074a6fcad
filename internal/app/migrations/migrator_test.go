package migrations

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFilesOrdersSQLFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"002_sections.sql", "001_catalog.sql", "README.md", "010_late.sql"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("SELECT 1;"), 0o600); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "003_dir.sql"), 0o700); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	files, err := Files(dir)
	if err != nil {
		t.Fatalf("Files: %v", err)
	}
	want := []string{"001_catalog.sql", "002_sections.sql", "010_late.sql"}
	if len(files) != len(want) {
		t.Fatalf("expected %v, got %v", want, files)
	}
	for i, f := range files {
		if filepath.Base(f) != want[i] {
			t.Fatalf("file %d = %s, want %s", i, filepath.Base(f), want[i])
		}
	}
}

func TestFilesRejectsDuplicateVersions(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"001_a.sql", "001_b.sql"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o600); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	if _, err := Files(dir); err == nil {
		t.Fatalf("expected duplicate version error")
	}
}

func TestRepositoryMigrationsAreOrdered(t *testing.T) {
	files, err := Files(filepath.Join("..", "..", "..", "migrations"))
	if err != nil {
		t.Fatalf("Files: %v", err)
	}
	if len(files) == 0 || Version(files[0]) != "001" {
		t.Fatalf("unexpected migrations %v", files)
	}
}

func TestEnrollmentSeatKeyOnlyCoversActiveSeats(t *testing.T) {
	files, err := Files(filepath.Join("..", "..", "..", "migrations"))
	if err != nil {
		t.Fatalf("Files: %v", err)
	}
	var last string
	for _, f := range files {
		body, err := os.ReadFile(f)
		if err != nil {
			t.Fatalf("read %s: %v", f, err)
		}
		for _, stmt := range strings.Split(string(body), ";") {
			if strings.Contains(stmt, "enrollments_student_section_key") && !strings.Contains(stmt, "DROP CONSTRAINT") {
				last = stmt
			}
		}
	}
	if !strings.Contains(last, "WHERE status = 'ENROLLED'") {
		t.Fatalf("latest enrollments_student_section_key definition is not partial: %s", last)
	}
}
