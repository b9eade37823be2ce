package service

import (
	"PdfVault/model"
	"testing"
)

func fileNames(rows []FileWithTags) []string {
	names := make([]string, 0, len(rows))
	for _, row := range rows {
		names = append(names, row.File.Name)
	}
	return names
}

// TestScopedFilesUserSeesOnlyOwn tests owner scoping for the user role.
func TestScopedFilesUserSeesOnlyOwn(t *testing.T) {
	cleanTables(t)
	u1, c1 := createTestUser(t, model.LevelUser)
	u2, c2 := createTestUser(t, model.LevelUser)
	createTestFile(t, u1.ID, "a.pdf", "", []string{"invoice", "2024"})
	createTestFile(t, u2.ID, "b.pdf", "", nil)

	rows, err := ScopedFiles(c1, "", nil)
	if err != nil {
		t.Fatalf("ScopedFiles failed: %v", err)
	}
	if len(rows) != 1 || rows[0].File.Name != "a.pdf" {
		t.Fatalf("expect [a.pdf], got %v", fileNames(rows))
	}

	// A user with no files sees an empty set, never another user's rows.
	rows, err = ScopedFiles(c2, "", nil)
	if err != nil {
		t.Fatalf("ScopedFiles failed: %v", err)
	}
	if len(rows) != 1 || rows[0].File.Name != "b.pdf" {
		t.Fatalf("expect [b.pdf], got %v", fileNames(rows))
	}
}

// TestScopedFilesAdminSeesAll tests that admins see every row with tags
// resolved.
func TestScopedFilesAdminSeesAll(t *testing.T) {
	cleanTables(t)
	_, admin := createTestUser(t, model.LevelAdmin)
	u1, _ := createTestUser(t, model.LevelUser)
	createTestFile(t, u1.ID, "a.pdf", "", []string{"invoice", "2024"})

	rows, err := ScopedFiles(admin, "", nil)
	if err != nil {
		t.Fatalf("ScopedFiles failed: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expect 1 file, got %v", fileNames(rows))
	}
	if len(rows[0].Tags) != 2 {
		t.Fatalf("expect tags resolved, got %v", rows[0].Tags)
	}
}

// TestScopedFilesSearch tests case-insensitive substring match over name
// and description.
func TestScopedFilesSearch(t *testing.T) {
	cleanTables(t)
	u, c := createTestUser(t, model.LevelUser)
	createTestFile(t, u.ID, "Invoice-March.pdf", "", nil)
	createTestFile(t, u.ID, "report.pdf", "quarterly invoice summary", nil)
	createTestFile(t, u.ID, "notes.pdf", "meeting notes", nil)

	rows, err := ScopedFiles(c, "INVOICE", nil)
	if err != nil {
		t.Fatalf("ScopedFiles failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expect 2 matches, got %v", fileNames(rows))
	}
}

// TestScopedFilesSearchLiteralWildcards tests that LIKE metacharacters in
// the search term match literally instead of acting as wildcards.
func TestScopedFilesSearchLiteralWildcards(t *testing.T) {
	cleanTables(t)
	u, c := createTestUser(t, model.LevelUser)
	createTestFile(t, u.ID, "sale 50% off.pdf", "", nil)
	createTestFile(t, u.ID, "50x50 grid.pdf", "", nil)
	createTestFile(t, u.ID, "tax_2024.pdf", "", nil)
	createTestFile(t, u.ID, "taxX2024.pdf", "", nil)

	rows, err := ScopedFiles(c, "50%", nil)
	if err != nil {
		t.Fatalf("ScopedFiles failed: %v", err)
	}
	if len(rows) != 1 || rows[0].File.Name != "sale 50% off.pdf" {
		t.Fatalf("percent must match literally, got %v", fileNames(rows))
	}

	rows, err = ScopedFiles(c, "tax_2024", nil)
	if err != nil {
		t.Fatalf("ScopedFiles failed: %v", err)
	}
	if len(rows) != 1 || rows[0].File.Name != "tax_2024.pdf" {
		t.Fatalf("underscore must match literally, got %v", fileNames(rows))
	}
}

// TestScopedFilesTagSuperset tests intersection-all tag filter semantics.
func TestScopedFilesTagSuperset(t *testing.T) {
	cleanTables(t)
	u, c := createTestUser(t, model.LevelUser)
	createTestFile(t, u.ID, "both.pdf", "", []string{"invoice", "2024"})
	createTestFile(t, u.ID, "one.pdf", "", []string{"invoice"})

	rows, err := ScopedFiles(c, "", []string{"invoice", "2024"})
	if err != nil {
		t.Fatalf("ScopedFiles failed: %v", err)
	}
	if len(rows) != 1 || rows[0].File.Name != "both.pdf" {
		t.Fatalf("expect [both.pdf], got %v", fileNames(rows))
	}

	// An empty filter list means no filter.
	rows, err = ScopedFiles(c, "", []string{})
	if err != nil {
		t.Fatalf("ScopedFiles failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expect 2 files, got %v", fileNames(rows))
	}
}

// TestScopedFilesViewerSuppression tests that viewers see the full set
// with search and tag parameters silently ignored.
func TestScopedFilesViewerSuppression(t *testing.T) {
	cleanTables(t)
	_, viewer := createTestUser(t, model.LevelViewer)
	u, _ := createTestUser(t, model.LevelUser)
	createTestFile(t, u.ID, "a.pdf", "", []string{"invoice"})
	createTestFile(t, u.ID, "b.pdf", "", nil)

	rows, err := ScopedFiles(viewer, "a.pdf", []string{"invoice"})
	if err != nil {
		t.Fatalf("ScopedFiles failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("viewer should see unfiltered set, got %v", fileNames(rows))
	}
}
