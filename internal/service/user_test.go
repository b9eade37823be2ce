package service

import (
	"PdfVault/internal/repo"
	"PdfVault/model"
	"context"
	"testing"
)

// TestCreateUserHashesPassword tests that passwords are stored hashed.
func TestCreateUserHashesPassword(t *testing.T) {
	cleanTables(t)
	user := &model.User{
		UserName: "hash_check",
		Password: "123456",
		Email:    "hash@test.com",
		Level:    model.LevelUser,
	}
	if err := CreateUser(user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	if user.Password == "123456" {
		t.Fatal("password must not be stored in clear")
	}
	if err := CheckPassword("hash_check", "123456"); err != nil {
		t.Fatalf("CheckPassword failed: %v", err)
	}
	if err := CheckPassword("hash_check", "wrong"); err == nil {
		t.Fatal("wrong password must be rejected")
	}
}

// TestAdminCreateUser tests validation, conflicts and the gate.
func TestAdminCreateUser(t *testing.T) {
	cleanTables(t)
	_, admin := createTestUser(t, model.LevelAdmin)
	_, user := createTestUser(t, model.LevelUser)

	created, err := AdminCreateUser(admin, "alice", "alice@test.com", "pw", model.LevelViewer)
	if err != nil {
		t.Fatalf("AdminCreateUser failed: %v", err)
	}
	if created.Level != model.LevelViewer {
		t.Fatalf("expect viewer level, got %q", created.Level)
	}

	if _, err := AdminCreateUser(admin, "alice", "other@test.com", "pw", model.LevelUser); err == nil {
		t.Fatal("duplicate username must conflict")
	}
	if _, err := AdminCreateUser(admin, "bob", "alice@test.com", "pw", model.LevelUser); err == nil {
		t.Fatal("duplicate email must conflict")
	}
	if _, err := AdminCreateUser(admin, "carol", "carol@test.com", "pw", "owner"); err == nil {
		t.Fatal("unknown level must be rejected")
	}
	if _, err := AdminCreateUser(user, "dave", "dave@test.com", "pw", model.LevelUser); err == nil {
		t.Fatal("non-admin must not create users")
	}
}

// TestUpdateUserSelf tests self-update of non-role fields.
func TestUpdateUserSelf(t *testing.T) {
	cleanTables(t)
	u, c := createTestUser(t, model.LevelUser)

	updated, err := UpdateUser(c, u.ID, "newname", "newmail@test.com", "")
	if err != nil {
		t.Fatalf("UpdateUser failed: %v", err)
	}
	if updated.UserName != "newname" || updated.Email != "newmail@test.com" {
		t.Fatalf("self update not applied: %+v", updated)
	}

	if _, err := UpdateUser(c, u.ID, "", "", model.LevelAdmin); err == nil {
		t.Fatal("non-admin must not change level")
	}

	other, _ := createTestUser(t, model.LevelUser)
	if _, err := UpdateUser(c, other.ID, "hijack", "", ""); err == nil {
		t.Fatal("non-admin must not update another user")
	}
}

// TestUpdateUserAdminSetsLevel tests admin level changes.
func TestUpdateUserAdminSetsLevel(t *testing.T) {
	cleanTables(t)
	_, admin := createTestUser(t, model.LevelAdmin)
	u, _ := createTestUser(t, model.LevelUser)

	updated, err := UpdateUser(admin, u.ID, "", "", model.LevelViewer)
	if err != nil {
		t.Fatalf("UpdateUser failed: %v", err)
	}
	if updated.Level != model.LevelViewer {
		t.Fatalf("expect viewer level, got %q", updated.Level)
	}
}

// TestDeleteUserSelfGuard tests that no caller may delete themselves,
// admins included.
func TestDeleteUserSelfGuard(t *testing.T) {
	cleanTables(t)
	adminUser, admin := createTestUser(t, model.LevelAdmin)

	if err := DeleteUser(context.Background(), admin, adminUser.ID); err == nil {
		t.Fatal("self deletion must be rejected")
	} else if appErr, ok := err.(*AppError); !ok || appErr.Kind != KindAuthorization {
		t.Fatalf("expect authorization error, got %v", err)
	}

	var count int64
	repo.Db.Model(&model.User{}).Count(&count)
	if count != 1 {
		t.Fatal("no state change on rejected self delete")
	}
}

// TestDeleteUserCascades tests that deleting a user removes their files
// and junction rows.
func TestDeleteUserCascades(t *testing.T) {
	cleanTables(t)
	useFakeStore(t)
	_, admin := createTestUser(t, model.LevelAdmin)
	victim, _ := createTestUser(t, model.LevelUser)
	createTestFile(t, victim.ID, "a.pdf", "", []string{"invoice"})
	createTestFile(t, victim.ID, "b.pdf", "", nil)

	if err := DeleteUser(context.Background(), admin, victim.ID); err != nil {
		t.Fatalf("DeleteUser failed: %v", err)
	}

	var rows int64
	repo.Db.Model(&model.File{}).Count(&rows)
	if rows != 0 {
		t.Fatal("owned files should be gone")
	}
	repo.Db.Model(&model.FileTag{}).Count(&rows)
	if rows != 0 {
		t.Fatal("junction rows should be gone")
	}

	if err := DeleteUser(context.Background(), admin, victim.ID); err == nil {
		t.Fatal("deleting a missing user must signal not found")
	}

	_, user := createTestUser(t, model.LevelUser)
	target, _ := createTestUser(t, model.LevelUser)
	if err := DeleteUser(context.Background(), user, target.ID); err == nil {
		t.Fatal("non-admin must not delete users")
	}
}
