package service

import (
	"PdfVault/config"
	"PdfVault/internal/authz"
	"PdfVault/internal/repo"
	"PdfVault/model"
	"PdfVault/utils"
	"context"
	"log"
	"strings"

	"gorm.io/gorm"
)

// CreateUser hashes the password and creates a user row. Callers go
// through AdminCreateUser or the activation flow; this is the shared step.
func CreateUser(user *model.User) error {
	user.Password = utils.GetPwd(user.Password)
	if err := repo.Db.Create(user).Error; err != nil {
		return err
	}
	return nil
}

// IsExist checks whether a user exists.
func IsExist(username string) (*model.User, error) {
	var user model.User
	if err := repo.Db.Model(&model.User{}).Where("user_name = ?", username).First(&user).Error; err != nil {
		return &model.User{}, err
	}
	return &user, nil
}

// CheckPassword verifies a user's password.
func CheckPassword(username, password string) error {
	var user model.User
	if err := repo.Db.Model(&model.User{}).Where("user_name = ?", username).First(&user).Error; err != nil {
		return err
	}
	if !utils.CheckPwd(password, user.Password) {
		return ErrAuthorization("password error")
	}
	return nil
}

// IsEmailExist checks whether an email exists.
func IsEmailExist(email string) error {
	var user model.User
	if err := repo.Db.Model(&model.User{}).Where("email = ?", email).First(&user).Error; err != nil {
		return err
	}
	return nil
}

// EnsureAdminUser seeds an admin account from env on first boot.
func EnsureAdminUser() {
	if config.AppConfig.AdminPassword == "" {
		log.Println("ADMIN_PASSWORD not set, skipping admin seed")
		return
	}
	var count int64
	if err := repo.Db.Model(&model.User{}).Where("level = ?", model.LevelAdmin).Count(&count).Error; err != nil {
		log.Printf("admin seed check failed: %v", err)
		return
	}
	if count > 0 {
		return
	}
	admin := model.User{
		UserName: config.AppConfig.AdminUsername,
		Email:    config.AppConfig.AdminEmail,
		Password: config.AppConfig.AdminPassword,
		Level:    model.LevelAdmin,
		IsActive: true,
	}
	if err := CreateUser(&admin); err != nil {
		log.Printf("admin seed failed: %v", err)
		return
	}
	log.Printf("seeded admin user %q", admin.UserName)
}

// ListUsers returns all users. Admin only.
func ListUsers(caller authz.Caller) ([]model.User, error) {
	if !authz.Decide(caller, authz.OpUserList, caller.ID) {
		return nil, ErrAuthorization("user management requires admin")
	}
	var users []model.User
	if err := repo.Db.Order("id").Find(&users).Error; err != nil {
		return nil, ErrStorage(err)
	}
	return users, nil
}

// GetUserByID returns a single user row.
func GetUserByID(id uint64) (*model.User, error) {
	var user model.User
	if err := repo.Db.Where("id = ?", id).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound("user not found")
		}
		return nil, ErrStorage(err)
	}
	return &user, nil
}

// AdminCreateUser creates a user with an explicit level. Admin only.
func AdminCreateUser(caller authz.Caller, username, email, password, level string) (*model.User, error) {
	if !authz.Decide(caller, authz.OpUserCreate, caller.ID) {
		return nil, ErrAuthorization("user management requires admin")
	}
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" || password == "" {
		return nil, ErrValidation("username, email and password required")
	}
	if !model.ValidLevel(level) {
		return nil, ErrValidation("level must be admin, user or viewer")
	}
	if _, err := IsExist(username); err == nil {
		return nil, ErrConflict("username %q already exists", username)
	}
	if err := IsEmailExist(email); err == nil {
		return nil, ErrConflict("email %q already exists", email)
	}
	user := model.User{
		UserName: username,
		Email:    email,
		Password: password,
		Level:    level,
		IsActive: true,
	}
	if err := CreateUser(&user); err != nil {
		return nil, ErrStorage(err)
	}
	return &user, nil
}

// UpdateUser updates a user. Admins may update anyone including level;
// other callers only their own username and email, never level.
func UpdateUser(caller authz.Caller, id uint64, username, email, level string) (*model.User, error) {
	if !authz.Decide(caller, authz.OpUserUpdate, id) {
		return nil, ErrAuthorization("no access to this user")
	}
	if level != "" && caller.Level != model.LevelAdmin {
		return nil, ErrAuthorization("only an admin may change a user's level")
	}
	user, err := GetUserByID(id)
	if err != nil {
		return nil, err
	}

	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username != "" && username != user.UserName {
		if _, err := IsExist(username); err == nil {
			return nil, ErrConflict("username %q already exists", username)
		}
		user.UserName = username
	}
	if email != "" && email != user.Email {
		if err := IsEmailExist(email); err == nil {
			return nil, ErrConflict("email %q already exists", email)
		}
		user.Email = email
	}
	if level != "" {
		if !model.ValidLevel(level) {
			return nil, ErrValidation("level must be admin, user or viewer")
		}
		user.Level = level
	}

	if err := repo.Db.Model(&model.User{}).Where("id = ?", user.ID).
		Updates(map[string]interface{}{
			"user_name": user.UserName,
			"email":     user.Email,
			"level":     user.Level,
		}).Error; err != nil {
		return nil, ErrStorage(err)
	}
	return user, nil
}

// DeleteUser removes a user and every file they own, junction rows
// included; blobs are handed to the cleanup worker. The gate rejects
// self-deletion for every role.
func DeleteUser(ctx context.Context, caller authz.Caller, id uint64) error {
	if !authz.Decide(caller, authz.OpUserDelete, id) {
		if caller.ID == id {
			return ErrAuthorization("cannot delete your own account")
		}
		return ErrAuthorization("user management requires admin")
	}
	user, err := GetUserByID(id)
	if err != nil {
		return err
	}

	var files []model.File
	if err := repo.Db.Where("user_id = ?", user.ID).Find(&files).Error; err != nil {
		return ErrStorage(err)
	}

	err = repo.Db.Transaction(func(tx *gorm.DB) error {
		for _, file := range files {
			if err := ClearTags(tx, file.ID); err != nil {
				return err
			}
		}
		if err := tx.Where("user_id = ?", user.ID).Delete(&model.File{}).Error; err != nil {
			return err
		}
		return tx.Delete(user).Error
	})
	if err != nil {
		return ErrStorage(err)
	}

	for _, file := range files {
		removeBlob(ctx, config.AppConfig.BucketName, file.FilePath)
	}
	utils.InvalidateFileListCache(ctx)
	return nil
}
