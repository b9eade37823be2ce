package dto

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Username      string `json:"username" binding:"required"`
	FirstPassword string `json:"first-password" binding:"required"`
	LastPassword  string `json:"second-password" binding:"required"`
	Email         string `json:"email" binding:"required"`
}

type FileListRequest struct {
	Search string   `json:"search"`
	Tags   []string `json:"tags"`
}

type FileUpdateRequest struct {
	FileID      uint64   `json:"file_id" binding:"required"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

type FileDeleteRequest struct {
	FileID uint64 `json:"file_id" binding:"required"`
}

type TagCreateRequest struct {
	Name string `json:"name" binding:"required"`
}

type TagRenameRequest struct {
	TagID uint64 `json:"tag_id" binding:"required"`
	Name  string `json:"name" binding:"required"`
}

type TagDeleteRequest struct {
	TagID uint64 `json:"tag_id" binding:"required"`
}

type UserCreateRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Level    string `json:"level" binding:"required"`
}

type UserUpdateRequest struct {
	UserID   uint64 `json:"user_id" binding:"required"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Level    string `json:"level"`
}

type UserDeleteRequest struct {
	UserID uint64 `json:"user_id" binding:"required"`
}
