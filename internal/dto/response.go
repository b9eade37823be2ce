package dto

import "time"

// FileItem is a file as serialized to a caller. Fields a viewer may not
// see are left zero and dropped by omitempty.
type FileItem struct {
	ID          uint64    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	FileType    string    `json:"file_type,omitempty"`
	Size        int64     `json:"size,omitempty"`
	UserID      uint64    `json:"user_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	Tags        []string  `json:"tags"`
	URL         string    `json:"url,omitempty"`
}
