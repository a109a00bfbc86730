package models

import (
	"strings"
	"time"
)

// Upload records a stored file attached to a service order and/or a client.
// At least one of the two references must be present.
type Upload struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	OrderID  *uint  `gorm:"index" json:"order_id,omitempty"`
	ClientID *uint  `gorm:"index" json:"client_id,omitempty"`
	FileURL  string `gorm:"type:varchar(255);not null" json:"file_url"`
	FileType string `gorm:"type:varchar(50)" json:"file_type,omitempty"`

	UploadedAt time.Time `gorm:"autoCreateTime" json:"uploaded_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	Order  *ServiceOrder `gorm:"foreignKey:OrderID" json:"order,omitempty"`
	Client *Client       `gorm:"foreignKey:ClientID" json:"client,omitempty"`
}

// Extension is the lowercase file extension without the dot.
func (u *Upload) Extension() string {
	idx := strings.LastIndex(u.FileURL, ".")
	if idx < 0 || idx == len(u.FileURL)-1 {
		return ""
	}
	return strings.ToLower(u.FileURL[idx+1:])
}

var (
	imageExtensions    = []string{"jpg", "jpeg", "png", "gif", "bmp", "webp"}
	documentExtensions = []string{"pdf", "doc", "docx", "xls", "xlsx", "txt"}
	videoExtensions    = []string{"mp4", "avi", "mov", "wmv"}
)

func hasExtension(ext string, set []string) bool {
	for _, e := range set {
		if e == ext {
			return true
		}
	}
	return false
}

// IsImage reports whether the file looks like an image.
func (u *Upload) IsImage() bool { return hasExtension(u.Extension(), imageExtensions) }

// IsDocument reports whether the file looks like a document.
func (u *Upload) IsDocument() bool { return hasExtension(u.Extension(), documentExtensions) }

// IsVideo reports whether the file looks like a video.
func (u *Upload) IsVideo() bool { return hasExtension(u.Extension(), videoExtensions) }

// UploadStats summarizes stored files by coarse type.
type UploadStats struct {
	Total     int64 `json:"total"`
	Images    int64 `json:"images"`
	Documents int64 `json:"documents"`
	Videos    int64 `json:"videos"`
	Others    int64 `json:"others"`
}
