package models

import "time"

// Gallery is one event folder. FolderName is the natural key.
type Gallery struct {
	ID            string    `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`
	Title         string    `gorm:"column:title;type:varchar(255);not null" json:"title"`
	EventDate     string    `gorm:"column:event_date;type:varchar(10);not null" json:"event_date"`
	FolderName    string    `gorm:"column:folder_name;type:varchar(255);uniqueIndex;not null" json:"folder_name"`
	CoverImageURL *string   `gorm:"column:cover_image_url;type:varchar(1024)" json:"cover_image_url"`
	AccessPIN     *string   `gorm:"column:access_pin;type:varchar(32)" json:"-"`
	CreatedAt     time.Time `gorm:"column:created_at;type:timestamp;autoCreateTime" json:"created_at"`
}

// TableName overrides the table name used by Gallery to `galleries`
func (Gallery) TableName() string {
	return "galleries"
}

// HasPIN reports whether the gallery is protected by an access PIN.
func (g Gallery) HasPIN() bool {
	return g.AccessPIN != nil && *g.AccessPIN != ""
}

// User is a photographer handle. Handle is the natural key.
type User struct {
	ID          string    `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`
	Handle      string    `gorm:"column:handle;type:varchar(255);uniqueIndex;not null" json:"handle"`
	DisplayName string    `gorm:"column:display_name;type:varchar(255);not null" json:"display_name"`
	CreatedAt   time.Time `gorm:"column:created_at;type:timestamp;autoCreateTime" json:"created_at"`
}

// TableName overrides the table name used by User to `users`
func (User) TableName() string {
	return "users"
}

// Photo is one image object. StorageKey is the natural key.
type Photo struct {
	ID         string    `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`
	GalleryID  string    `gorm:"column:gallery_id;type:varchar(36);not null;index" json:"gallery_id"`
	UserTagID  *string   `gorm:"column:user_tag_id;type:varchar(36);index" json:"user_tag_id"`
	StorageKey string    `gorm:"column:storage_key;type:varchar(512);uniqueIndex;not null" json:"storage_key"`
	PublicURL  string    `gorm:"column:public_url;type:varchar(1024);not null" json:"public_url"`
	Width      *uint32   `gorm:"column:width;type:int" json:"width"`
	Height     *uint32   `gorm:"column:height;type:int" json:"height"`
	CreatedAt  time.Time `gorm:"column:created_at;type:timestamp;autoCreateTime" json:"created_at"`
}

// TableName overrides the table name used by Photo to `photos`
func (Photo) TableName() string {
	return "photos"
}

// PhotoView is a photo joined with its gallery folder and user handle, as
// served by the read endpoints.
type PhotoView struct {
	StorageKey string  `json:"storage_key"`
	PublicURL  string  `json:"public_url"`
	FolderName string  `json:"folder_name"`
	UserHandle string  `json:"user_handle,omitempty"`
	Width      *uint32 `json:"width"`
	Height     *uint32 `json:"height"`
}

// GalleryView is the listing shape of a gallery.
type GalleryView struct {
	FolderName    string  `json:"folder_name"`
	Title         string  `json:"title"`
	EventDate     string  `json:"event_date"`
	CoverImageURL *string `json:"cover_image_url"`
	Protected     bool    `json:"protected"`
}

// View converts a stored gallery to its listing shape.
func (g Gallery) View() GalleryView {
	return GalleryView{
		FolderName:    g.FolderName,
		Title:         g.Title,
		EventDate:     g.EventDate,
		CoverImageURL: g.CoverImageURL,
		Protected:     g.HasPIN(),
	}
}

// Schema lists the models whose tables the integrity check verifies.
func Schema() []any {
	return []any{Gallery{}, User{}, Photo{}}
}
