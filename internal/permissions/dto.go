package permissions

// ListRequest scopes the permission catalogue to the caller. Agency
// staff (category 4) see the agency band; a user id caps the list at
// that user's own level.
type ListRequest struct {
	UserID       *int64 `json:"userId"`
	UserCategory *int   `json:"userCategory"`
}

// PermissionDTO is one catalogue row.
type PermissionDTO struct {
	PermissionID   int    `json:"permission_id"`
	PermissionName string `json:"permission_name"`
}
