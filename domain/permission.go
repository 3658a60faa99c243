package domain

// Permission grants a role access to one module. At most one permission may
// exist per (roleId, moduleId) pair within a tenant.
type Permission struct {
	ID         string   `json:"_id" bson:"_id"`
	RoleID     string   `json:"roleId" bson:"roleId"`
	ModuleID   string   `json:"moduleId" bson:"moduleId"`
	FullAccess bool     `json:"fullAccess" bson:"fullAccess"`
	Actions    []string `json:"actions" bson:"actions"`
	CreatedAt  string   `json:"createdAt,omitempty" bson:"createdAt,omitempty"`
	UpdatedAt  string   `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
	DeletedAt  string   `json:"deletedAt,omitempty" bson:"deletedAt,omitempty"`
}

type PermissionCreation struct {
	RoleID     string   `json:"roleId" bson:"roleId" binding:"required"`
	ModuleID   string   `json:"moduleId" bson:"moduleId" binding:"required"`
	FullAccess bool     `json:"fullAccess" bson:"fullAccess"`
	Actions    []string `json:"actions" bson:"actions" binding:"required"`
	CreatedAt  string   `json:"createdAt,omitempty" bson:"createdAt,omitempty"`
	UpdatedAt  string   `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
	DeletedAt  string   `json:"deletedAt,omitempty" bson:"deletedAt,omitempty"`
}

type PermissionUpdating struct {
	RoleID     string   `json:"roleId,omitempty" bson:"roleId,omitempty"`
	ModuleID   string   `json:"moduleId,omitempty" bson:"moduleId,omitempty"`
	FullAccess *bool    `json:"fullAccess,omitempty" bson:"fullAccess,omitempty"`
	Actions    []string `json:"actions,omitempty" bson:"actions,omitempty"`
	UpdatedAt  string   `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
	DeletedAt  string   `json:"deletedAt,omitempty" bson:"deletedAt,omitempty"`
}

// MultiPermissionCreation replaces every grant of one role in a single
// request.
type MultiPermissionCreation struct {
	RoleID      string               `json:"roleId" binding:"required"`
	Permissions []PermissionCreation `json:"permissions" binding:"required,dive"`
}
