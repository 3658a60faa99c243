package domain

// Role as stored. Permissions is not persisted on the record, it is filled in
// by the permission lookup at read time.
type Role struct {
	ID          string       `json:"_id" bson:"_id"`
	Name        string       `json:"name" bson:"name"`
	Description string       `json:"description" bson:"description"`
	Type        string       `json:"type,omitempty" bson:"type,omitempty"`
	CreatedAt   string       `json:"createdAt,omitempty" bson:"createdAt,omitempty"`
	UpdatedAt   string       `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
	DeletedAt   string       `json:"deletedAt,omitempty" bson:"deletedAt,omitempty"`
	Permissions []Permission `json:"permissions,omitempty" bson:"permissions,omitempty"`
}

type RoleCreation struct {
	Name        string `json:"name" bson:"name" binding:"required"`
	Description string `json:"description" bson:"description" binding:"required"`
	Type        string `json:"type,omitempty" bson:"type,omitempty"`
	CreatedAt   string `json:"createdAt,omitempty" bson:"createdAt,omitempty"`
	UpdatedAt   string `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
	DeletedAt   string `json:"deletedAt,omitempty" bson:"deletedAt,omitempty"`
}

type RoleUpdating struct {
	Name        string `json:"name,omitempty" bson:"name,omitempty"`
	Description string `json:"description,omitempty" bson:"description,omitempty"`
	Type        string `json:"type,omitempty" bson:"type,omitempty"`
	UpdatedAt   string `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
	DeletedAt   string `json:"deletedAt,omitempty" bson:"deletedAt,omitempty"`
}
