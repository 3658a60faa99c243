package federation

import "rolegate/store"

// RoleRelations declares the lookups a Role read denormalizes: the role's
// permission records, joined where permission.roleId equals the role id. A role
// owns many permissions, so the joined array stays an array.
func RoleRelations(companyPrefix string) []store.LookupSpec {
	return []store.LookupSpec{
		{
			From:         DocStorageID(KindPermissions, companyPrefix),
			LocalField:   "_id",
			ForeignField: "roleId",
			As:           "permissions",
			Unwind:       false,
		},
	}
}

// PermissionRelations declares the lookups a Permission read denormalizes: the
// owning role and the referenced module, one of each per permission.
func PermissionRelations(companyPrefix string) []store.LookupSpec {
	return []store.LookupSpec{
		{
			From:         DocStorageID(KindRoles, companyPrefix),
			LocalField:   "roleId",
			ForeignField: "_id",
			As:           "roleId",
			Unwind:       true,
		},
		{
			From:         DocStorageID(KindModules, companyPrefix),
			LocalField:   "moduleId",
			ForeignField: "moduleId",
			As:           "moduleId",
			Unwind:       true,
		},
	}
}
