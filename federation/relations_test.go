package federation_test

import (
	"testing"

	"rolegate/federation"
	"rolegate/store"

	. "github.com/onsi/gomega"
)

func TestRoleRelations(t *testing.T) {
	RegisterTestingT(t)

	t.Run("role reads should join all permissions without unwinding", func(t *testing.T) {
		origin := federation.IndexPrefix
		defer func() { federation.IndexPrefix = origin }()
		federation.IndexPrefix = "idx"

		Expect(federation.RoleRelations("acme")).To(Equal([]store.LookupSpec{
			{From: "idx_bpm_acme_permissions", LocalField: "_id", ForeignField: "roleId", As: "permissions", Unwind: false},
		}))
	})
}

func TestPermissionRelations(t *testing.T) {
	RegisterTestingT(t)

	t.Run("permission reads should join role and module, each unwound", func(t *testing.T) {
		origin := federation.IndexPrefix
		defer func() { federation.IndexPrefix = origin }()
		federation.IndexPrefix = "idx"

		Expect(federation.PermissionRelations("acme")).To(Equal([]store.LookupSpec{
			{From: "idx_bpm_acme_roles", LocalField: "roleId", ForeignField: "_id", As: "roleId", Unwind: true},
			{From: "idx_bpm_acme_module", LocalField: "moduleId", ForeignField: "moduleId", As: "moduleId", Unwind: true},
		}))
	})
}
