package federation_test

import (
	"testing"

	"rolegate/federation"

	. "github.com/onsi/gomega"
)

func TestStorageNaming(t *testing.T) {
	RegisterTestingT(t)

	t.Run("document collections should embed the tenant before the resource token", func(t *testing.T) {
		origin := federation.IndexPrefix
		defer func() { federation.IndexPrefix = origin }()
		federation.IndexPrefix = "idx"

		Expect(federation.DocStorageID(federation.KindRoles, "acme")).To(Equal("idx_bpm_acme_roles"))
		Expect(federation.DocStorageID(federation.KindPermissions, "acme")).To(Equal("idx_bpm_acme_permissions"))
		Expect(federation.DocStorageID(federation.KindModules, "acme")).To(Equal("idx_bpm_acme_module"))
	})

	t.Run("search indexes should embed the tenant after the resource token", func(t *testing.T) {
		origin := federation.IndexPrefix
		defer func() { federation.IndexPrefix = origin }()
		federation.IndexPrefix = "idx"

		Expect(federation.SearchStorageID(federation.KindModules, "acme")).To(Equal("idx_bpm_module_acme"))
		Expect(federation.SearchStorageID(federation.KindRoles, "acme")).To(Equal("idx_bpm_roles_acme"))
	})

	t.Run("different tenants should never share a storage identifier", func(t *testing.T) {
		Expect(federation.DocStorageID(federation.KindRoles, "acme")).
			NotTo(Equal(federation.DocStorageID(federation.KindRoles, "globex")))
		Expect(federation.SearchStorageID(federation.KindModules, "acme")).
			NotTo(Equal(federation.SearchStorageID(federation.KindModules, "globex")))
	})

	t.Run("configured prefix should flow into both families", func(t *testing.T) {
		origin := federation.IndexPrefix
		defer func() { federation.IndexPrefix = origin }()
		federation.IndexPrefix = "stage"

		Expect(federation.DocStorageID(federation.KindRoles, "acme")).To(Equal("stage_bpm_acme_roles"))
		Expect(federation.SearchStorageID(federation.KindModules, "acme")).To(Equal("stage_bpm_module_acme"))
	})
}
