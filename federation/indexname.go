// Package federation maps logical, tenant-scoped resources onto the physical
// storage of the two store families and routes repository operations between
// them.
package federation

import "fmt"

// IndexPrefix is the global namespace token shared by every physical storage
// identifier. It is assigned once at startup from configuration.
var IndexPrefix = "idx"

const domainToken = "bpm"

const (
	KindRoles       = "roles"
	KindPermissions = "permissions"
	KindModules     = "module"
)

// DocStorageID is the document store collection of a resource kind for one
// tenant.
func DocStorageID(kind, companyPrefix string) string {
	return fmt.Sprintf("%s_%s_%s_%s", IndexPrefix, domainToken, companyPrefix, kind)
}

// SearchStorageID is the search index of a resource kind for one tenant. The
// tenant prefix and the resource token trade places relative to DocStorageID;
// the already provisioned physical indexes are named this way, so the asymmetry
// is load bearing.
func SearchStorageID(kind, companyPrefix string) string {
	return fmt.Sprintf("%s_%s_%s_%s", IndexPrefix, domainToken, kind, companyPrefix)
}
