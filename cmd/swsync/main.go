// Command swsync is a bidirectional CSV sync engine for commerce-platform
// entities.
//
// It exports entity records to CSV and imports CSV back into the
// platform via a configurable, script-extensible profile:
//   - Criteria-based paginated export with serialize/deserialize scripts
//   - Batched, retrying import with partial-failure recovery
//   - Path-mapping and key-mapping column projection
//   - Recurring sync on a cron schedule or on profile-file change
//
// Usage:
//
//	# Store API credentials
//	swsync auth -d https://shop.example.com -i ID -s SECRET
//
//	# Export an entity to CSV
//	swsync sync -m export -p profiles/product.yaml -f products.csv
//
//	# Import CSV back into the platform
//	swsync sync -m import -p profiles/product.yaml -f products.csv
//
//	# Copy the bundled profiles into the current directory
//	swsync copy-profile
//
//	# Trigger a remote search-index rebuild
//	swsync index
//
//	# Show version information
//	swsync version
//
// For complete documentation, see: https://github.com/shopware/sw-sync-cli
package main

func main() {
	Execute()
}
