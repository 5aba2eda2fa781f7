// Package index provides the concurrent in-memory key-value mapping that
// serves the store's read path. The Index interface models the minimal
// capability set (get, insert, remove); the default implementation is
// backed by an xsync.MapOf so reads never block behind writers.
package index
