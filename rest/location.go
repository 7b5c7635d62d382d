package rest

import "strings"

// Reserved first path segments that must never be treated as a tenant slug:
// the administrative portal root and the login page.
const (
	AdminRootSegment = "admin"
	LoginSegment     = "login"
)

// TenantSlug extracts the tenant slug from an app location path: its first
// segment, verbatim (case preserved), or "" when the path is empty or the
// segment is reserved.
func TenantSlug(location string) string {
	seg := strings.TrimPrefix(location, "/")
	if idx := strings.IndexByte(seg, '/'); idx >= 0 {
		seg = seg[:idx]
	}
	switch seg {
	case "", AdminRootSegment, LoginSegment:
		return ""
	}
	return seg
}
