// internal/app/system/status/status.go

// Package status defines the uniform document lifecycle states. Deletion is
// soft everywhere: a DELETE marks the document Disabled and stamps
// deleted_at; list queries filter on Active.
package status

const (
	Active   = "active"
	Disabled = "disabled"
)
