// Package model contains the domain types shared across imgurup:
// OAuth credentials, album descriptors, and the upload request/result pair.
package model
