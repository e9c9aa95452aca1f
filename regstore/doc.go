// Package regstore stores secrets in the Windows registry, encrypted
// with DPAPI. It serves system services that run without access to the
// per-user Credential Manager. One registry subkey is created per
// service name; each user is a binary value under it.
//
// The package compiles to nothing on other platforms.
package regstore
