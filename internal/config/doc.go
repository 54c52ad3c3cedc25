// Package config holds runtime settings and the credential store.
//
// Settings carry the API client identity and retry knobs; the credential
// store persists the OAuth token pair in an INI file at a fixed per-user
// path (~/.imgurup.conf by default).
package config
