// Package imgur wraps the two imgur API surfaces the tool needs: the OAuth
// token endpoint (PIN and refresh exchanges) and the v3 REST endpoints
// (account album list, image upload).
//
// Every v3 response arrives in the {success, status, data} envelope; the
// client decodes the envelope and leaves data interpretation to the caller.
// Token exchanges are decoded directly into credentials.
package imgur
