package model

// Credentials is the persisted OAuth token pair.
//
// The pair is replaced wholesale after a successful PIN or refresh exchange;
// a half-present pair is treated as absent.
type Credentials struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Complete reports whether both tokens are present.
func (c Credentials) Complete() bool {
	return c.AccessToken != "" && c.RefreshToken != ""
}
