package model

// UploadRequest describes one upload invocation, assembled from CLI flags
// and interactive prompts.
type UploadRequest struct {
	// ImagePath is the local file to upload. Empty means "ask the user".
	ImagePath string

	// Anonymous uploads with the client id instead of a user token.
	Anonymous bool

	// AlbumID is the pre-selected target album. Empty means "ask the user"
	// when uploading authenticated; it is ignored for anonymous uploads.
	AlbumID string
}

// UploadResult is the outcome of a successful upload.
type UploadResult struct {
	Link       string `json:"link"`
	DeleteHash string `json:"deletehash"`
}

// DeleteLink returns the public URL that removes the uploaded image.
func (r UploadResult) DeleteLink() string {
	return "http://imgur.com/delete/" + r.DeleteHash
}
