// Package storage persists uploaded guide photos, either on local disk
// (served under /public/img/guides/) or on Cloudinary.
package storage

import "context"

type Image struct {
	Name        string
	ContentType string
	Data        []byte
	// BaseURL is scheme://host of the incoming request. Only LocalStore uses it.
	BaseURL string
}

type ImageStore interface {
	// Save stores img and returns its public URL.
	Save(ctx context.Context, img Image) (string, error)
	// Delete removes a previously returned URL. Unknown URLs are ignored.
	Delete(ctx context.Context, url string) error
}
