package outbound

import "context"

// MediaStorePort uploads a media blob under the given object name and
// returns its public URL. Uploads overwrite; stale blobs from earlier
// generations are not deleted.
type MediaStorePort interface {
	Upload(ctx context.Context, objectName string, data []byte, contentType string) (string, error)
}
