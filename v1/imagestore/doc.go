// Package imagestore keeps raw images in a MinIO or S3 bucket.
//
// Keys are content addressed: "{prefix}{sha256}.{ext}", with the extension
// sniffed from the bytes. Uploading the same image twice stores one object and
// returns the same locator. Locators are s3://bucket/key unless
// Config.PublicBaseURL is set.
//
//	store, err := imagestore.NewStore(cfg, log)
//	if err := store.EnsureBucket(ctx); err != nil { ... }
//	url, err := store.Put(ctx, pngBytes)
package imagestore
