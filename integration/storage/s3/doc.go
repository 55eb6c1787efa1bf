// Package s3 uploads product images to Amazon S3 or an S3-compatible service
// (MinIO, DigitalOcean Spaces, Wasabi) and returns their public URL, so the
// catalog stores a short URL instead of an inline data URI.
//
// ImageUploader implements imageref.Encoder and plugs into an imageref.Slot:
//
//	uploader, err := s3.New(ctx, s3.Config{
//		Bucket: "storefront-images",
//		Region: "eu-west-1",
//	})
//	if err != nil {
//		return err
//	}
//	slot := imageref.NewSlot(uploader, imageref.WithInitial(product.Image))
//
// Uploads are validated with imageref.Validate before any request is made.
// Object keys are "<prefix><uuid><ext>", so re-uploading never overwrites a
// previous image that a product may still reference.
//
// Static credentials are optional; without them the default AWS credential
// chain (env vars, shared config, IAM role) is used.
package s3
