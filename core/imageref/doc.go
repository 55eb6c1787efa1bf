// Package imageref turns uploaded image files into image references that a
// product can store: inline data URIs by default, or URLs when an uploader
// such as the S3 integration is configured.
//
// Encoding is asynchronous. A Slot holds the current reference for one field
// (typically one product's image). Select starts encoding and returns a future
// immediately; the slot keeps its previous value until the encoding resolves.
// When a newer selection is made before an older one resolves, the older
// result is discarded with ErrSuperseded, so the slot always ends with the
// reference of the latest selection regardless of completion order.
//
//	slot := imageref.NewSlot(imageref.NewDataURIEncoder(),
//		imageref.WithInitial(product.Image),
//		imageref.WithCommit(func(ctx context.Context, ref string) error {
//			_, err := catalog.SetImage(ctx, product.ID, ref)
//			return err
//		}),
//	)
//	future := slot.Select(ctx, upload)
//	ref, err := future.Await()
package imageref
