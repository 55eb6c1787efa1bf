package imageref

import "errors"

var (
	ErrEmptyUpload = errors.New("imageref: empty upload")
	ErrTooLarge    = errors.New("imageref: image exceeds size limit")
	ErrNotImage    = errors.New("imageref: content is not an image")
	// ErrSuperseded is returned by a Slot future whose selection was replaced
	// by a newer one before it resolved.
	ErrSuperseded = errors.New("imageref: selection superseded")
)
