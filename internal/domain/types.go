package domain

type (
	UserId    = int64
	TopicId   = int64
	MessageId = int64

	// BlobKey is the opaque key an image blob is addressed by in the
	// asset store. Empty means "no image".
	BlobKey = string
)
