package domain

import "time"

// Topic is a top-level question thread. Deleting a topic removes its
// messages and releases the pinned image.
type Topic struct {
	Id          TopicId   `json:"id"`
	CreatorId   UserId    `json:"creator_id"`
	CreatedAt   time.Time `json:"created_at"`
	Text        string    `json:"text"`
	PinnedImage BlobKey   `json:"pinned_image,omitempty"`
}

// TopicCreationData travels handler -> service -> storage.
type TopicCreationData struct {
	CreatorId   UserId
	Text        string
	PinnedImage BlobKey
}
