package domain

import "time"

// Message is a reply inside a topic. ReplyTo, when set, points at another
// message of the same topic; the reference may dangle after that message
// is deleted, readers render it as "reply to a deleted message".
type Message struct {
	Id        MessageId `json:"id"`
	CreatorId UserId    `json:"creator_id"`
	CreatedAt time.Time `json:"created_at"`
	TopicId   TopicId   `json:"topic_id"`
	ReplyTo   *MessageId `json:"reply_to,omitempty"`
	Text      string    `json:"text"`
}

type MessageCreationData struct {
	CreatorId UserId
	TopicId   TopicId
	ReplyTo   *MessageId
	Text      string
}
