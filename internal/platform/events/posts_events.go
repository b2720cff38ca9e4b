package events

import (
	"time"

	"github.com/google/uuid"
	"github.com/philly/folio/internal/platform/eventbus"
)

// Event topics for posts
const (
	PostCreatedTopic     eventbus.Topic = "posts.created"
	PostUpdatedTopic     eventbus.Topic = "posts.updated"
	PostPublishedTopic   eventbus.Topic = "posts.published"
	PostUnpublishedTopic eventbus.Topic = "posts.unpublished"
	PostDeletedTopic     eventbus.Topic = "posts.deleted"
	PostImportedTopic    eventbus.Topic = "posts.imported"
)

// PostTopics lists every topic that changes the public post set.
var PostTopics = []eventbus.Topic{
	PostCreatedTopic,
	PostUpdatedTopic,
	PostPublishedTopic,
	PostUnpublishedTopic,
	PostDeletedTopic,
	PostImportedTopic,
}

// PostChangedEvent is the payload of every post topic
type PostChangedEvent struct {
	PostID     uuid.UUID
	AuthorID   string
	Slug       string
	Published  bool
	OccurredAt time.Time
}
