package domain

import "time"

type NewsId = int64

// News represents one news post. Content is stored as markdown and
// rendered to sanitized HTML when served.
type News struct {
	Id      NewsId
	Title   string
	Content string
	Photos  AttachmentSet
	Date    time.Time

	// RenderedContent is populated on read, never persisted.
	RenderedContent string
}

// NewsUpdate carries the editable fields of a news post.
// Nil Photos means the attachment set is left untouched.
type NewsUpdate struct {
	Title   string
	Content string
	Photos  *AttachmentSet
}
