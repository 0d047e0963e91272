package model

import "time"

// ContentKind discriminates the two shapes of document content.
type ContentKind string

const (
	ContentInline ContentKind = "inline"
	ContentRemote ContentKind = "remote"
)

// ContentRef points at document content: either the text itself or a URI to
// download it from. The zero value is invalid; use InlineRef or RemoteRef.
type ContentRef struct {
	Kind ContentKind `json:"kind"`
	Text string      `json:"text,omitempty"`
	URI  string      `json:"uri,omitempty"`
}

func InlineRef(text string) ContentRef {
	return ContentRef{Kind: ContentInline, Text: text}
}

func RemoteRef(uri string) ContentRef {
	return ContentRef{Kind: ContentRemote, URI: uri}
}

// DocumentMeta describes one document in the remote object library.
type DocumentMeta struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Title     string     `json:"title,omitempty"`
	MimeType  string     `json:"mime_type,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	Content   ContentRef `json:"content"`
}

// Timestamp is the recency used when selecting the digest document.
func (d DocumentMeta) Timestamp() time.Time {
	if d.UpdatedAt.After(d.CreatedAt) {
		return d.UpdatedAt
	}
	return d.CreatedAt
}
