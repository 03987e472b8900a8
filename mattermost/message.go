// Package mattermost implements the Mattermost incoming-webhook API: the
// message schema and a client that POSTs one message to a webhook endpoint.
package mattermost

// Message is the body of one incoming-webhook POST. Text is mandatory when
// there are no attachments, and the other way around.
type Message struct {
	// Markdown-formatted message to display in the post.
	Text string `json:"text,omitempty"`

	// Overrides the channel the message posts in. Use the channel name,
	// not the display name; "@" followed by a username sends a DM.
	Channel string `json:"channel,omitempty"`

	// Overrides the username the message posts as.
	Username string `json:"username,omitempty"`

	// Overrides the profile picture the message posts with.
	IconURL string `json:"icon_url,omitempty"`

	// Emoji name overriding the profile picture, without the colons.
	IconEmoji string `json:"icon_emoji,omitempty"`

	// Attachments used for richer formatting options.
	Attachments []Attachment `json:"attachments,omitempty"`

	// Post type, mainly for use by plugins. Must begin with "custom_"
	// when not blank.
	Type string `json:"type,omitempty"`

	// Props is a JSON property bag for extra or meta data on the post.
	Props map[string]any `json:"props,omitempty"`
}

// Attachment is one message attachment.
//
// See https://docs.mattermost.com/developer/message-attachments.html for the
// rendering details.
type Attachment struct {
	// Required plain-text summary, used in notifications and in clients
	// that cannot render formatted text.
	Fallback string `json:"fallback"`

	// Hex color of the left border of the attachment.
	Color string `json:"color,omitempty"`

	// Line of text shown above the attachment.
	Pretext string `json:"pretext,omitempty"`

	// Markdown-formatted body of the attachment.
	Text string `json:"text,omitempty"`

	AuthorName string `json:"author_name,omitempty"`
	AuthorLink string `json:"author_link,omitempty"`
	AuthorIcon string `json:"author_icon,omitempty"`

	// Title, optionally hyperlinked by TitleLink.
	Title     string `json:"title,omitempty"`
	TitleLink string `json:"title_link,omitempty"`

	// Fields are rendered as a table inside the attachment.
	Fields []Field `json:"fields,omitempty"`

	// Full-size image and 75x75 thumbnail.
	ImageURL string `json:"image_url,omitempty"`
	ThumbURL string `json:"thumb_url,omitempty"`

	// Footer line below the attachment, truncated at 300 characters.
	Footer     string `json:"footer,omitempty"`
	FooterIcon string `json:"footer_icon,omitempty"`
}

// Field is one cell of the attachment field table.
type Field struct {
	Title string `json:"title,omitempty"`
	Value string `json:"value,omitempty"`

	// Short marks the value small enough to sit beside other fields.
	Short bool `json:"short,omitempty"`
}
