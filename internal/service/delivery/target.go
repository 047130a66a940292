package delivery

// SourceKind is where an inbound messaging event came from.
type SourceKind string

const (
	SourceUser    SourceKind = "user"
	SourceGroup   SourceKind = "group"
	SourceRoom    SourceKind = "room"
	SourceUnknown SourceKind = "unknown"
)

// Target addresses the answer for one inbound event. ReplyToken is single-use
// and short-lived; RecipientID stays valid for push delivery.
type Target struct {
	Kind        SourceKind
	ReplyToken  string
	RecipientID string
}
