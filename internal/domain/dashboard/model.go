package dashboard

// Event is one entry of a user's activity feed. The JSON shape matches the
// dashboard wire format: actor first, target last.
type Event struct {
	Actor      string `json:"user"`
	ActorUUID  string `json:"user_uuid"`
	Action     string `json:"action"`
	TargetKind string `json:"label"`
	TargetName string `json:"name"`
	Time       string `json:"time"`
	TargetUUID string `json:"uuid"`
}

// Action kinds emitted by the aggregation.
const (
	ActionOwns      = "owns"
	ActionCreated   = "created"
	ActionFavorited = "favorited"
	ActionReviewed  = "reviewed"
)
