package realtime

// Event names carried on realtime streams.
const (
	EventMessageSent     = "message-sent"
	EventWorkspaceInvite = "workspace:invite"
	EventInviteSent      = "invite:sent"
)

// ChannelStreamPrefix prefixes per-channel message streams.
const ChannelStreamPrefix = "channel-"

// ChannelStream names the stream carrying messages for a channel.
func ChannelStream(channelID string) string {
	return ChannelStreamPrefix + channelID
}

// UserStream names the private stream addressed to a single user.
func UserStream(userID string) string {
	return "private-user-" + userID
}

// Broadcaster is the fan-out surface services depend on.
type Broadcaster interface {
	BroadcastStream(stream string, message Message)
	BroadcastToUser(stream, userID string, message Message)
}
