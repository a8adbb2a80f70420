package model

// MeetingTier records which provisioning strategy produced a meeting.
type MeetingTier string

const (
	// MeetingTierProvider: a real calendar event with a provider-hosted conference.
	MeetingTierProvider MeetingTier = "provider"
	// MeetingTierSynthetic: placeholder link, no calendar integration was available.
	MeetingTierSynthetic MeetingTier = "synthetic"
	// MeetingTierBasic: random placeholder link for paths that must not touch the provider.
	MeetingTierBasic MeetingTier = "basic"
)

// Meeting is the identity of a virtual meeting.
type Meeting struct {
	URL      string
	ID       string
	Password string
	Tier     MeetingTier
	// OrganizerID is the user whose calendar hosts the event (provider tier only).
	OrganizerID int64
}

// IsReal reports whether the meeting is hosted by the provider.
func (m *Meeting) IsReal() bool {
	return m != nil && m.Tier == MeetingTierProvider
}
