package hero

// Profile event types published on the event bus. Events carry the hero as
// source and a snapshot of the profile as target.
const (
	EventProfilePersisted    = "codex.profile.persisted"
	EventProfileSynced       = "codex.profile.synced"
	EventProfileSyncDeferred = "codex.profile.sync_deferred"
	EventProfileRefreshed    = "codex.profile.refreshed"
)

// ProfileEventTypes lists every profile event type
func ProfileEventTypes() []string {
	return []string{
		EventProfilePersisted,
		EventProfileSynced,
		EventProfileSyncDeferred,
		EventProfileRefreshed,
	}
}
