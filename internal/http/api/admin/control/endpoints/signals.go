package endpoints

import (
	"github.com/rs/zerolog/log"

	"github.com/nightjar-labs/marquee/internal/db"
	"github.com/nightjar-labs/marquee/internal/hub"
)

// Signal reasons shared with the player protocol.
const (
	reasonScheduleUpdated = "schedule_updated"
	reasonContentUpdated  = "content_updated"
	reasonConfigUpdated   = "config_updated"
	reasonDisplayUpdated  = "default_display_updated"
)

// notifyScheduleGroup signals every device assigned to a schedule group.
// Fan-out is fire-and-forget so the mutation response never waits on it.
func notifyScheduleGroup(store db.Store, h *hub.Hub, groupID int, reason string) {
	go func() {
		keys, err := store.DeviceKeysForScheduleGroup(groupID)
		if err != nil {
			log.Error().Err(err).Int("group_id", groupID).Msg("fan-out lookup failed")
			return
		}
		if len(keys) > 0 {
			h.Notify(reason, keys...)
		}
	}()
}

// notifyContentGroup signals every device holding the group as fallback.
func notifyContentGroup(store db.Store, h *hub.Hub, groupID int, reason string) {
	go func() {
		keys, err := store.DeviceKeysForContentGroup(groupID)
		if err != nil {
			log.Error().Err(err).Int("group_id", groupID).Msg("fan-out lookup failed")
			return
		}
		if len(keys) > 0 {
			h.Notify(reason, keys...)
		}
	}()
}
