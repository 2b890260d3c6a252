package services

import "time"

// Plan lifecycle event kinds pushed over the websocket.
const (
	EventPlanGenerated = "plan.generated"
	EventPlanDeleted   = "plan.deleted"
)

// PlanEvent is the wire shape of one plan lifecycle notification.
type PlanEvent struct {
	Kind string    `json:"kind"`
	Data any       `json:"data,omitempty"`
	At   time.Time `json:"at"`
}

type planEventDeps struct {
	rt *RealtimeHub
}

var _planEvents planEventDeps

func InitPlanEvents(rt *RealtimeHub) {
	_planEvents = planEventDeps{rt: rt}
}

// EmitPlanEvent notifies the user's open sockets of a plan lifecycle change.
// Safe to call before InitPlanEvents; it just does nothing.
func EmitPlanEvent(userID uint, kind string, data any) {
	if _planEvents.rt == nil {
		return
	}
	_planEvents.rt.BroadcastEvent(userID, PlanEvent{
		Kind: kind,
		Data: data,
		At:   time.Now(),
	})
}
