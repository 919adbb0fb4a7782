package gate

// Action describes the kind of operation a role wants to perform.
type Action string

const (
	ActionView   Action = "view"
	ActionList   Action = "list"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"

	// Kitchen specific actions.
	ActionConsume Action = "consume"
	ActionConfirm Action = "confirm"
	ActionCancel  Action = "cancel"
	ActionFulfil  Action = "fulfil"
	ActionReport  Action = "report"
)

// ReadActions are the actions a read-only profile is granted.
var ReadActions = []Action{ActionView, ActionList}
