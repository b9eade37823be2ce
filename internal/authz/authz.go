package authz

import "PdfVault/model"

// Caller is the authenticated identity attached to a request.
type Caller struct {
	ID    uint64
	Level string
}

// Operation enumerates every gated action in the system.
type Operation int

const (
	OpFileRead Operation = iota
	OpFileCreate
	OpFileUpdate
	OpFileDelete
	OpTagList
	OpTagUsage
	OpTagMutate
	OpUserList
	OpUserCreate
	OpUserUpdate
	OpUserDelete
)

// Decide returns whether caller may perform op against a resource owned by
// ownerID. Every role check in the system goes through here; handlers and
// services never compare level strings themselves.
//
// The self-delete guard is role-independent: no caller may delete their own
// user record, admins included.
func Decide(caller Caller, op Operation, ownerID uint64) bool {
	if op == OpUserDelete && caller.ID == ownerID {
		return false
	}

	switch caller.Level {
	case model.LevelAdmin:
		return true

	case model.LevelUser:
		switch op {
		case OpFileCreate, OpTagList:
			return true
		case OpFileRead, OpFileUpdate, OpFileDelete:
			return caller.ID == ownerID
		case OpUserUpdate:
			return caller.ID == ownerID
		}
		return false

	case model.LevelViewer:
		switch op {
		case OpFileRead, OpTagList:
			return true
		case OpUserUpdate:
			return caller.ID == ownerID
		}
		return false
	}
	return false
}
