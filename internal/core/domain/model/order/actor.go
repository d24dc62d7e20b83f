package order

// ActorRole says on whose behalf a change is made.
type ActorRole int

const (
	RoleAdmin ActorRole = iota + 1
	RoleClient
	RoleSystem
)

func (r ActorRole) String() string {
	switch r {
	case RoleAdmin:
		return "admin"
	case RoleClient:
		return "client"
	case RoleSystem:
		return "system"
	default:
		return "unknown"
	}
}

// Actor identifies who requested a change. ID is the chat user id; it is
// zero for the scheduler.
type Actor struct {
	ID   int64
	Name string
	Role ActorRole
}

func AdminActor(id int64, name string) Actor {
	return Actor{ID: id, Name: name, Role: RoleAdmin}
}

func ClientActor(id int64, name string) Actor {
	return Actor{ID: id, Name: name, Role: RoleClient}
}

func SystemActor() Actor {
	return Actor{Name: "scheduler", Role: RoleSystem}
}

// DisplayName falls back to the numeric id when no name is known.
func (a Actor) DisplayName() string {
	if a.Name != "" {
		return a.Name
	}
	if a.Role == RoleSystem {
		return "scheduler"
	}
	return "#" + formatInt(a.ID)
}
