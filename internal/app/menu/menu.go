// Package menu maps caller roles to the button labels they may press.
package menu

// Role is derived per message from the admin flag and the student row.
type Role int

const (
	RoleAnonymous Role = iota
	RoleRegistered
	RoleAdmin
)

func (r Role) String() string {
	switch r {
	case RoleRegistered:
		return "registered"
	case RoleAdmin:
		return "admin"
	default:
		return "anonymous"
	}
}

// Action is what a menu button does.
type Action int

const (
	ActionNone Action = iota
	ActionRegister
	ActionSchedule
	ActionTeachers
	ActionPeers
	ActionNews
	ActionAddNews
	ActionAdminLogout
)

// Button labels.
const (
	LabelRegister    = "Зареєструватися"
	LabelSchedule    = "Мій розклад"
	LabelTeachers    = "Викладачі"
	LabelPeers       = "Моя група"
	LabelNews        = "Новини"
	LabelAddNews     = "Додати новину"
	LabelAdminLogout = "Вийти з адмін-панелі"
)

type button struct {
	label  string
	action Action
}

var menus = map[Role][]button{
	RoleAnonymous: {
		{LabelRegister, ActionRegister},
	},
	RoleRegistered: {
		{LabelSchedule, ActionSchedule},
		{LabelTeachers, ActionTeachers},
		{LabelPeers, ActionPeers},
		{LabelNews, ActionNews},
	},
	RoleAdmin: {
		{LabelAddNews, ActionAddNews},
		{LabelNews, ActionNews},
		{LabelTeachers, ActionTeachers},
		{LabelAdminLogout, ActionAdminLogout},
	},
}

// For returns the ordered labels of the role's menu.
func For(role Role) []string {
	buttons := menus[role]
	labels := make([]string, 0, len(buttons))
	for _, b := range buttons {
		labels = append(labels, b.label)
	}
	return labels
}

// Resolve matches label exactly against the role's own menu only.
func Resolve(role Role, label string) (Action, bool) {
	for _, b := range menus[role] {
		if b.label == label {
			return b.action, true
		}
	}
	return ActionNone, false
}

// Groups returns the selectable labels for group names, in the given order.
// Blank and repeated names are skipped.
func Groups(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	labels := make([]string, 0, len(names))
	for _, n := range names {
		if n == "" {
			continue
		}
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		labels = append(labels, n)
	}
	return labels
}
