package auth

import "github.com/mrlokans/telecom/internal/entities"

// Command names an operation a caller may be authorized for.
type Command string

const (
	CommandHome     Command = "home"
	CommandLogin    Command = "login"
	CommandRegister Command = "register"
	CommandLogout   Command = "logout"
	CommandHealth   Command = "health"

	CommandListServices      Command = "showAllServices"
	CommandListSubscribers   Command = "showAllSubscribers"
	CommandSubscriberDetails Command = "details"

	CommandAddSubscriber   Command = "addSubscriber"
	CommandBlockSubscriber Command = "blockSubscriber"
	CommandLinkService     Command = "linkService"
	CommandAddService      Command = "addService"
	CommandListUnpaid      Command = "showUnpaidInvoices"
	CommandAddInvoice      Command = "addInvoice"
	CommandPayInvoice      Command = "payInvoice"
	CommandInitData        Command = "initData"
)

var guestCommands = map[Command]bool{
	CommandHome:     true,
	CommandLogin:    true,
	CommandRegister: true,
	CommandLogout:   true,
	CommandHealth:   true,
}

var userCommands = map[Command]bool{
	CommandListServices:      true,
	CommandListSubscribers:   true,
	CommandSubscriberDetails: true,
}

// IsAllowed reports whether role may run cmd. Guest commands are open to
// everyone, ADMIN may run anything, USER only the read-only listings.
func IsAllowed(role entities.Role, cmd Command) bool {
	if guestCommands[cmd] {
		return true
	}
	switch role {
	case entities.RoleAdmin:
		return true
	case entities.RoleUser:
		return userCommands[cmd]
	default:
		return false
	}
}
