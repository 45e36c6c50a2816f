package constant

const (
	MinSearchQueryLength = 2

	GreetingMessage = "Hi! I'd like to connect with you."

	GenericErrorMessage = "Something went wrong. Please try again."
)

type MessengerStatus string

const (
	StatusIdle    MessengerStatus = "idle"
	StatusLoading MessengerStatus = "loading"
	StatusReady   MessengerStatus = "ready"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)
