package loginflow

import "fmt"

// State of the dialog.
type State int

const (
	Closed State = iota
	OpenLogin
	OpenSignUp
)

func (s State) String() string {
	switch s {
	case Closed:
		return "closed"
	case OpenLogin:
		return "login"
	case OpenSignUp:
		return "signup"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// MarshalText encodes the state name.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

type event int

const (
	eventOpen event = iota
	eventToggle
	eventCancel
	eventSucceed
)

func (e event) String() string {
	return [...]string{"open", "toggle", "cancel", "succeed"}[e]
}

var transitions = map[State]map[event]State{
	Closed: {
		eventOpen: OpenLogin,
	},
	OpenLogin: {
		eventToggle:  OpenSignUp,
		eventCancel:  Closed,
		eventSucceed: Closed,
	},
	OpenSignUp: {
		eventToggle:  OpenLogin,
		eventCancel:  Closed,
		eventSucceed: Closed,
	},
}

func next(from State, e event) (State, error) {
	to, ok := transitions[from][e]
	if !ok {
		return from, fmt.Errorf("%w: %s from %s", ErrInvalidTransition, e, from)
	}
	return to, nil
}
