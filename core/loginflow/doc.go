// Package loginflow is the login/sign-up dialog state machine.
//
// States and transitions:
//
//	Closed     --Open-------> OpenLogin
//	OpenLogin  --ToggleMode-> OpenSignUp
//	OpenSignUp --ToggleMode-> OpenLogin
//	OpenLogin  --Cancel-----> Closed
//	OpenSignUp --Cancel-----> Closed
//	OpenLogin  --SubmitLogin (ok)--> Closed
//	OpenSignUp --SubmitSignUp (ok)-> Closed
//
// Any other transition fails with ErrInvalidTransition and leaves the state
// unchanged. A failed submission (bad credentials, duplicate username,
// mismatched confirmation) also leaves the state unchanged.
//
// On success the flow logs the session in and then emits a Success to
// OnSuccess subscribers. The registry does not touch the session itself; the
// flow composes the two.
package loginflow
