// Package users is the persisted registry of username/password records.
//
// Records live under kv.KeyUsers as a JSON array and every operation scans the
// persisted list, so concurrent writers through other Registry values on the
// same storage are observed on the next call. Usernames are unique and
// compared case-sensitively; passwords are stored and compared as given.
//
// The registry never touches the session flag. Callers compose a successful
// Authenticate or SignUp with session.Store.Login themselves (see loginflow).
package users
