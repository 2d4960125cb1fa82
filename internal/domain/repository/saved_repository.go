package repository

// SavedRepository persists the user's bookmarked listing ids on the client
// device. It is synchronous, durable across sessions, and has no server-side
// representation, so there is no context or reconciliation here.
type SavedRepository interface {
	Read() (map[string]struct{}, error)
	Write(ids map[string]struct{}) error
}
