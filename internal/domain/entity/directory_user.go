package entity

// DirectoryUser represents a person as returned by the corporate directory.
// It is a lookup shape only and is never persisted by this service.
type DirectoryUser struct {
	ID          string
	Surname     string
	GivenName   string
	Mail        string
	DisplayName string
}
