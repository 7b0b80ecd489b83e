package dto

// DirectoryUserResponse represents one directory entry in the lookup listing
type DirectoryUserResponse struct {
	ID          string `json:"id"`
	Surname     string `json:"surname"`
	GivenName   string `json:"givenName"`
	Mail        string `json:"mail"`
	DisplayName string `json:"displayName"`
}
