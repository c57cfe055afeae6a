package dto

// HomeResponse is the landing payload with entry links.
type HomeResponse struct {
	Name  string            `json:"name"`
	Links map[string]string `json:"links"`
}
