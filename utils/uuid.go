package utils

import "github.com/google/uuid"

// GetToken returns a random opaque token for activation links.
func GetToken() string {
	return uuid.New().String()
}
