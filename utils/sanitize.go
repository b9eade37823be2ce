package utils

import "strings"

var headerFilenameCleaner = strings.NewReplacer("\r", "", "\n", "", "\"", "")

// SanitizeHeaderFilename strips CR, LF and double quotes from a file name
// so it is safe inside a Content-Disposition header. A blank name falls
// back to "download".
func SanitizeHeaderFilename(name string) string {
	clean := headerFilenameCleaner.Replace(strings.TrimSpace(name))
	if clean == "" {
		return "download"
	}
	return clean
}
