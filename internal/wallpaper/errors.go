package wallpaper

import "fmt"

// StatusError is returned for responses outside the 2xx range
type StatusError struct {
	Code   int
	Status string
	URL    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %s from %s", e.Status, e.URL)
}

func isSuccess(code int) bool {
	return code >= 200 && code < 300
}
