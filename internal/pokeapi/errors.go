package pokeapi

import "fmt"

// StatusError is returned when the api answers with a non 2xx status.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("pokeapi %s: unexpected status %d", e.URL, e.StatusCode)
}
