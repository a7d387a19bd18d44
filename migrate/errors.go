package migrate

import "fmt"

// ContainerWriteError is returned when a file or directory could not be stored in the
// container, either because its content failed to decode or because the container
// refused the object.
type ContainerWriteError struct {
	Path      string
	Container string
	Err       error
}

func (e *ContainerWriteError) Error() string {
	return fmt.Sprintf("failed to write %s into container %s: %v", e.Path, e.Container, e.Err)
}

func (e *ContainerWriteError) Unwrap() error {
	return e.Err
}
