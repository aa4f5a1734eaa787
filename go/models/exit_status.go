package models

import "fmt"

// ExitStatus is returned by a run loop once the guest exits.
type ExitStatus int

func (e ExitStatus) Error() string {
	return fmt.Sprintf("exit %d", int(e))
}
