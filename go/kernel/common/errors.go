package common

import (
	"fmt"

	"github.com/pkg/errors"
)

var ErrDuplicateSyscall = errors.New("syscall number already registered")
var ErrNilDescriptor = errors.New("nil syscall descriptor")

func sprintf(format string, args ...interface{}) string {
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}
