package log

import (
	"github.com/YuminosukeSato/gbtree/pkg/errors"
	"github.com/rs/zerolog"
)

func init() {
	zerolog.ErrorStackFieldName = StacktraceKey
	zerolog.ErrorStackMarshaler = marshalStack
}

// marshalStack emits the stack trace recorded by cockroachdb/errors, if any.
func marshalStack(err error) interface{} {
	if stack := errors.StackTrace(err); stack != "" {
		return stack
	}
	return nil
}
