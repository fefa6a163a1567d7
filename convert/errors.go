package convert

import (
	"fmt"

	"github.com/plainform/go-plain/schema"
)

// TypeError reports a value whose runtime type disagrees with the
// expected descriptor at a path. Recoverable: the offending subtree
// yields no value, siblings are unaffected.
type TypeError struct {
	Path     string
	Expected string
	Actual   string
	Message  string
}

func (e *TypeError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = fmt.Sprintf("expected %s, got %s", e.Expected, e.Actual)
	}
	if e.Path != "" {
		return fmt.Sprintf("type error at %s: %s", e.Path, msg)
	}
	return fmt.Sprintf("type error: %s", msg)
}

// MissingMemberError reports a required member that reified to no value.
// Recoverable.
type MissingMemberError struct {
	Path   string
	Member string
}

func (e *MissingMemberError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("missing required member %q at %s", e.Member, e.Path)
	}
	return fmt.Sprintf("missing required member %q", e.Member)
}

// ShapeError reports a collection whose plain representation does not
// match the declared wire shape. Recoverable: an empty collection of the
// declared kind stands in for the value.
type ShapeError struct {
	Path     string
	Expected string
	Actual   string
}

func (e *ShapeError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("shape error at %s: expected %s, got %s", e.Path, e.Expected, e.Actual)
	}
	return fmt.Sprintf("shape error: expected %s, got %s", e.Expected, e.Actual)
}

// HookError reports a lifecycle hook problem: a declared hook method that
// does not resolve to a callable, a hook that returned an error, or an
// initializer that produced an invalid instance.
type HookError struct {
	Path    string
	Hook    string
	Message string
	Err     error
}

func (e *HookError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("hook %q at %s: %s", e.Hook, e.Path, e.Message)
	}
	return fmt.Sprintf("hook %q: %s", e.Hook, e.Message)
}

func (e *HookError) Unwrap() error {
	return e.Err
}

// ConfigError wraps schema.ErrConfig with a conversion path. Fatal for
// the subtree: it indicates a registration bug, not a data problem, so the
// engines stop converting the node and escalate.
type ConfigError struct {
	Path    string
	Message string
}

func (e *ConfigError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("config error at %s: %s", e.Path, e.Message)
	}
	return fmt.Sprintf("config error: %s", e.Message)
}

func (e *ConfigError) Unwrap() error {
	return schema.ErrConfig
}
