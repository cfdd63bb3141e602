package eval

import (
	"fmt"
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/Lantharos/flick/pkg/eval/vals"
)

// UndefinedVariableError is raised when a name is read or assigned without
// having been declared in any enclosing scope.
type UndefinedVariableError struct {
	Name string
	// Suggestion is a visible name close to Name, or "".
	Suggestion string
}

func (e *UndefinedVariableError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("undefined variable %q (did you mean %q?)", e.Name, e.Suggestion)
	}
	return fmt.Sprintf("undefined variable %q", e.Name)
}

// ImmutableReassignmentError is raised when assigning to a lock binding, or
// redeclaring one in the same scope.
type ImmutableReassignmentError struct{ Name string }

func (e *ImmutableReassignmentError) Error() string {
	return fmt.Sprintf("cannot reassign immutable binding %q", e.Name)
}

// UnknownGroupError is raised by a do block naming a group that does not
// exist.
type UnknownGroupError struct{ Name string }

func (e *UnknownGroupError) Error() string {
	return fmt.Sprintf("unknown group %q", e.Name)
}

// UnknownBlueprintError is raised by a do block naming a blueprint that does
// not exist.
type UnknownBlueprintError struct{ Name string }

func (e *UnknownBlueprintError) Error() string {
	return fmt.Sprintf("unknown blueprint %q", e.Name)
}

// CallDepthError is raised when task calls nest deeper than MaxCallDepth,
// usually because of unbounded recursion.
type CallDepthError struct{ Limit int }

func (e *CallDepthError) Error() string {
	return fmt.Sprintf("maximum call depth %d exceeded", e.Limit)
}

// NotCallableError is raised when calling a value that is not a task, a
// builtin or a group constructor.
type NotCallableError struct {
	// What describes the callee as written, such as "x" or "player.name".
	What string
	Kind vals.Kind
}

func (e *NotCallableError) Error() string {
	if e.What == "" {
		return fmt.Sprintf("a %s is not callable", e.Kind)
	}
	return fmt.Sprintf("%s is not callable (it is a %s)", e.What, e.Kind)
}

// ModuleLoadError is raised when a module cannot be loaded: the file is
// missing, fails to parse or fails at run time, imports itself, or lacks an
// imported name.
type ModuleLoadError struct {
	Path string
	Err  error
}

func (e *ModuleLoadError) Error() string {
	return fmt.Sprintf("cannot load module %s: %v", e.Path, e.Err)
}

func (e *ModuleLoadError) Unwrap() error { return e.Err }

// UnknownPluginError is raised by declare statements naming a plugin that is
// not registered.
type UnknownPluginError struct{ Name string }

func (e *UnknownPluginError) Error() string {
	return fmt.Sprintf("unknown plugin %q", e.Name)
}

// ArgError is raised by builtins that get arguments of the wrong kind.
type ArgError struct {
	Fn      string
	Message string
}

func (e *ArgError) Error() string {
	return e.Fn + ": " + e.Message
}

// ArgErrorf returns an *ArgError for the named function.
func ArgErrorf(fn, format string, args ...any) error {
	return &ArgError{fn, fmt.Sprintf(format, args...)}
}

// closestName returns the candidate that best matches name, or "". A
// candidate containing the letters of name in order wins; otherwise the
// candidate within an edit distance of 2 is taken.
func closestName(name string, candidates []string) string {
	if ranks := fuzzy.RankFindFold(name, candidates); len(ranks) > 0 {
		sort.Sort(ranks)
		return ranks[0].Target
	}
	best, bestDist := "", 3
	for _, c := range candidates {
		if d := fuzzy.LevenshteinDistance(name, c); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}
