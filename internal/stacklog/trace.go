package stacklog

import (
	"fmt"
	"net"
	"strings"

	"github.com/pkg/errors"
)

// maxChainDepth bounds cause-chain walks against cyclic Unwrap chains.
const maxChainDepth = 64

type stackTracer interface {
	StackTrace() errors.StackTrace
}

type causer interface {
	Cause() error
}

// causes returns the direct causes of err, following Unwrap() error,
// Unwrap() []error and pkg/errors Cause() in that order of preference.
func causes(err error) []error {
	switch e := err.(type) {
	case interface{ Unwrap() error }:
		if next := e.Unwrap(); next != nil {
			return []error{next}
		}
	case interface{ Unwrap() []error }:
		return e.Unwrap()
	case causer:
		if next := e.Cause(); next != nil {
			return []error{next}
		}
	}
	return nil
}

// walkChain visits err and every error below it depth first. It stops
// early when visit returns false.
func walkChain(err error, visit func(e error, depth int) bool) {
	var walk func(e error, depth int) bool
	walk = func(e error, depth int) bool {
		if e == nil || depth > maxChainDepth {
			return true
		}
		if !visit(e, depth) {
			return false
		}
		for _, c := range causes(e) {
			if !walk(c, depth+1) {
				return false
			}
		}
		return true
	}
	walk(err, 0)
}

// IsHostUnreachable reports whether err or any of its causes is a DNS
// lookup that found no such host.
func IsHostUnreachable(err error) bool {
	found := false
	walkChain(err, func(e error, _ int) bool {
		if dnsErr, ok := e.(*net.DNSError); ok && dnsErr.IsNotFound {
			found = true
			return false
		}
		return true
	})
	return found
}

// StackTraceString renders err and its cause chain as a multi-line trace.
// Errors created with github.com/pkg/errors contribute their frames.
// Host-unreachable errors render as "" to keep offline logs quiet.
func StackTraceString(err error) string {
	if err == nil || IsHostUnreachable(err) {
		return ""
	}

	var sb strings.Builder
	walkChain(err, func(e error, depth int) bool {
		st, hasStack := e.(stackTracer)
		leaf := len(causes(e)) == 0
		if depth > 0 && !hasStack && !leaf {
			// Message-only wrappers repeat what the head already says.
			return true
		}
		if depth > 0 {
			sb.WriteString("\nCaused by: ")
		}
		fmt.Fprintf(&sb, "%T: %s", e, e.Error())
		if hasStack {
			for _, f := range st.StackTrace() {
				fmt.Fprintf(&sb, "\n\tat %n(%s:%d)", f, f, f)
			}
		}
		return true
	})
	return sb.String()
}
