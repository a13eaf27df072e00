package stacklog

import (
	"fmt"
	"path/filepath"
	"reflect"
	"runtime"
	"strconv"
	"strings"
)

// DefaultTraceDepth is the number of frames PrintStackTraceDefault renders.
const DefaultTraceDepth = 6

// facadePackage is the import path every facade frame belongs to. Frames
// are matched against it by the package of their function, so calls
// forwarded between facade entry points never name the facade as caller.
var facadePackage = funcPackage(runtime.FuncForPC(reflect.ValueOf(anchor).Pointer()).Name())

func anchor() {}

// funcPackage returns the import path part of a fully qualified
// function name such as "example.com/pkg.(*T).method".
func funcPackage(name string) string {
	slash := strings.LastIndexByte(name, '/')
	dot := strings.IndexByte(name[slash+1:], '.')
	if dot < 0 {
		return name
	}
	return name[:slash+1+dot]
}

func isFacadeFrame(f runtime.Frame) bool {
	return funcPackage(f.Function) == facadePackage
}

// callerFrames returns the calling goroutine's frames outside this
// package, at most max of them. max <= 0 means the whole stack.
func callerFrames(max int) []runtime.Frame {
	pcs := make([]uintptr, 32)
	for {
		// Skip runtime.Callers and callerFrames.
		n := runtime.Callers(2, pcs)
		if n < len(pcs) {
			pcs = pcs[:n]
			break
		}
		pcs = make([]uintptr, len(pcs)*2)
	}

	var out []runtime.Frame
	frames := runtime.CallersFrames(pcs)
	for {
		frame, more := frames.Next()
		if !isFacadeFrame(frame) {
			out = append(out, frame)
			if max > 0 && len(out) >= max {
				break
			}
		}
		if !more {
			break
		}
	}
	return out
}

// splitFunction breaks a qualified function name into the simple type
// name and the method name. Plain functions report their package name as
// the type.
func splitFunction(function string) (typeName, method string) {
	pkg := funcPackage(function)
	rest := strings.ReplaceAll(strings.TrimPrefix(function, pkg+"."), "[...]", "")
	pkgName := pkg[strings.LastIndexByte(pkg, '/')+1:]

	if strings.HasPrefix(rest, "(") {
		recv, m, ok := strings.Cut(rest[1:], ").")
		if !ok {
			return pkgName, rest
		}
		return strings.TrimPrefix(recv, "*"), m
	}

	// Closures in package-level initializers are named "glob..funcN",
	// package init functions "init.N".
	first, second, ok := strings.Cut(rest, ".")
	if !ok || isClosureName(second) || strings.HasPrefix(second, ".") || isInitName(first, second) {
		return pkgName, rest
	}
	return first, second
}

func isInitName(first, second string) bool {
	if first != "init" {
		return false
	}
	n, _, _ := strings.Cut(second, ".")
	_, err := strconv.Atoi(n)
	return err == nil
}

func isClosureName(s string) bool {
	for _, prefix := range []string{"func", "gowrap", "deferwrap"} {
		if n, ok := strings.CutPrefix(s, prefix); ok {
			n, _, _ = strings.Cut(n, ".")
			if _, err := strconv.Atoi(n); err == nil {
				return true
			}
		}
	}
	return false
}

func formatCallSite(f runtime.Frame) string {
	typeName, method := splitFunction(f.Function)
	return fmt.Sprintf("%s.%s(%s:%d)", typeName, method, filepath.Base(f.File), f.Line)
}

func formatFrame(f runtime.Frame) string {
	return fmt.Sprintf("%s(%s:%d)", f.Function, filepath.Base(f.File), f.Line)
}

// CallerTag returns the simple type name of the first frame outside the
// facade, or "" when the stack holds no such frame.
func CallerTag() string {
	frames := callerFrames(1)
	if len(frames) == 0 {
		return ""
	}
	typeName, _ := splitFunction(frames[0].Function)
	return typeName
}

// CallerInfo formats the first frame outside the facade as
// Type.method(file.go:line).
func CallerInfo() string {
	frames := callerFrames(1)
	if len(frames) == 0 {
		return ""
	}
	return formatCallSite(frames[0])
}

// stackBlock renders up to depth caller frames, one per line, and returns
// the tag of the first rendered frame with it. depth <= 0 renders the
// whole stack.
func stackBlock(depth int) (label, block string) {
	frames := callerFrames(depth)
	if len(frames) == 0 {
		return "", ""
	}
	label, _ = splitFunction(frames[0].Function)

	var sb strings.Builder
	for _, f := range frames {
		sb.WriteByte('\n')
		sb.WriteString(formatFrame(f))
	}
	return label, sb.String()
}
