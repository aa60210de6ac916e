// Package version reports the version of bencode2json and the modules
// it was built with.
package version

import (
	"fmt"
	"runtime/debug"
	"strings"
)

// Version is bencode2json's version string. Release builds set it via
// ldflags; otherwise it falls back to the Go module version.
var Version string

// UsageVersion introspects the process debug data for Go modules to
// return a version string.
func UsageVersion() string {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return "bencode2json version unknown (built without module support)\n"
	}

	v := Version
	if v == "" {
		v = bi.Main.Version
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s version %s\n", bi.Path, v)
	for _, dep := range bi.Deps {
		fmt.Fprintf(&b, "\t%s %s\n", dep.Path, dep.Version)
	}
	return b.String()
}
