// Package buildinfo describes the running binary. Values are injected at link
// time into github.com/prometheus/common/version, e.g.
//
//	-ldflags "-X github.com/prometheus/common/version.Version=v0.1.0"
package buildinfo

import (
	"github.com/prometheus/common/version"
)

const Name = "quadtree"

const Graffiti = "" +
	"  __ _ _  _ __ _ __| | |_ _ _ ___ ___ \n" +
	" / _` | || / _` / _` |  _| '_/ -_) -_)\n" +
	" \\__, |\\_,_\\__,_\\__,_|\\__|_| \\___\\___|\n" +
	"    |_|                               \n\n"

type buildinfo struct{}

func (buildinfo) Name() string {
	return Name
}

func (buildinfo) Tag() string {
	return version.Version
}

func (buildinfo) Revision() string {
	return version.Revision
}

func (buildinfo) Time() string {
	return version.BuildDate
}

// String is a one line summary: name, version and build context.
func (b buildinfo) String() string {
	return version.Info() + " " + version.BuildContext()
}

var Info buildinfo
