package commands

import (
	"flag"
	"fmt"

	"github.com/uhppoted/uhppote-core/uhppote"
)

var VersionCmd = Version{}

// Version is a CLI command implementation that displays the version information.
type Version struct {
}

func (c *Version) FlagSet() *flag.FlagSet {
	return flag.NewFlagSet("version", flag.ExitOnError)
}

func (c *Version) Execute(args ...any) error {
	fmt.Printf("%v  %v\n", APP, uhppote.VERSION)

	return nil
}

func (c *Version) Name() string {
	return "version"
}

func (c *Version) Description() string {
	return "Displays the current version"
}

func (c *Version) Usage() string {
	return ""
}

func (c *Version) Help() {
	fmt.Println()
	fmt.Printf("  Displays the %v version in the format v<major>.<minor>.<build> e.g. v0.8.11\n", APP)
	fmt.Println()
}
