package config

import "fmt"

// The following vars are set at build time through -ldflags "-X ...".
var (
	ModuleName = "sapphire-relay"
	Commit     = "< 40 chars git commit hash via ldflags >"
	BuildDate  = "< ISO-8601 date via ldflags >"
)

// GetFormattedBuildArgs returns string representation of buildsargs set via ldflags "<ModuleName> @ <Commit> (<BuildDate>)"
func GetFormattedBuildArgs() string {
	return fmt.Sprintf("%v @ %v (%v)", ModuleName, Commit, BuildDate)
}
