package main

import (
	"fmt"

	"github.com/oxhq/skim"
)

// Options is the parsed form of the CLI's flag contract (spec.md §6).
type Options struct {
	Targets    []string
	Mode       skim.Mode
	ModeName   string
	Language   string
	NoHeader   bool
	Jobs       int
	NoCache    bool
	ClearCache bool
	ShowStats  bool
	History    string
}

func parseMode(name string) (skim.Mode, error) {
	switch name {
	case "structure", "":
		return skim.Structure, nil
	case "signatures":
		return skim.Signatures, nil
	case "types":
		return skim.Types, nil
	case "full":
		return skim.Full, nil
	default:
		return 0, fmt.Errorf("invalid --mode %q: must be one of structure, signatures, types, full", name)
	}
}

func validateJobs(jobs int) error {
	if jobs < 1 || jobs > 128 {
		return fmt.Errorf("invalid --jobs %d: must be between 1 and 128", jobs)
	}
	return nil
}
