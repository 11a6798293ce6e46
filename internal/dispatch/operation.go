package dispatch

import (
	"errors"
	"fmt"
	"strings"
)

// Operation is a user-facing action.
type Operation int

const (
	OpExit Operation = iota
	OpConfigure
	OpBuild
	OpInstall
	OpClean
	OpShowSettings
	OpEditSettings
	OpGenerateCache
	OpGetSetting
)

var opNames = map[Operation]string{
	OpExit:          "exit",
	OpConfigure:     "configure",
	OpBuild:         "build",
	OpInstall:       "install",
	OpClean:         "clean",
	OpShowSettings:  "show-settings",
	OpEditSettings:  "edit-settings",
	OpGenerateCache: "generate-cache",
	OpGetSetting:    "get-setting",
}

func (o Operation) String() string {
	if name, ok := opNames[o]; ok {
		return name
	}
	return fmt.Sprintf("Operation(%d)", int(o))
}

// projectOp reports whether o shells out to cmake or git.
func (o Operation) projectOp() bool {
	switch o {
	case OpConfigure, OpBuild, OpInstall, OpClean:
		return true
	}
	return false
}

// ErrUnknownChoice is returned for menu input that matches no entry.
var ErrUnknownChoice = errors.New("unknown choice")

// MainMenu lists the interactive entries in the order ParseChoice accepts them.
const MainMenu = `0. Exit
1. Prepare CMAKE project
2. Build CMAKE project
3. Install CMAKE project
4. Clean CMAKE project
5. Print cached variables
6. Edit cache
`

// ParseChoice maps a main menu answer to its operation.
func ParseChoice(input string) (Operation, error) {
	switch strings.TrimSpace(input) {
	case "0":
		return OpExit, nil
	case "1":
		return OpConfigure, nil
	case "2":
		return OpBuild, nil
	case "3":
		return OpInstall, nil
	case "4":
		return OpClean, nil
	case "5":
		return OpShowSettings, nil
	case "6":
		return OpEditSettings, nil
	}
	return OpExit, fmt.Errorf("%w %q", ErrUnknownChoice, input)
}

// EditAction is an entry of the edit-settings sub-menu.
type EditAction int

const (
	EditBack EditAction = iota
	EditEntry
	EditRecreate
)

// EditMenu lists the edit-settings entries.
const EditMenu = `0. Exit
1. Edit cache entry
2. Delete and recreate cache file
`

// ParseEditChoice maps an edit sub-menu answer to its action.
func ParseEditChoice(input string) (EditAction, error) {
	switch strings.TrimSpace(input) {
	case "0":
		return EditBack, nil
	case "1":
		return EditEntry, nil
	case "2":
		return EditRecreate, nil
	}
	return EditBack, fmt.Errorf("%w %q", ErrUnknownChoice, input)
}
