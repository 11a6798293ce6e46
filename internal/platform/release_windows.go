//go:build windows

package platform

import (
	"strconv"

	"golang.org/x/sys/windows"
)

// Windows 11 still reports major version 10; build 22000 is the first Windows 11 build.
const firstWindows11Build = 22000

func release() string {
	v := windows.RtlGetVersion()
	if v.MajorVersion == 10 && v.BuildNumber >= firstWindows11Build {
		return "11"
	}
	return strconv.FormatUint(uint64(v.MajorVersion), 10)
}
