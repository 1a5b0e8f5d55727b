package actions

import (
	"os"
	"time"

	"github.com/korora-tech/dhd/atoms"
)

// HttpDownload fetches URL to Destination, creating its parent directory
// first.
type HttpDownload struct {
	URL         string
	Destination string
	Checksum    string
	Mode        os.FileMode
	Timeout     time.Duration
}

func (a HttpDownload) Describe() string { return "download " + a.URL }

func (a HttpDownload) Plan(moduleID, moduleDir string) ([]atoms.Atom, error) {
	dest, err := expandPath(a.Destination, moduleDir)
	if err != nil {
		return nil, err
	}
	dir := parentDirAtom(moduleID, dest)
	download := atoms.NewHttpDownload(moduleID, a.URL, dest, a.Checksum, a.Mode, a.Timeout)
	return []atoms.Atom{dir, &dependsOn{Atom: download, deps: []string{dir.ID()}}}, nil
}
