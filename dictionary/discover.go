package dictionary

import (
	"errors"
	"path/filepath"
	"sort"

	"github.com/spf13/afero"
)

// DefaultIgnore lists filesystem artifacts that live next to word files but
// are not word files.
var DefaultIgnore = []string{".DS_Store"}

// ErrNoArtifactDir is returned when none of the artifact directory candidates
// exist.
var ErrNoArtifactDir = errors.New("can't locate artifacts directory")

// ArtifactDir returns the first existing directory among cwd/artifacts and
// cwd/../../artifacts.
func ArtifactDir(fs afero.Fs, cwd string) (string, error) {
	candidates := []string{
		filepath.Join(cwd, "artifacts"),
		filepath.Join(cwd, "..", "..", "artifacts"),
	}

	for _, dir := range candidates {
		ok, err := afero.DirExists(fs, dir)
		if err != nil {
			return "", err
		}
		if ok {
			return dir, nil
		}
	}

	return "", ErrNoArtifactDir
}

// Files returns the regular files directly inside dir, sorted by name, minus
// any whose base name is in ignore.
func Files(fs afero.Fs, dir string, ignore []string) ([]string, error) {
	infos, err := afero.ReadDir(fs, dir)
	if err != nil {
		return nil, err
	}

	skip := make(map[string]bool, len(ignore))
	for _, name := range ignore {
		skip[name] = true
	}

	var files []string
	for _, info := range infos {
		if info.IsDir() || skip[info.Name()] {
			continue
		}
		files = append(files, filepath.Join(dir, info.Name()))
	}

	sort.Strings(files)
	return files, nil
}
