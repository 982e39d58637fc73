package filter

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goccy/go-json"
	"github.com/mgpai22/subclean/internal/fileio"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

//go:embed filters/*.json
var builtinProfiles embed.FS

const profileExt = ".json"

var (
	ErrProfileNotFound    = errors.New("filter profile not found")
	ErrInvalidProfileName = errors.New("invalid filter profile name")
)

// named, file-backed blacklist
type Profile struct {
	Name string
	// file the profile was read from, empty for built-in profiles
	Path      string
	Blacklist Blacklist
}

func (p *Profile) Builtin() bool {
	return p.Path == ""
}

// resolves filter profiles from a user directory, falling back to the
// profiles shipped with the binary
type Store struct {
	Dir string
}

func NewStore(dir string) *Store {
	return &Store{Dir: dir}
}

// Load resolves name. A name ending in .json is read as a file path;
// otherwise <Dir>/<name>.json wins over the built-in profile of that name.
func (s *Store) Load(name string) (*Profile, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidProfileName
	}

	if strings.HasSuffix(strings.ToLower(name), profileExt) {
		return loadProfileFile(
			strings.TrimSuffix(filepath.Base(name), filepath.Ext(name)),
			name,
		)
	}

	if strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return nil, fmt.Errorf("%w: %q", ErrInvalidProfileName, name)
	}

	if s.Dir != "" {
		path := filepath.Join(s.Dir, name+profileExt)
		ok, err := fileio.Exists(path)
		if err != nil {
			return nil, err
		}
		if ok {
			return loadProfileFile(name, path)
		}
	}

	data, err := builtinProfiles.ReadFile("filters/" + name + profileExt)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrProfileNotFound, name)
		}
		return nil, err
	}

	blacklist, err := ParseBlacklist(data)
	if err != nil {
		return nil, fmt.Errorf("parse built-in filter %q: %w", name, err)
	}
	return &Profile{Name: name, Blacklist: blacklist}, nil
}

func loadProfileFile(name, path string) (*Profile, error) {
	data, err := fileio.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrProfileNotFound, path)
		}
		return nil, err
	}

	blacklist, err := ParseBlacklist(data)
	if err != nil {
		return nil, fmt.Errorf("parse filter %s: %w", path, err)
	}
	return &Profile{Name: name, Path: path, Blacklist: blacklist}, nil
}

// ParseBlacklist decodes a JSON array of strings. Entries are lower-cased
// and blank entries are dropped, since an empty phrase would match any text.
func ParseBlacklist(data []byte) (Blacklist, error) {
	var entries []string
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}

	caser := cases.Lower(language.Und)
	blacklist := make(Blacklist, 0, len(entries))
	for _, entry := range entries {
		if strings.TrimSpace(entry) == "" {
			continue
		}
		blacklist = append(blacklist, caser.String(entry))
	}
	return blacklist, nil
}

// profile listing entry
type ProfileInfo struct {
	Name    string
	Path    string
	Builtin bool
	// a user profile with the same name hides the built-in one
	Shadowed bool
}

// List returns the user and built-in profiles sorted by name, user
// profiles first when names collide.
func (s *Store) List() ([]ProfileInfo, error) {
	var infos []ProfileInfo
	user := make(map[string]bool)

	if s.Dir != "" {
		entries, err := os.ReadDir(s.Dir)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, &fileio.IOError{Op: "list", Path: s.Dir, Err: err}
		}
		for _, e := range entries {
			if e.IsDir() || filepath.Ext(e.Name()) != profileExt {
				continue
			}
			name := strings.TrimSuffix(e.Name(), profileExt)
			user[name] = true
			infos = append(infos, ProfileInfo{
				Name: name,
				Path: filepath.Join(s.Dir, e.Name()),
			})
		}
	}

	builtins, err := fs.Glob(builtinProfiles, "filters/*"+profileExt)
	if err != nil {
		return nil, err
	}
	for _, path := range builtins {
		name := strings.TrimSuffix(filepath.Base(path), profileExt)
		infos = append(infos, ProfileInfo{
			Name:     name,
			Builtin:  true,
			Shadowed: user[name],
		})
	}

	sort.SliceStable(infos, func(i, j int) bool {
		if infos[i].Name != infos[j].Name {
			return infos[i].Name < infos[j].Name
		}
		return !infos[i].Builtin && infos[j].Builtin
	})
	return infos, nil
}
