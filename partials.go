package mustache

import (
	"fmt"
	"io/ioutil"
	"os"
	"path"
	"strings"
)

// PartialProvider comprises the behaviors required of a struct to be able to provide partials to the mustache rendering
// engine.
type PartialProvider interface {
	// Get accepts the name of a partial and returns its template source, if it could be found; an empty string, nil
	// if it could not be found; or an empty string and error if an error occurred (other than an inability to find
	// the partial).
	Get(name string) (string, error)
}

// FileProvider implements the PartialProvider interface by providing partials drawn from a filesystem. When a partial
// named `NAME` is requested, FileProvider searches each listed path for a file named as `NAME` followed by any of the
// listed extensions. The default for `Paths` is to search the current working directory. The default for `Extensions`
// is to examine, in order, no extension; then ".mustache"; then ".stache". If Unsafe is set, partial names are allowed
// to begin with '.' or '..' after cleaning, meaning they can potentially refer to files outside any of the listed
// directory paths.
type FileProvider struct {
	Paths      []string
	Extensions []string
	Unsafe     bool
}

// Get accepts the name of a partial and returns its contents.
func (fp *FileProvider) Get(name string) (string, error) {
	var cleanname string
	if fp.Unsafe {
		cleanname = name
	} else {
		cleanname = path.Clean(name)
		if strings.HasPrefix(cleanname, ".") {
			return "", fmt.Errorf("unsafe partial name passed to FileProvider: %s", name)
		}
	}

	paths := fp.Paths
	if paths == nil {
		paths = []string{""}
	}

	exts := fp.Extensions
	if exts == nil {
		exts = []string{"", ".mustache", ".stache"}
	}

	var f *os.File
	var err error
	for _, p := range paths {
		for _, e := range exts {
			pname := path.Join(p, cleanname+e)
			f, err = os.Open(pname)
			if err == nil {
				break
			}
		}
		if f != nil {
			break
		}
	}

	if f == nil {
		return "", nil
	}
	defer f.Close()

	data, err := ioutil.ReadAll(f)
	if err != nil {
		return "", err
	}

	return string(data), nil
}

var _ PartialProvider = (*FileProvider)(nil)

// StaticProvider implements the PartialProvider interface by providing partials drawn from a map, which maps partial
// name to template contents.
type StaticProvider struct {
	Partials map[string]string
}

// Get accepts the name of a partial and returns its contents.
func (sp *StaticProvider) Get(name string) (string, error) {
	if sp.Partials != nil {
		if data, ok := sp.Partials[name]; ok {
			return data, nil
		}
	}
	return "", nil
}

var _ PartialProvider = (*StaticProvider)(nil)

// PartialStore holds every partial reachable, by static name, from a
// compiled Template, already parsed into segment trees. It is built once
// at compile time so that a malformed partial is reported as part of the
// Template's own compile error, not discovered mid-render.
//
// Partials referenced only through a dynamic name ({{>*name}}, {{<*name}})
// cannot be discovered ahead of time; those are resolved lazily on first
// use and, per the render-time contract, fail silently rather than
// surfacing an error.
type PartialStore struct {
	provider PartialProvider
	cache    map[string][]segment
}

func newPartialStore(provider PartialProvider, roots [][]segment) (*PartialStore, error) {
	ps := &PartialStore{provider: provider, cache: map[string][]segment{}}
	for _, segs := range roots {
		if err := ps.preload(segs); err != nil {
			return nil, err
		}
	}
	return ps, nil
}

func (ps *PartialStore) preload(segs []segment) error {
	for _, s := range segs {
		switch t := s.(type) {
		case partialSeg:
			if t.isDynamic {
				continue
			}
			if err := ps.compile(t.name); err != nil {
				return err
			}
		case parentSeg:
			if !t.isDynamic {
				if err := ps.compile(t.name); err != nil {
					return err
				}
			}
			for _, b := range t.blocks {
				if err := ps.preload(b.body); err != nil {
					return err
				}
			}
		case sectionSeg:
			if err := ps.preload(t.body); err != nil {
				return err
			}
		case blockSeg:
			if err := ps.preload(t.body); err != nil {
				return err
			}
		}
	}
	return nil
}

// compile fetches and parses name, memoizing the result (nil means "known
// not to exist"). It guards against self- and mutually-recursive static
// partials by reserving the cache slot before recursing into the body.
func (ps *PartialStore) compile(name string) error {
	if _, ok := ps.cache[name]; ok {
		return nil
	}
	ps.cache[name] = nil

	data, err := ps.provider.Get(name)
	if err != nil {
		return fmt.Errorf("partial %q: %w", name, err)
	}
	if data == "" {
		return nil
	}

	segs, err := parse(data)
	if err != nil {
		return fmt.Errorf("partial %q: %w", name, err)
	}
	if segs == nil {
		segs = []segment{}
	}
	ps.cache[name] = segs
	return ps.preload(segs)
}

// lookup resolves name against the store, compiling it on demand if it
// was only ever reachable dynamically. Any failure (not found, or a
// malformed template) is reported as a miss rather than an error.
func (ps *PartialStore) lookup(name string) ([]segment, bool) {
	if ps == nil {
		return nil, false
	}
	if segs, ok := ps.cache[name]; ok {
		return segs, segs != nil
	}

	data, err := ps.provider.Get(name)
	if err != nil || data == "" {
		ps.cache[name] = nil
		return nil, false
	}
	segs, err := parse(data)
	if err != nil {
		ps.cache[name] = nil
		return nil, false
	}
	if segs == nil {
		segs = []segment{}
	}
	ps.cache[name] = segs
	_ = ps.preload(segs)
	return segs, true
}
