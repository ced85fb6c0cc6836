package report

import (
	"context"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// memFS is an in-memory FileSystem that counts mutating calls
type memFS struct {
	files     map[string][]byte
	dirs      map[string]bool
	failOn    map[string]error
	mutations int
}

func newMemFS() *memFS {
	return &memFS{
		files:  make(map[string][]byte),
		dirs:   map[string]bool{".": true},
		failOn: make(map[string]error),
	}
}

func (m *memFS) addFile(name string, data string) {
	m.files[name] = []byte(data)
	for d := filepath.Dir(name); d != "." && !m.dirs[d]; d = filepath.Dir(d) {
		m.dirs[d] = true
	}
}

func (m *memFS) addDir(name string) {
	for d := name; d != "." && !m.dirs[d]; d = filepath.Dir(d) {
		m.dirs[d] = true
	}
}

type memInfo struct {
	name string
	size int64
	dir  bool
}

func (i memInfo) Name() string       { return i.name }
func (i memInfo) Size() int64        { return i.size }
func (i memInfo) ModTime() time.Time { return time.Time{} }
func (i memInfo) IsDir() bool        { return i.dir }
func (i memInfo) Sys() any           { return nil }
func (i memInfo) Mode() fs.FileMode {
	if i.dir {
		return fs.ModeDir | 0755
	}
	return 0644
}

func notExist(op, name string) error {
	return &fs.PathError{Op: op, Path: name, Err: fs.ErrNotExist}
}

func (m *memFS) ReadDir(name string) ([]fs.DirEntry, error) {
	if !m.dirs[name] {
		return nil, notExist("readdir", name)
	}
	var entries []fs.DirEntry
	for p, data := range m.files {
		if filepath.Dir(p) == name {
			entries = append(entries, fs.FileInfoToDirEntry(memInfo{name: filepath.Base(p), size: int64(len(data))}))
		}
	}
	for d := range m.dirs {
		if d != name && filepath.Dir(d) == name {
			entries = append(entries, fs.FileInfoToDirEntry(memInfo{name: filepath.Base(d), dir: true}))
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
	return entries, nil
}

func (m *memFS) ReadFile(name string) ([]byte, error) {
	data, ok := m.files[name]
	if !ok {
		return nil, notExist("open", name)
	}
	return data, nil
}

func (m *memFS) WriteFile(name string, data []byte, _ fs.FileMode) error {
	m.mutations++
	if err := m.failOn[name]; err != nil {
		return err
	}
	m.files[name] = data
	return nil
}

func (m *memFS) Stat(name string) (fs.FileInfo, error) {
	if data, ok := m.files[name]; ok {
		return memInfo{name: filepath.Base(name), size: int64(len(data))}, nil
	}
	if m.dirs[name] {
		return memInfo{name: filepath.Base(name), dir: true}, nil
	}
	return nil, notExist("stat", name)
}

func (m *memFS) MkdirAll(path string, _ fs.FileMode) error {
	m.mutations++
	if err := m.failOn[path]; err != nil {
		return err
	}
	m.addDir(path)
	return nil
}

func (m *memFS) Remove(name string) error {
	m.mutations++
	if err := m.failOn[name]; err != nil {
		return err
	}
	if _, ok := m.files[name]; !ok {
		return notExist("remove", name)
	}
	delete(m.files, name)
	return nil
}

func (m *memFS) RemoveAll(path string) error {
	m.mutations++
	if err := m.failOn[path]; err != nil {
		return err
	}
	prefix := path + string(filepath.Separator)
	for p := range m.files {
		if p == path || strings.HasPrefix(p, prefix) {
			delete(m.files, p)
		}
	}
	for d := range m.dirs {
		if d == path || strings.HasPrefix(d, prefix) {
			delete(m.dirs, d)
		}
	}
	return nil
}

// fakeTools records tool invocations
type fakeTools struct {
	available map[string]bool
	runErr    error
	runs      [][]string
}

func newFakeTools(available ...string) *fakeTools {
	t := &fakeTools{available: make(map[string]bool)}
	for _, a := range available {
		t.available[a] = true
	}
	return t
}

func (t *fakeTools) LookPath(name string) (string, error) {
	if !t.available[name] {
		return "", notExist("lookpath", name)
	}
	return "/usr/bin/" + name, nil
}

func (t *fakeTools) Run(_ context.Context, name string, args ...string) error {
	t.runs = append(t.runs, append([]string{name}, args...))
	return t.runErr
}
