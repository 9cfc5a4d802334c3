// Package store provides simple FrameworkID persistence implementations
// that satisfy controller.FrameworkIDStore by duck typing (Load/Save),
// for embedders who opt into the persistence seam the core itself treats
// as a Non-goal.
package store

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"sync"

	"github.com/pkg/errors"

	mesos "github.com/mesos/mesos-go/api/v1/lib"
)

// InMemory is a process-lifetime-only FrameworkIDStore: useful for tests
// and for frameworks that accept re-registering under a fresh id whenever
// the process restarts.
type InMemory struct {
	mu sync.Mutex
	id *mesos.FrameworkID
}

func (s *InMemory) Load() (*mesos.FrameworkID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id, nil
}

func (s *InMemory) Save(id *mesos.FrameworkID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.id = id
	return nil
}

// File persists a FrameworkID as a small JSON document on disk, surviving
// process restarts.
type File struct {
	Path string
}

func (f *File) Load() (*mesos.FrameworkID, error) {
	b, err := ioutil.ReadFile(f.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "store: failed to read %s", f.Path)
	}
	var id mesos.FrameworkID
	if err := json.Unmarshal(b, &id); err != nil {
		return nil, errors.Wrapf(err, "store: failed to parse %s", f.Path)
	}
	return &id, nil
}

func (f *File) Save(id *mesos.FrameworkID) error {
	b, err := json.Marshal(id)
	if err != nil {
		return errors.Wrap(err, "store: failed to marshal framework id")
	}
	if err := ioutil.WriteFile(f.Path, b, 0o600); err != nil {
		return errors.Wrapf(err, "store: failed to write %s", f.Path)
	}
	return nil
}
