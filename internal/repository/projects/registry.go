// Package projects stores the list of known project names as a JSON object
// whose keys are the names and whose values are reserved metadata objects.
package projects

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"sort"

	"timetracking/internal/domain"
	"timetracking/internal/errors"
	"timetracking/internal/logging"
	"timetracking/internal/repository/fileutil"
)

// emptyRegistry is written when the projects file does not exist yet.
var emptyRegistry = []byte("{}\n")

// Registry provides cached access to the projects file.
type Registry struct {
	path    string
	dirPerm os.FileMode

	loaded   bool
	projects map[string]domain.Metadata
}

// New creates a Registry backed by the file at path.
func New(path string) *Registry {
	return &Registry{path: path, dirPerm: 0755}
}

// NewWithDirPermissions creates a Registry that creates missing parent directories with perm.
func NewWithDirPermissions(path string, perm os.FileMode) *Registry {
	return &Registry{path: path, dirPerm: perm}
}

// Path returns the location of the projects file.
func (r *Registry) Path() string {
	return r.path
}

// Names returns all registered project names in sorted order.
func (r *Registry) Names(ctx context.Context) ([]string, error) {
	projects, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(projects))
	for name := range projects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Exists reports whether name is registered. Matching is exact and case-sensitive.
func (r *Registry) Exists(ctx context.Context, name string) (bool, error) {
	projects, err := r.load(ctx)
	if err != nil {
		return false, err
	}
	_, ok := projects[name]
	return ok, nil
}

// Add registers name with empty metadata and writes the file.
func (r *Registry) Add(ctx context.Context, name string) error {
	projects, err := r.load(ctx)
	if err != nil {
		return err
	}
	if _, ok := projects[name]; ok {
		return errors.NewDuplicateProjectError(name)
	}

	updated := make(map[string]domain.Metadata, len(projects)+1)
	for k, v := range projects {
		updated[k] = v
	}
	updated[name] = domain.Metadata{}

	return r.write(updated)
}

// Invalidate drops the cached contents so the next read goes to disk.
func (r *Registry) Invalidate() {
	r.loaded = false
	r.projects = nil
}

func (r *Registry) load(ctx context.Context) (map[string]domain.Metadata, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.loaded {
		return r.projects, nil
	}

	presence, err := fileutil.Ensure(r.path, emptyRegistry, r.dirPerm)
	if err != nil {
		return nil, errors.NewRegistryError("cannot create projects file "+r.path, err)
	}
	if presence == fileutil.PresenceCreated {
		logging.Debugf("Creating projects file %s\n", r.path)
	}

	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, errors.NewRegistryError("cannot read projects file "+r.path, err)
	}

	projects := make(map[string]domain.Metadata)
	if len(bytes.TrimSpace(data)) > 0 {
		if err := json.Unmarshal(data, &projects); err != nil {
			return nil, errors.NewRegistryError("projects file "+r.path+" is not valid JSON", err)
		}
	}
	for name, metadata := range projects {
		if metadata == nil {
			projects[name] = domain.Metadata{}
		}
	}

	r.projects = projects
	r.loaded = true
	return projects, nil
}

func (r *Registry) write(projects map[string]domain.Metadata) error {
	// encoding/json sorts map keys
	data, err := json.MarshalIndent(projects, "", "  ")
	if err != nil {
		return errors.NewRegistryError("cannot encode projects", err)
	}
	data = append(data, '\n')

	r.Invalidate()
	if err := os.WriteFile(r.path, data, 0644); err != nil {
		return errors.NewRegistryError("cannot write projects file "+r.path, err)
	}

	logging.Debugf("Wrote %d projects to %s\n", len(projects), r.path)
	return nil
}
