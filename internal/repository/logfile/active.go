package logfile

import (
	"timetracking/internal/domain"
)

// ActiveSet is the set of projects with a START not yet matched by a STOP.
// Names are kept in the order the projects were (last) activated.
type ActiveSet struct {
	order   []string
	members map[string]struct{}
}

// NewActiveSet creates an empty active set.
func NewActiveSet() *ActiveSet {
	return &ActiveSet{
		members: make(map[string]struct{}),
	}
}

// State returns the tracking state of project.
func (s *ActiveSet) State(project string) domain.ProjectState {
	if s.Contains(project) {
		return domain.StateActive
	}
	return domain.StateInactive
}

// Apply runs command through the project's state machine. It returns false
// for a redundant START or STOP, which leaves the set unchanged.
func (s *ActiveSet) Apply(command domain.Command, project string) bool {
	next, changed := s.State(project).Transition(command)
	if !changed {
		return false
	}

	if next == domain.StateActive {
		s.members[project] = struct{}{}
		s.order = append(s.order, project)
		return true
	}

	delete(s.members, project)
	for i, name := range s.order {
		if name == project {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

// Contains reports whether project is active.
func (s *ActiveSet) Contains(project string) bool {
	_, ok := s.members[project]
	return ok
}

// Len returns the number of active projects.
func (s *ActiveSet) Len() int {
	return len(s.order)
}

// Names returns a copy of the active project names.
func (s *ActiveSet) Names() []string {
	names := make([]string, len(s.order))
	copy(names, s.order)
	return names
}

// ScanActiveProjects replays raw log lines in order and returns the projects
// left active. Any line whose command token is not START or STOP aborts the
// scan: no partial result is returned.
func ScanActiveProjects(lines []string) (*ActiveSet, error) {
	active := NewActiveSet()
	for i, line := range lines {
		if isBlank(line) {
			continue
		}
		command, project, _, err := splitCommand(i+1, line)
		if err != nil {
			return nil, err
		}
		active.Apply(command, project)
	}
	return active, nil
}
