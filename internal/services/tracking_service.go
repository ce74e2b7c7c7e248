package services

import (
	"context"
	"time"

	"timetracking/internal/domain"
	"timetracking/internal/errors"
	"timetracking/internal/logging"
)

// trackingServiceImpl implements the TrackingService interface
type trackingServiceImpl struct {
	log EventLog
	now func() time.Time
}

// NewTrackingService creates a new TrackingService that stamps events with the current time
func NewTrackingService(log EventLog) TrackingService {
	return NewTrackingServiceWithClock(log, time.Now)
}

// NewTrackingServiceWithClock creates a new TrackingService reading the time from now
func NewTrackingServiceWithClock(log EventLog, now func() time.Time) TrackingService {
	return &trackingServiceImpl{log: log, now: now}
}

// Start appends a START event unless the project is already active
func (s *trackingServiceImpl) Start(ctx context.Context, project string) (Outcome, error) {
	return s.record(ctx, domain.CommandStart, project)
}

// Stop appends a STOP event unless the project is not active
func (s *trackingServiceImpl) Stop(ctx context.Context, project string) (Outcome, error) {
	return s.record(ctx, domain.CommandStop, project)
}

// StopAll stops every active project and returns their names
func (s *trackingServiceImpl) StopAll(ctx context.Context) ([]string, error) {
	active, err := s.log.ActiveProjects(ctx)
	if err != nil {
		return nil, err
	}

	stopped := make([]string, 0, active.Len())
	for _, project := range active.Names() {
		outcome, err := s.Stop(ctx, project)
		if err != nil {
			return stopped, err
		}
		if outcome == OutcomeRecorded {
			stopped = append(stopped, project)
		}
	}
	return stopped, nil
}

// CurrentlyTrackedProjects returns the active projects in activation order
func (s *trackingServiceImpl) CurrentlyTrackedProjects(ctx context.Context) ([]string, error) {
	active, err := s.log.ActiveProjects(ctx)
	if err != nil {
		return nil, err
	}
	return active.Names(), nil
}

func (s *trackingServiceImpl) record(ctx context.Context, command domain.Command, project string) (Outcome, error) {
	if project == "" {
		return OutcomeRecorded, errors.NewValidationError("project name cannot be empty", nil)
	}

	active, err := s.log.ActiveProjects(ctx)
	if err != nil {
		return OutcomeRecorded, err
	}

	_, changed := active.State(project).Transition(command)
	if !changed {
		if command == domain.CommandStart {
			return OutcomeAlreadyActive, nil
		}
		return OutcomeNotActive, nil
	}

	event := domain.NewEvent(command, project, s.now())
	if err := s.log.Append(ctx, event); err != nil {
		return OutcomeRecorded, err
	}

	logging.Debugf("Recorded %s for %s\n", command, project)
	return OutcomeRecorded, nil
}
