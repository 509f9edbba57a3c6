package services

import (
	"context"
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"
	"time"

	"github.com/SAP-F-2025/llm-dissector/internal/catalog"
	"github.com/SAP-F-2025/llm-dissector/internal/events"
	"github.com/SAP-F-2025/llm-dissector/internal/models"
	"github.com/SAP-F-2025/llm-dissector/internal/randx"
	"github.com/SAP-F-2025/llm-dissector/internal/repositories"
	"github.com/SAP-F-2025/llm-dissector/internal/validator"
	"github.com/google/uuid"
)

// SessionService drives one learner's progression through the stages.
// Every mutating call loads the stored state, applies one transition, saves
// it and returns the rendered view.
type SessionService interface {
	Create(ctx context.Context) (*models.SessionView, error)
	Get(ctx context.Context, id string) (*models.SessionView, error)
	End(ctx context.Context, id string) error

	UpdateQuestion(ctx context.Context, id string, req *UpdateQuestionRequest) (*models.SessionView, error)
	ApplyPreset(ctx context.Context, id string, req *ApplyPresetRequest) (*models.SessionView, error)
	Send(ctx context.Context, id string) (*models.SessionView, error)
	SelectChoice(ctx context.Context, id string, req *SelectChoiceRequest) (*models.SessionView, error)
	Check(ctx context.Context, id string) (*models.SessionView, error)
	Next(ctx context.Context, id string) (*models.SessionView, error)
	Back(ctx context.Context, id string) (*models.SessionView, error)

	// EndAll discards every stored session.
	EndAll(ctx context.Context) error
	// PruneGuards drops per-session locks whose session is no longer stored
	// and returns how many it removed.
	PruneGuards(ctx context.Context) int
}

// sessionGuard serialises actions on one session. sending is set for the
// whole duration of a send so overlapping actions can be refused.
type sessionGuard struct {
	mu      sync.Mutex
	sending atomic.Bool
}

type sessionService struct {
	repo       repositories.SessionRepository
	catalog    CatalogService
	controller *Controller
	publisher  events.EventPublisher
	validator  *validator.Validator
	rnd        randx.Source
	logger     *ServiceLogger

	guards sync.Map // session id -> *sessionGuard
	newID  func() string
}

func NewSessionService(
	repo repositories.SessionRepository,
	catalogService CatalogService,
	controller *Controller,
	publisher events.EventPublisher,
	validator *validator.Validator,
	rnd randx.Source,
	logger *ServiceLogger,
) SessionService {
	return &sessionService{
		repo:       repo,
		catalog:    catalogService,
		controller: controller,
		publisher:  publisher,
		validator:  validator,
		rnd:        randx.OrDefault(rnd),
		logger:     logger,
		newID:      uuid.NewString,
	}
}

func (s *sessionService) guard(id string) *sessionGuard {
	g, _ := s.guards.LoadOrStore(id, &sessionGuard{})
	return g.(*sessionGuard)
}

func (s *sessionService) load(ctx context.Context, id string) (*models.SessionState, error) {
	state, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			s.guards.Delete(id)
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}
	return state, nil
}

// save persists state unless the guard was dropped by EndAll while the
// action was running.
func (s *sessionService) save(ctx context.Context, g *sessionGuard, state *models.SessionState) error {
	if cur, ok := s.guards.Load(state.ID); !ok || cur != g {
		return ErrSessionNotFound
	}
	if err := s.repo.Update(ctx, state); err != nil {
		return fmt.Errorf("%w: %v", ErrInternalError, err)
	}
	return nil
}

func (s *sessionService) publish(ctx context.Context, evts ...*events.ProgressionEvent) {
	if s.publisher == nil {
		return
	}
	for _, evt := range evts {
		if evt == nil {
			continue
		}
		if err := s.publisher.PublishProgressionEvent(ctx, evt); err != nil {
			s.logger.LogEventFailure(ctx, string(evt.Type), evt.SessionID, err)
		}
	}
}

// transition runs fn under the session guard and persists its result. It is
// refused while a send is in flight.
func (s *sessionService) transition(
	ctx context.Context,
	operation, id string,
	fn func(state models.SessionState) (models.SessionState, []*events.ProgressionEvent, error),
) (view *models.SessionView, err error) {
	start := time.Now()
	stage := -1
	defer func() {
		s.logger.LogOperation(ctx, operation, id, stage, time.Since(start), err)
	}()

	g := s.guard(id)
	if g.sending.Load() {
		return nil, ErrSendInFlight
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	current, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	next, evts, err := fn(*current)
	if err != nil {
		stage = current.CurrentStageIndex
		return nil, err
	}
	stage = next.CurrentStageIndex

	if reflect.DeepEqual(next, *current) {
		v := BuildView(next)
		return &v, nil
	}

	if err := s.save(ctx, g, &next); err != nil {
		return nil, err
	}

	s.publish(ctx, evts...)

	v := BuildView(next)
	return &v, nil
}

func (s *sessionService) Create(ctx context.Context) (view *models.SessionView, err error) {
	start := time.Now()
	state := NewSessionState(s.newID(), catalog.DefaultPreset().Question)
	defer func() {
		s.logger.LogOperation(ctx, "create_session", state.ID, state.CurrentStageIndex, time.Since(start), err)
	}()

	if err := s.repo.Create(ctx, &state); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	s.publish(ctx, events.NewSessionStartedEvent(state))

	v := BuildView(state)
	return &v, nil
}

func (s *sessionService) Get(ctx context.Context, id string) (*models.SessionView, error) {
	state, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	v := BuildView(*state)
	return &v, nil
}

func (s *sessionService) End(ctx context.Context, id string) (err error) {
	start := time.Now()
	defer func() {
		s.logger.LogOperation(ctx, "end_session", id, -1, time.Since(start), err)
	}()

	g := s.guard(id)
	if g.sending.Load() {
		return ErrSendInFlight
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, err := s.load(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("%w: %v", ErrInternalError, err)
	}
	s.guards.Delete(id)

	s.publish(ctx, events.NewSessionEndedEvent(id))
	return nil
}

func (s *sessionService) UpdateQuestion(ctx context.Context, id string, req *UpdateQuestionRequest) (*models.SessionView, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}
	return s.transition(ctx, "update_question", id, func(state models.SessionState) (models.SessionState, []*events.ProgressionEvent, error) {
		return Reduce(state, EditQuestion(req.Question), s.rnd), nil, nil
	})
}

func (s *sessionService) ApplyPreset(ctx context.Context, id string, req *ApplyPresetRequest) (*models.SessionView, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}
	preset, err := s.catalog.GetPreset(ctx, req.PresetID)
	if err != nil {
		return nil, err
	}
	return s.transition(ctx, "apply_preset", id, func(state models.SessionState) (models.SessionState, []*events.ProgressionEvent, error) {
		return Reduce(state, EditQuestion(preset.Question), s.rnd), nil, nil
	})
}

func (s *sessionService) SelectChoice(ctx context.Context, id string, req *SelectChoiceRequest) (*models.SessionView, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}
	return s.transition(ctx, "select_choice", id, func(state models.SessionState) (models.SessionState, []*events.ProgressionEvent, error) {
		if !state.HasResponse() {
			return state, nil, ErrQuizNotAvailable
		}
		if _, ok := catalog.OptionByDescription(state.QuizOrder, req.Choice); !ok {
			return state, nil, ErrInvalidChoice
		}
		return Reduce(state, SelectChoice(req.Choice), s.rnd), nil, nil
	})
}

func (s *sessionService) Check(ctx context.Context, id string) (*models.SessionView, error) {
	return s.transition(ctx, "check_answer", id, func(state models.SessionState) (models.SessionState, []*events.ProgressionEvent, error) {
		if !state.HasResponse() {
			return state, nil, ErrQuizNotAvailable
		}
		next := Reduce(state, CheckAnswer(), s.rnd)
		return next, []*events.ProgressionEvent{events.NewQuizCheckedEvent(next)}, nil
	})
}

func (s *sessionService) Next(ctx context.Context, id string) (*models.SessionView, error) {
	return s.transition(ctx, "next_stage", id, func(state models.SessionState) (models.SessionState, []*events.ProgressionEvent, error) {
		next := Reduce(state, NextStage(), s.rnd)
		return next, []*events.ProgressionEvent{
			events.NewStageChangedEvent(state.ID, state.CurrentStageIndex, next.CurrentStageIndex),
		}, nil
	})
}

func (s *sessionService) Back(ctx context.Context, id string) (*models.SessionView, error) {
	return s.transition(ctx, "back", id, func(state models.SessionState) (models.SessionState, []*events.ProgressionEvent, error) {
		next := Reduce(state, Back(), s.rnd)
		return next, []*events.ProgressionEvent{
			events.NewStageChangedEvent(state.ID, state.CurrentStageIndex, next.CurrentStageIndex),
		}, nil
	})
}

// Send generates a response for the current stage. A second send for the
// same session while one is running fails with ErrSendInFlight.
func (s *sessionService) Send(ctx context.Context, id string) (view *models.SessionView, err error) {
	start := time.Now()
	stage := -1
	defer func() {
		s.logger.LogOperation(ctx, "send", id, stage, time.Since(start), err)
	}()

	g := s.guard(id)
	if !g.sending.CompareAndSwap(false, true) {
		return nil, ErrSendInFlight
	}
	defer g.sending.Store(false)

	g.mu.Lock()
	defer g.mu.Unlock()

	current, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	stage = current.CurrentStageIndex

	next, outcome, err := s.controller.Send(ctx, *current)
	if err != nil {
		return nil, err
	}
	s.logger.LogGeneration(ctx, id, stage, outcome, time.Since(start))

	if err := s.save(ctx, g, &next); err != nil {
		return nil, err
	}

	s.publish(ctx, events.NewResponseGeneratedEvent(next, outcome.ResultKind(), outcome.Synthetic))

	v := BuildView(next)
	return &v, nil
}

// EndAll clears the store and forgets every guard. A send still running
// when this is called finishes without saving.
func (s *sessionService) EndAll(ctx context.Context) (err error) {
	start := time.Now()
	defer func() {
		s.logger.LogOperation(ctx, "end_all_sessions", "", -1, time.Since(start), err)
	}()

	if err := s.repo.DeleteAll(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrInternalError, err)
	}
	s.guards.Range(func(key, _ any) bool {
		s.guards.Delete(key)
		return true
	})
	return nil
}

func (s *sessionService) PruneGuards(ctx context.Context) int {
	removed := 0
	s.guards.Range(func(key, value any) bool {
		id := key.(string)
		g := value.(*sessionGuard)
		if g.sending.Load() || !g.mu.TryLock() {
			return true
		}
		defer g.mu.Unlock()

		if _, err := s.repo.GetByID(ctx, id); repositories.IsNotFoundError(err) {
			s.guards.CompareAndDelete(id, g)
			removed++
		}
		return ctx.Err() == nil
	})
	return removed
}
