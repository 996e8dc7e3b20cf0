package arbiter

import (
	"context"
	"log"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/louisbranch/signalyard/internal/command"
	"github.com/louisbranch/signalyard/internal/commandlog"
	apperrors "github.com/louisbranch/signalyard/internal/errors"
	"github.com/louisbranch/signalyard/internal/platform/requestctx"
	"github.com/louisbranch/signalyard/internal/sim"
	"github.com/louisbranch/signalyard/internal/wire"
)

// tracerName identifies dispatch spans.
const tracerName = "signalyard/arbiter"

// Service dispatches submitted command frames against one world. All world
// access is serialized on a mutex: command application must be
// deterministic, so there is exactly one writer.
type Service struct {
	mu      sync.Mutex
	world   *sim.World
	table   *command.Registry[*sim.World]
	journal *commandlog.Store
	policy  *Policy
	locale  string
}

// ServiceOption customises a Service.
type ServiceOption func(*Service)

// WithJournal records every executed command in the given store.
func WithJournal(store *commandlog.Store) ServiceOption {
	return func(s *Service) { s.journal = store }
}

// WithPolicy consults a Lua policy before dispatching network commands.
func WithPolicy(p *Policy) ServiceOption {
	return func(s *Service) { s.policy = p }
}

// WithLocale sets the locale used for transport error messages.
func WithLocale(locale string) ServiceOption {
	return func(s *Service) { s.locale = locale }
}

// NewService builds a dispatch service over a world and its command table.
func NewService(world *sim.World, table *command.Registry[*sim.World], opts ...ServiceOption) *Service {
	s := &Service{
		world:  world,
		table:  table,
		locale: apperrors.DefaultLocale,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit implements DispatchServer.
func (s *Service) Submit(ctx context.Context, in *RawMessage) (*RawMessage, error) {
	return s.dispatch(ctx, in, true)
}

// Estimate implements DispatchServer.
func (s *Service) Estimate(ctx context.Context, in *RawMessage) (*RawMessage, error) {
	return s.dispatch(ctx, in, false)
}

func (s *Service) dispatch(ctx context.Context, in *RawMessage, execute bool) (*RawMessage, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "arbiter.dispatch")
	defer span.End()

	frame, err := s.table.DecodeFrameBytes(*in, wire.ReplaceWithQuestionMark)
	if err != nil {
		return nil, apperrors.GRPCStatus(apperrors.CodeMalformedCommand, s.locale)
	}
	span.SetAttributes(
		attribute.String("command.id", frame.ID.String()),
		attribute.Bool("command.execute", execute),
	)

	client, authed := requestctx.ClientFromContext(ctx)
	flags := s.table.Flags(frame.ID)
	if flags&command.FlagServer != 0 {
		// Server-only commands never arrive over the network.
		return nil, apperrors.GRPCStatus(apperrors.CodePolicyRejected, s.locale)
	}
	if authed && client.Spectator && flags&command.FlagSpectator == 0 {
		return nil, apperrors.GRPCStatus(apperrors.CodePolicyRejected, s.locale)
	}
	s.table.PatchClientID(frame.ID, frame.Payload, client.ID)

	if execute && s.policy != nil {
		allowed, code := s.policy.Allow(frame.ID, frame.Tile, client.ID, command.Summary(frame.Payload))
		if !allowed {
			out := RawMessage(EncodeResult(command.NewError(code)))
			return &out, nil
		}
	}

	s.mu.Lock()
	if authed && !client.Spectator {
		s.world.Current = client.Company
	}
	var cost command.CommandCost
	if execute {
		cost = s.table.Do(s.world, frame.ID, frame.Tile, frame.Payload)
	} else {
		cost = s.table.Test(s.world, frame.ID, frame.Tile, frame.Payload)
	}
	company := s.world.Current
	s.mu.Unlock()

	if execute && cost.Succeeded() && s.journal != nil {
		if _, err := s.journal.Append(ctx, commandlog.Entry{
			ID:         frame.ID,
			Tile:       frame.Tile,
			Client:     client.ID,
			Company:    company,
			Frame:      append([]byte(nil), *in...),
			Cost:       cost.Cost(),
			ResultData: cost.ResultData(),
		}); err != nil {
			// The command already applied; losing the journal entry is an
			// operational problem, not the client's.
			log.Printf("arbiter: journal %s: %v", frame.ID, err)
		}
	}

	out := RawMessage(EncodeResult(cost))
	return &out, nil
}

var _ DispatchServer = (*Service)(nil)
