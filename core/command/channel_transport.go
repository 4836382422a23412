package command

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/kylelaverty/FastEndpoints/core/logger"
)

// channelTransport executes commands asynchronously using a buffered
// channel and worker goroutines.
//
// Characteristics:
// - Non-blocking dispatch
// - Buffered channel (configurable size)
// - Local execution (same process)
// - No persistence (commands lost on shutdown)
// - Error handling via callback
//
// Use cases:
// - Fire-and-forget operations
// - Decoupling (don't block HTTP response)
// - Local background tasks
type channelTransport struct {
	d               *Dispatcher
	ch              chan envelope
	workers         int
	shutdownTimeout time.Duration
	ctx             context.Context
	cancel          context.CancelFunc
	wg              sync.WaitGroup
	shutdownOnce    sync.Once
	stopped         chan struct{}
}

// envelope carries a serialized command through the channel.
type envelope struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"created_at"`
}

// newChannelTransport creates a channel-based async transport.
// Workers are started immediately and begin processing commands.
func newChannelTransport(d *Dispatcher, cfg ChannelConfig) *channelTransport {
	cfg = cfg.withDefaults()
	ctx, cancel := context.WithCancel(context.Background())

	t := &channelTransport{
		d:               d,
		ch:              make(chan envelope, cfg.BufferSize),
		workers:         cfg.Workers,
		shutdownTimeout: cfg.ShutdownTimeout,
		ctx:             ctx,
		cancel:          cancel,
		stopped:         make(chan struct{}),
	}

	for i := 0; i < t.workers; i++ {
		t.wg.Add(1)
		go t.worker()
	}

	return t
}

// Dispatch serializes the command and enqueues it for async execution.
// Resolution is validated before enqueuing so that configuration errors
// (no handler, unregistered generic family) still surface synchronously to
// the caller. Returns ErrBufferFull if the buffer is full.
func (t *channelTransport) Dispatch(ctx context.Context, cmd any) error {
	select {
	case <-t.stopped:
		return ErrTransportClosed
	default:
	}

	if cmd == nil {
		return fmt.Errorf("%w: <nil>", ErrNoHandler)
	}
	if _, err := t.d.resolveDefinition(reflect.TypeOf(cmd), voidType); err != nil {
		return err
	}

	name := CommandNameOf(cmd)
	data, err := json.Marshal(cmd)
	if err != nil {
		return fmt.Errorf("failed to marshal command %s: %w", name, err)
	}

	env := envelope{
		ID:        uuid.New().String(),
		Name:      name,
		Payload:   data,
		CreatedAt: time.Now(),
	}

	select {
	case t.ch <- env:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return ErrBufferFull
	}
}

// worker processes commands from the channel.
func (t *channelTransport) worker() {
	defer t.wg.Done()

	for {
		select {
		case <-t.ctx.Done():
			// Drain what is already buffered before exiting.
			for {
				select {
				case env, ok := <-t.ch:
					if !ok {
						return
					}
					t.handleCommand(env)
				default:
					return
				}
			}
		case env, ok := <-t.ch:
			if !ok {
				return
			}
			t.handleCommand(env)
		}
	}
}

// handleCommand deserializes and executes a single command with panic
// recovery. Async execution cannot return errors to the dispatching caller,
// so failures go to the error handler callback and the log.
func (t *channelTransport) handleCommand(env envelope) {
	ctx := WithCommandMeta(context.Background(), Command{
		ID:        env.ID,
		Name:      env.Name,
		CreatedAt: env.CreatedAt,
	})

	defer func() {
		if r := recover(); r != nil {
			t.d.logger.Error("command handler panicked",
				logger.Component("command"),
				logger.CommandName(env.Name),
				logger.CommandID(env.ID),
				slog.Any("panic", r))

			if t.d.errorHandler != nil {
				t.d.errorHandler(ctx, env.Name, fmt.Errorf("handler panicked: %v", r))
			}
		}
	}()

	cmd, err := t.unmarshalCommand(env)
	if err != nil {
		t.d.logger.Error("failed to unmarshal command",
			logger.Component("command"),
			logger.CommandName(env.Name),
			logger.CommandID(env.ID),
			logger.Error(err))

		if t.d.errorHandler != nil {
			t.d.errorHandler(ctx, env.Name, err)
		}
		return
	}

	if _, err := t.d.execute(ctx, cmd, voidType); err != nil {
		if t.d.errorHandler != nil {
			t.d.errorHandler(ctx, env.Name, err)
		}
	}
}

// unmarshalCommand rebuilds the typed command value from the envelope using
// the registry's name index.
func (t *channelTransport) unmarshalCommand(env envelope) (any, error) {
	cmdType, ok := t.d.reg.typeByName(env.Name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoHandler, env.Name)
	}

	for cmdType.Kind() == reflect.Pointer {
		cmdType = cmdType.Elem()
	}

	ptr := reflect.New(cmdType)
	if err := json.Unmarshal(env.Payload, ptr.Interface()); err != nil {
		return nil, fmt.Errorf("failed to unmarshal command %s: %w", env.Name, err)
	}
	return ptr.Elem().Interface(), nil
}

// Stop gracefully shuts down the transport.
// Rejects new dispatches, drains buffered commands, and waits for workers
// up to the configured shutdown timeout.
func (t *channelTransport) Stop() {
	t.shutdownOnce.Do(func() {
		close(t.stopped)
		t.cancel()
		close(t.ch)

		done := make(chan struct{})
		go func() {
			t.wg.Wait()
			close(done)
		}()

		select {
		case <-done:
			t.d.logger.Info("channel transport stopped gracefully",
				logger.Component("command"))
		case <-time.After(t.shutdownTimeout):
			t.d.logger.Warn("channel transport shutdown timeout",
				logger.Component("command"))
		}
	})
}
