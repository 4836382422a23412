package command_test

import (
	"context"
	"fmt"
	"reflect"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kylelaverty/FastEndpoints/core/command"
)

type Batch[T any] struct {
	Items []T
}

type Fetch[T any] struct {
	Key string
}

func TestRegisterGeneric(t *testing.T) {
	t.Parallel()

	t.Run("rejects non-generic prototype", func(t *testing.T) {
		t.Parallel()

		dispatcher := command.NewDispatcher()
		err := dispatcher.RegisterGeneric(UpdateUser{}, func(reflect.Type) (command.Handler, error) {
			return nil, nil
		})

		assert.ErrorIs(t, err, command.ErrInvalidGenericCommand)
	})

	t.Run("rejects nil prototype", func(t *testing.T) {
		t.Parallel()

		dispatcher := command.NewDispatcher()
		err := dispatcher.RegisterGeneric(nil, func(reflect.Type) (command.Handler, error) {
			return nil, nil
		})

		assert.ErrorIs(t, err, command.ErrInvalidGenericCommand)
	})

	t.Run("rejects nil factory", func(t *testing.T) {
		t.Parallel()

		dispatcher := command.NewDispatcher()
		err := dispatcher.RegisterGeneric(Batch[int]{}, nil)

		assert.ErrorIs(t, err, command.ErrInvalidGenericCommand)
	})
}

func TestGenericDispatch(t *testing.T) {
	t.Parallel()

	t.Run("closes each instantiation independently", func(t *testing.T) {
		t.Parallel()

		var ints, strs atomic.Int64
		dispatcher := command.NewDispatcher()
		err := dispatcher.RegisterGeneric(Batch[int]{}, func(ct reflect.Type) (command.Handler, error) {
			switch ct {
			case reflect.TypeOf(Batch[int]{}):
				return command.NewHandlerFunc(func(ctx context.Context, cmd Batch[int]) error {
					ints.Add(int64(len(cmd.Items)))
					return nil
				}), nil
			case reflect.TypeOf(Batch[string]{}):
				return command.NewHandlerFunc(func(ctx context.Context, cmd Batch[string]) error {
					strs.Add(int64(len(cmd.Items)))
					return nil
				}), nil
			}
			return nil, fmt.Errorf("unsupported batch type %s", ct)
		})
		require.NoError(t, err)

		require.NoError(t, dispatcher.Dispatch(context.Background(), Batch[int]{Items: []int{1, 2, 3}}))
		require.NoError(t, dispatcher.Dispatch(context.Background(), Batch[string]{Items: []string{"a"}}))

		assert.Equal(t, int64(3), ints.Load())
		assert.Equal(t, int64(1), strs.Load())
	})

	t.Run("memoizes the closed definition per instantiation", func(t *testing.T) {
		t.Parallel()

		var factoryCalls atomic.Int64
		dispatcher := command.NewDispatcher()
		err := dispatcher.RegisterGeneric(Batch[int]{}, func(ct reflect.Type) (command.Handler, error) {
			factoryCalls.Add(1)
			return command.NewHandlerFunc(func(ctx context.Context, cmd Batch[int]) error {
				return nil
			}), nil
		})
		require.NoError(t, err)

		for i := 0; i < 5; i++ {
			require.NoError(t, dispatcher.Dispatch(context.Background(), Batch[int]{}))
		}

		assert.Equal(t, int64(1), factoryCalls.Load())
	})

	t.Run("fails when the family was never registered", func(t *testing.T) {
		t.Parallel()

		dispatcher := command.NewDispatcher()

		err := dispatcher.Dispatch(context.Background(), Batch[int]{})
		assert.ErrorIs(t, err, command.ErrNoGenericHandler)
	})

	t.Run("non-generic unregistered command still reports no handler", func(t *testing.T) {
		t.Parallel()

		dispatcher := command.NewDispatcher()

		err := dispatcher.Dispatch(context.Background(), DeleteUser{})
		assert.ErrorIs(t, err, command.ErrNoHandler)
		assert.NotErrorIs(t, err, command.ErrNoGenericHandler)
	})

	t.Run("fails when the factory closes over the wrong command type", func(t *testing.T) {
		t.Parallel()

		dispatcher := command.NewDispatcher()
		err := dispatcher.RegisterGeneric(Batch[int]{}, func(ct reflect.Type) (command.Handler, error) {
			// Always returns the int handler, whatever was asked for.
			return command.NewHandlerFunc(func(ctx context.Context, cmd Batch[int]) error {
				return nil
			}), nil
		})
		require.NoError(t, err)

		err = dispatcher.Dispatch(context.Background(), Batch[string]{})
		assert.ErrorIs(t, err, command.ErrIncompatibleGenericHandler)
	})

	t.Run("fails when the factory result kind does not match the call", func(t *testing.T) {
		t.Parallel()

		dispatcher := command.NewDispatcher()
		err := dispatcher.RegisterGeneric(Fetch[int]{}, func(ct reflect.Type) (command.Handler, error) {
			return command.NewResultHandlerFunc(func(ctx context.Context, cmd Fetch[int]) (int, error) {
				return 42, nil
			}), nil
		})
		require.NoError(t, err)

		// Fire-and-forget dispatch demands the void contract.
		err = dispatcher.Dispatch(context.Background(), Fetch[int]{Key: "answer"})
		assert.ErrorIs(t, err, command.ErrIncompatibleGenericHandler)
	})

	t.Run("fails when the factory itself errors", func(t *testing.T) {
		t.Parallel()

		dispatcher := command.NewDispatcher()
		err := dispatcher.RegisterGeneric(Batch[int]{}, func(ct reflect.Type) (command.Handler, error) {
			return nil, fmt.Errorf("unsupported batch type %s", ct)
		})
		require.NoError(t, err)

		err = dispatcher.Dispatch(context.Background(), Batch[int]{})
		assert.ErrorIs(t, err, command.ErrIncompatibleGenericHandler)
	})

	t.Run("result-bearing instantiations resolve through Execute", func(t *testing.T) {
		t.Parallel()

		dispatcher := command.NewDispatcher()
		err := dispatcher.RegisterGeneric(Fetch[int]{}, func(ct reflect.Type) (command.Handler, error) {
			switch ct {
			case reflect.TypeOf(Fetch[int]{}):
				return command.NewResultHandlerFunc(func(ctx context.Context, cmd Fetch[int]) (int, error) {
					return 42, nil
				}), nil
			case reflect.TypeOf(Fetch[string]{}):
				return command.NewResultHandlerFunc(func(ctx context.Context, cmd Fetch[string]) (string, error) {
					return "value:" + cmd.Key, nil
				}), nil
			}
			return nil, fmt.Errorf("unsupported fetch type %s", ct)
		})
		require.NoError(t, err)

		n, err := command.Execute[int](context.Background(), dispatcher, Fetch[int]{Key: "answer"})
		require.NoError(t, err)
		assert.Equal(t, 42, n)

		s, err := command.Execute[string](context.Background(), dispatcher, Fetch[string]{Key: "name"})
		require.NoError(t, err)
		assert.Equal(t, "value:name", s)
	})
}
