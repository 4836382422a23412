package command_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/kylelaverty/FastEndpoints/core/command"
)

func TestContextMetadata(t *testing.T) {
	t.Parallel()

	t.Run("command id round-trips", func(t *testing.T) {
		t.Parallel()

		ctx := command.WithCommandID(context.Background(), "cmd-123")
		assert.Equal(t, "cmd-123", command.CommandID(ctx))
	})

	t.Run("command name round-trips", func(t *testing.T) {
		t.Parallel()

		ctx := command.WithCommandName(context.Background(), "CreateUser")
		assert.Equal(t, "CreateUser", command.CommandName(ctx))
	})

	t.Run("command time round-trips", func(t *testing.T) {
		t.Parallel()

		now := time.Now()
		ctx := command.WithCommandTime(context.Background(), now)
		assert.Equal(t, now, command.CommandTime(ctx))
	})

	t.Run("absent values return zero values", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		assert.Empty(t, command.CommandID(ctx))
		assert.Empty(t, command.CommandName(ctx))
		assert.True(t, command.CommandTime(ctx).IsZero())
	})

	t.Run("meta attaches all fields at once", func(t *testing.T) {
		t.Parallel()

		cmd := command.NewCommand(CreateUser{UserID: "1"})
		ctx := command.WithCommandMeta(context.Background(), cmd)

		assert.Equal(t, cmd.ID, command.CommandID(ctx))
		assert.Equal(t, "CreateUser", command.CommandName(ctx))
		assert.Equal(t, cmd.CreatedAt, command.CommandTime(ctx))
	})
}
