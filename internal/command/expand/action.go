package expand

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251215-go-pkg-envexp/internal/command"
	"github.com/lwmacct/251215-go-pkg-envexp/pkg/envexp"
	"github.com/lwmacct/251215-go-pkg-envexp/pkg/kvfile"
)

func action(ctx context.Context, cmd *cli.Command) error {
	cfg, err := command.LoadConfig(ctx, cmd)
	if err != nil {
		return err
	}

	format, err := kvfile.ParseFormat(cfg.Expand.Format)
	if err != nil {
		return err
	}

	set, err := kvfile.Load(cmd.Args().Slice()...)
	if err != nil {
		return err
	}
	assigned, err := kvfile.ParseAssignments(cmd.StringSlice("set"))
	if err != nil {
		return err
	}
	kvfile.Merge(set, assigned)

	out, err := envexp.Expand(set, envexp.ProcessEnv{}, cfg.Expand.Options()...)
	if err != nil {
		return fmt.Errorf("expand: %w", err)
	}
	slog.Debug("Expanded entries", "count", out.Len(), "ignoreEnv", cfg.Expand.IgnoreEnv)

	return kvfile.Write(cmd.Root().Writer, out, format)
}
