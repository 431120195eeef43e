package cli

import (
	"github.com/spf13/cobra"

	"github.com/rshade/carbonplan/internal/config"
	"github.com/rshade/carbonplan/internal/logging"
)

// setupLogging builds the CLI logger from the logging section and --debug,
// tags the command context with a trace id and installs the logger on it.
// The caller closes the returned result once the command finishes.
func setupLogging(cmd *cobra.Command) logging.LogPathResult {
	debug, _ := cmd.Flags().GetBool("debug")
	result := logging.NewLoggerWithPath(config.GetGlobalConfig().Logging.LoggerConfig(debug))

	switch {
	case result.UsingFile:
		logging.PrintLogPathMessage(cmd.ErrOrStderr(), result.FilePath)
	case result.FallbackUsed:
		logging.PrintFallbackWarning(cmd.ErrOrStderr(), result.FallbackReason)
	}

	ctx := cmd.Context()
	ctx = logging.ContextWithTraceID(ctx, logging.GetOrGenerateTraceID(ctx))
	logger = logging.ComponentLogger(result.Logger, "cli")
	cmd.SetContext(logger.WithContext(ctx))

	logger.Debug().Ctx(cmd.Context()).Str("command", cmd.CommandPath()).Msg("command started")
	return result
}
