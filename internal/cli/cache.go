package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/carbonplan/internal/cache"
	"github.com/rshade/carbonplan/internal/config"
)

var (
	errCacheDisabled = errors.New("roadmap cache is disabled (cache.enabled: false)")
	errClearDeclined = errors.New("cache not cleared; confirm or pass --yes")
)

// newCacheCmd creates the cache command group for the roadmap response cache.
func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and clean the roadmap response cache",
	}
	cmd.AddCommand(newCacheStatsCmd(), newCacheClearCmd(), newCachePruneCmd())
	return cmd
}

func requireCache(cmd *cobra.Command) (*cache.FileStore, error) {
	store := openCache(cmd.Context(), config.GetGlobalConfig())
	if store == nil {
		return nil, errCacheDisabled
	}
	return store, nil
}

func newCacheStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show cache location, size and TTL",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := requireCache(cmd)
			if err != nil {
				return err
			}
			st, err := store.Stats()
			if err != nil {
				return err
			}

			cmd.Printf("Directory: %s\n", store.Dir())
			cmd.Printf("Entries:   %d (%d expired)\n", st.Entries, st.Expired)
			cmd.Printf("Size:      %d bytes\n", st.Bytes)
			cmd.Printf("TTL:       %s\n", cache.FormatDuration(store.TTL()))
			return nil
		},
	}
}

func newCacheClearCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached roadmap",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := requireCache(cmd)
			if err != nil {
				return err
			}
			if !yes {
				st, _ := store.Stats()
				question := fmt.Sprintf("Remove %d cached roadmaps from %s?", st.Entries, store.Dir())
				if !Confirm(cmd.OutOrStdout(), cmd.InOrStdin(), question).Accepted {
					return errClearDeclined
				}
			}
			if err = store.Clear(); err != nil {
				return fmt.Errorf("clearing cache: %w", err)
			}
			logger.Info().Ctx(cmd.Context()).Str("dir", store.Dir()).Msg("roadmap cache cleared")
			cmd.Println("Cache cleared")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

func newCachePruneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prune",
		Short: "Remove expired and unreadable cache entries",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := requireCache(cmd)
			if err != nil {
				return err
			}
			removed, err := store.Prune()
			if err != nil {
				return fmt.Errorf("pruning cache: %w", err)
			}
			cmd.Printf("Removed %d expired entries\n", removed)
			return nil
		},
	}
}
