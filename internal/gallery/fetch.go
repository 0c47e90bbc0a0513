package gallery

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nerdwave-nick/multiverse/internal/pokemon"
	"golang.org/x/sync/errgroup"
)

// FetchDetails fetches the details of every entry in metas concurrently and
// returns them in the same order once all requests are done. An entry whose
// fetch fails is replaced by its placeholder, so the returned slice is always
// complete. The error reports the first failed entry, if any.
func FetchDetails(ctx context.Context, src Source, metas []pokemon.Meta) ([]pokemon.Details, error) {
	details := make([]pokemon.Details, len(metas))
	var eg errgroup.Group
	for i, meta := range metas {
		eg.Go(func() error {
			d, err := src.Details(ctx, meta)
			if err != nil {
				slog.Debug("detail fetch failed, using placeholder", slog.String("pokemon", meta.Name), slog.Any("error", err))
				PlaceholdersTotal.Inc()
				details[i] = pokemon.Placeholder(meta.Name)
				return fmt.Errorf("fetching details of %s: %w", meta.Name, err)
			}
			details[i] = d
			return nil
		})
	}
	return details, eg.Wait()
}
