package merge

import (
	"context"
	"log/slog"
	"slices"

	"github.com/coolbeans/servicecatalog/pkg/domain"
	"github.com/coolbeans/servicecatalog/pkg/registry"
	"github.com/coolbeans/servicecatalog/pkg/repository"
)

// codeEnsurer copies authority codes missing from the local code list out of
// the code registry.
type codeEnsurer struct {
	codes    *repository.CodeRepository
	registry registry.CodeFetcher
	logger   *slog.Logger
}

// ensure makes sure every competent and executing authority of content is in
// the local code list. Only unseen codes are fetched.
func (ensurer codeEnsurer) ensure(ctx context.Context, content domain.Content) error {
	authorities := domain.SortedSet(slices.Concat(content.CompetentAuthorities, content.ExecutingAuthorities))

	inserted := 0
	for _, authority := range authorities {
		exists, err := ensurer.codes.Exists(ctx, authority)
		if err != nil {
			return err
		}
		if exists {
			continue
		}

		code, err := ensurer.registry.FetchCode(ctx, authority)
		if err != nil {
			return err
		}
		if err := ensurer.codes.Save(ctx, code); err != nil {
			return err
		}
		inserted++
		ensurer.logger.Info("inserted authority code", "code", authority, "label", code.PrefLabel)
	}
	recordSideEffects(ctx, "codes", inserted)
	return nil
}
