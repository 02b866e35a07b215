package delete_record

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	contracts "github.com/murkotick/storefront-service/internal/app/commerce/contracts"
	"github.com/murkotick/storefront-service/internal/app/commerce/domain"
	"github.com/murkotick/storefront-service/internal/pkg/docstore"
)

// Interactor removes an order or a contact request.
type Interactor struct {
	Repo      contracts.RecordRepo
	Records   contracts.RecordsReader
	Committer contracts.Committer
}

func NewInteractor(repo contracts.RecordRepo, records contracts.RecordsReader, committer contracts.Committer) *Interactor {
	return &Interactor{Repo: repo, Records: records, Committer: committer}
}

func (it *Interactor) Execute(ctx context.Context, rec domain.Record, id string) error {
	op, err := it.Repo.DeleteMut(rec, id)
	if err != nil {
		return err
	}
	ok, err := it.Records.Exists(ctx, rec, id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s", rec.NotFound(), id)
	}

	plan := docstore.NewPlan()
	plan.Add(op)
	if err := it.Committer.Apply(ctx, plan); err != nil {
		return fmt.Errorf("delete %s %s: %w", rec, id, err)
	}

	log.Ctx(ctx).Info().Str("component", "commerce").Str("record", string(rec)).Str("id", id).Msg("record deleted")
	return nil
}
