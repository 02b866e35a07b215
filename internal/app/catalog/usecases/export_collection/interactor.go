package export_collection

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/parquet-go/parquet-go"
	"github.com/rs/zerolog/log"

	contracts "github.com/murkotick/storefront-service/internal/app/catalog/contracts"
	"github.com/murkotick/storefront-service/internal/app/catalog/domain"
	"github.com/murkotick/storefront-service/internal/app/catalog/repo"
)

// Row is one exported catalog item. Kind-specific fields are kept in
// Document as the item's JSON body.
type Row struct {
	ID       string `parquet:"id"`
	Kind     string `parquet:"kind"`
	Title    string `parquet:"title"`
	Price    int64  `parquet:"price"`
	Likes    int64  `parquet:"likes"`
	Views    int64  `parquet:"views"`
	Channel  string `parquet:"channel"`
	IsPaid   bool   `parquet:"is_paid"`
	Document string `parquet:"document"`
}

// Interactor writes one catalog collection as a Parquet file.
type Interactor struct {
	ReadModel contracts.ReadModel
}

func NewInteractor(rm contracts.ReadModel) *Interactor {
	return &Interactor{ReadModel: rm}
}

// Execute returns the number of rows written to w.
func (it *Interactor) Execute(ctx context.Context, collection string, w io.Writer) (int, error) {
	items, rev, err := it.ReadModel.LoadCollection(ctx, collection)
	if err != nil {
		return 0, err
	}

	rows := make([]Row, 0, len(items))
	for _, item := range items {
		row, err := toRow(item)
		if err != nil {
			return 0, err
		}
		rows = append(rows, row)
	}

	pw := parquet.NewGenericWriter[Row](w)
	if _, err := pw.Write(rows); err != nil {
		return 0, fmt.Errorf("write parquet rows: %w", err)
	}
	if err := pw.Close(); err != nil {
		return 0, fmt.Errorf("close parquet writer: %w", err)
	}

	log.Ctx(ctx).Info().
		Str("component", "catalog").
		Str("collection", collection).
		Int64("revision", rev).
		Int("rows", len(rows)).
		Msg("collection exported")
	return len(rows), nil
}

func toRow(item domain.Item) (Row, error) {
	body, err := json.Marshal(repo.ItemFields(item))
	if err != nil {
		return Row{}, fmt.Errorf("encode %s: %w", item.ItemID(), err)
	}
	row := Row{ID: item.ItemID(), Kind: string(item.Kind()), Document: string(body)}
	switch v := item.(type) {
	case domain.Product:
		info := v.Info()
		row.Title = info.Title
		row.Price = info.Price
		row.Likes = info.Likes
	case *domain.Slide:
		row.Title = v.Title
	case *domain.Video:
		row.Title = v.Title
		row.Likes = v.Likes
		row.Views = v.Views
		row.Channel = v.Channel
		row.IsPaid = v.IsPaid
	}
	return row, nil
}
