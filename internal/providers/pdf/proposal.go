package pdf

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

type PDFProvider struct{}

func New() Provider {
	return &PDFProvider{}
}

func (p *PDFProvider) GenerateProposal(ctx context.Context, data ProposalData) (io.Reader, error) {
	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Página {current} de {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	m.AddRow(14,
		text.NewCol(12, "Cotización", props.Text{
			Size:  20,
			Style: fontstyle.Bold,
			Align: align.Left,
		}),
	)

	m.AddRow(24,
		col.New(6).Add(
			text.New(data.StudioName, props.Text{Style: fontstyle.Bold}),
			text.New("Cotización: "+data.QuoteNumber, props.Text{Top: 5}),
			text.New("Fecha: "+data.IssueDate, props.Text{Top: 9}),
			text.New("Estado: "+data.Status, props.Text{Top: 13}),
		),
		col.New(6).Add(
			text.New("Cliente", props.Text{Style: fontstyle.Bold}),
			text.New(data.ClientName, props.Text{Top: 5}),
			text.New(data.ClientEmail, props.Text{Top: 9}),
		),
	)

	m.AddRow(10,
		text.NewCol(4, "Servicio", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(3, "Detalle", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(1, "Cant.", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(1, "Días", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "MXN", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(1, "USD", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)

	for _, item := range data.Items {
		m.AddRow(12,
			text.NewCol(4, item.Service, props.Text{Size: 9}),
			text.NewCol(3, item.Detail, props.Text{Size: 8}),
			text.NewCol(1, fmt.Sprintf("%d", item.Qty), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(1, fmt.Sprintf("%d", item.DeliveryDays), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, item.PriceMXN, props.Text{Size: 9, Align: align.Right}),
			text.NewCol(1, item.PriceUSD, props.Text{Size: 9, Align: align.Right}),
		)
	}

	m.AddRow(10,
		col.New(7),
		text.NewCol(3, "Subtotal", props.Text{Size: 9}),
		text.NewCol(2, data.SubtotalMXN, props.Text{Size: 9, Align: align.Right}),
	)
	for _, adj := range data.Discounts {
		m.AddRow(8,
			col.New(7),
			text.NewCol(3, adj.Label, props.Text{Size: 9}),
			text.NewCol(2, adj.Value, props.Text{Size: 9, Align: align.Right}),
		)
	}
	m.AddRow(10,
		col.New(7),
		text.NewCol(3, "Total MXN", props.Text{Style: fontstyle.Bold, Size: 10}),
		text.NewCol(2, data.TotalMXN, props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right}),
	)
	m.AddRow(10,
		col.New(7),
		text.NewCol(3, "Total USD", props.Text{Size: 9}),
		text.NewCol(2, data.TotalUSD, props.Text{Size: 9, Align: align.Right}),
	)

	if data.Notes != "" {
		m.AddRow(20,
			text.NewCol(12, data.Notes, props.Text{Size: 8, Top: 5}),
		)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}

	return bytes.NewReader(doc.GetBytes()), nil
}
