// Package render produces the printable quotation document.
package render

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/quotedesk/quotedesk/internal/invoices"
	"github.com/quotedesk/quotedesk/internal/totals"
)

//go:embed templates/*.html
var templateFS embed.FS

// Company is the letterhead printed on every document.
type Company struct {
	Name         string
	AddressLines []string
	Phone        string
	Email        string
	Tagline      string
	PaymentTerms string
}

// Converter turns HTML into PDF.
type Converter interface {
	RenderHTML(ctx context.Context, html string) ([]byte, error)
}

// Observer records render timings.
type Observer interface {
	ObserveRender(format string, elapsed time.Duration)
}

// Renderer implements the invoice document renderer.
type Renderer struct {
	company   Company
	money     *Money
	converter Converter
	observer  Observer
	tpl       *template.Template
}

// New parses the embedded template. observer may be nil.
func New(company Company, money *Money, converter Converter, observer Observer) (*Renderer, error) {
	r := &Renderer{company: company, money: money, converter: converter, observer: observer}
	funcs := template.FuncMap{
		"money": func(n totals.Number) string { return r.money.Amount(n.Decimal) },
		"plain": func(n totals.Number) string { return r.money.Plain(n.Decimal) },
		"qty": func(n totals.Number) string {
			return n.Decimal.String()
		},
		"percent": func(n totals.Number) string { return n.Decimal.StringFixed(2) + "%" },
		"date": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Format("02/01/2006")
		},
		"upper": strings.ToUpper,
	}
	tpl, err := template.New("quotation.html").Funcs(funcs).ParseFS(templateFS, "templates/quotation.html")
	if err != nil {
		return nil, fmt.Errorf("parse quotation template: %w", err)
	}
	r.tpl = tpl
	return r, nil
}

type documentView struct {
	Company   Company
	Invoice   *invoices.Invoice
	TaxShown  totals.Number
	TaxAmount totals.Number
	Shipping  bool
}

func (r *Renderer) view(inv *invoices.Invoice) documentView {
	v := documentView{Company: r.company, Invoice: inv, TaxShown: inv.TaxPercent, TaxAmount: inv.TaxAmount}
	if inv.RemoveTax {
		v.TaxShown = totals.NewNumber(decimal.Zero)
		v.TaxAmount = totals.NewNumber(decimal.Zero)
	}
	c := inv.Customer
	v.Shipping = c.NameShip != "" || c.Address1Ship != "" || c.TownShip != "" || c.PostcodeShip != ""
	return v
}

// HTML renders the quotation as a standalone HTML page.
func (r *Renderer) HTML(inv *invoices.Invoice) ([]byte, error) {
	start := time.Now()
	var buf bytes.Buffer
	if err := r.tpl.Execute(&buf, r.view(inv)); err != nil {
		return nil, fmt.Errorf("execute quotation template: %w", err)
	}
	r.observe("html", start)
	return buf.Bytes(), nil
}

// PDF renders the quotation and converts it to PDF.
func (r *Renderer) PDF(ctx context.Context, inv *invoices.Invoice) ([]byte, error) {
	if r.converter == nil {
		return nil, fmt.Errorf("render: no pdf converter configured")
	}
	start := time.Now()
	html, err := r.HTML(inv)
	if err != nil {
		return nil, err
	}
	pdf, err := r.converter.RenderHTML(ctx, string(html))
	if err != nil {
		return nil, fmt.Errorf("convert quotation %s: %w", inv.InvoiceNumber, err)
	}
	r.observe("pdf", start)
	return pdf, nil
}

func (r *Renderer) observe(format string, start time.Time) {
	if r.observer != nil {
		r.observer.ObserveRender(format, time.Since(start))
	}
}
