package renderer

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/etnz/capital"
	md "github.com/nao1215/markdown"
)

// MovementsMarkdown renders the movement history, newest first.
func MovementsMarkdown(s capital.Snapshot) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1("Movements")

	list := s.MovementsByRecency()
	if len(list) == 0 {
		doc.PlainText("No movement.")
		return doc.String()
	}
	var lines []string
	for _, m := range list {
		lines = append(lines, Movement(s, m))
	}
	doc.BulletList(lines...)
	return doc.String()
}

// Movement renders a movement on a single line.
//
// The balances shown are the ones captured when the movement was recorded.
func Movement(s capital.Snapshot, m capital.Movement) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s", m.Date, title(s, m))
	if m.CurrencyTo != m.CurrencyFrom {
		fmt.Fprintf(&b, " (received %s at %s)", capital.M(m.AmountTo, m.CurrencyTo), rate(m.ExchangeRate))
	}
	if m.Concept != "" {
		fmt.Fprintf(&b, ": %s", m.Concept)
	}
	if m.Category != "" {
		fmt.Fprintf(&b, " [%s]", m.Category)
	}
	for _, t := range m.Tags {
		fmt.Fprintf(&b, " #%s", t)
	}
	if a := m.Audit; a != nil && isAccount(m.From) {
		c := accountCurrency(s, m.From.AccountID, a.Currency)
		fmt.Fprintf(&b, ", source %s → %s", capital.M(a.FromBefore, c), capital.M(a.FromAfter, c))
	}
	if a := m.Audit; a != nil && isAccount(m.To) {
		c := accountCurrency(s, m.To.AccountID, a.Currency)
		fmt.Fprintf(&b, ", destination %s → %s", capital.M(a.ToBefore, c), capital.M(a.ToAfter, c))
	}
	if m.IsVoided() {
		return "~~" + b.String() + "~~ " + md.Bold(string(capital.Voided))
	}
	return b.String()
}

// title prefers the title captured at creation: account names may have changed since.
func title(s capital.Snapshot, m capital.Movement) string {
	if m.Audit != nil && m.Audit.Title != "" {
		return m.Audit.Title
	}
	return s.MovementTitle(m)
}

func isAccount(e *capital.Endpoint) bool { return e != nil && e.Kind == capital.AccountEndpoint }

// accountCurrency returns the currency of the account, or def when it is unknown.
func accountCurrency(s capital.Snapshot, id string, def capital.Currency) capital.Currency {
	if a, ok := s.Account(id); ok {
		return a.Currency
	}
	return def
}
