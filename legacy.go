package capital

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/capital/date"
)

// The legacy format is the document exported by the former web application.
// It has the same overall shape as the interchange format, with different
// property names and Spanish enumerated values:
//
//	{"accounts":[{"id":"a1","name":"BAC","type":"Banco","currency":"C$","initialBalance":1000}],
//	 "orders":[{"id":"o1","date":"2025-01-02","type":"COMPRA","currency":"C$","usdt":100,
//	            "pricePerUSDT":37,"commissionUSDT":0,"accountId":"a1","status":"ACTIVA"}],
//	 "settings":{"usdToCBuy":36.5,"usdToCSell":37,"usdtToCMode":"AUTO","usdtToCManual":37}, ...}

var (
	legacyCurrencies = map[string]Currency{"C$": Local, "USD": Foreign, "USDT": Stablecoin}
	legacyVenues     = map[string]Venue{"Banco": Bank, "Efectivo": Cash, "Binance": Exchange}
	legacySides      = map[string]Side{"COMPRA": Buy, "VENTA": Sell}
	legacyOrderState = map[string]OrderStatus{"ACTIVA": Active, "CANCELADA": Canceled}
	legacyMoveTypes  = map[string]MovementType{"INGRESO": Deposit, "RETIRO": Withdrawal, "TRANSFERENCIA": Transfer}
	legacyMoveState  = map[string]MovementStatus{"CONFIRMADO": Confirmed, "ANULADO": Voided}
	legacyEndpoints  = map[string]EndpointKind{"CUENTA": AccountEndpoint, "EXTERNO": ExternalEndpoint}
	legacyRateModes  = map[string]RateMode{"AUTO": Auto, "MANUAL": Manual}
)

// ImportLegacy reads a document exported by the former web application and
// converts it into a Snapshot.
//
// Errors are reported as a *FormatError listing every property that could
// not be converted.
func ImportLegacy(r io.Reader) (Snapshot, error) {
	var doc any
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return Snapshot{}, &FormatError{Err: err}
	}
	if _, ok := doc.(map[string]any); !ok {
		return Snapshot{}, &FormatError{Err: errors.New("legacy document is not a JSON object")}
	}

	var l legacyReader
	s := Empty()

	for _, v := range l.list("$.accounts", doc) {
		s.Accounts = append(s.Accounts, Account{
			ID:             l.str("$.id", v),
			Name:           l.str("$.name", v),
			Venue:          legacyEnum(&l, "$.type", v, legacyVenues),
			Currency:       legacyEnum(&l, "$.currency", v, legacyCurrencies),
			InitialBalance: l.num("$.initialBalance", v),
		})
	}

	for _, v := range l.list("$.orders", doc) {
		s.Orders = append(s.Orders, Order{
			ID:         l.str("$.id", v),
			Date:       l.date("$.date", v),
			Side:       legacyEnum(&l, "$.type", v, legacySides),
			Currency:   legacyEnum(&l, "$.currency", v, legacyCurrencies),
			Quantity:   l.num("$.usdt", v),
			UnitPrice:  l.num("$.pricePerUSDT", v),
			Commission: l.num("$.commissionUSDT", v),
			AccountID:  l.str("$.accountId", v),
			Status:     legacyEnum(&l, "$.status", v, legacyOrderState),
		})
	}

	for _, v := range l.list("$.expenses", doc) {
		s.Expenses = append(s.Expenses, Expense{
			ID:        l.str("$.id", v),
			Date:      l.date("$.date", v),
			Concept:   l.str("$.concept", v),
			Amount:    l.num("$.amount", v),
			Currency:  legacyEnum(&l, "$.currency", v, legacyCurrencies),
			AccountID: l.str("$.accountId", v),
		})
	}

	for _, v := range l.list("$.reports", doc) {
		r := DailyReport{
			ID:             l.str("$.id", v),
			Date:           l.date("$.date", v),
			OpeningLocal:   l.num("$.capitalInicioC", v),
			ClosingLocal:   l.num("$.capitalFinC", v),
			OpeningForeign: l.num("$.capitalInicioUSD", v),
			ClosingForeign: l.num("$.capitalFinUSD", v),
		}
		if detail, ok := l.get("$.accountsDetail", v); ok {
			if m, ok := detail.(map[string]any); ok {
				r.Accounts = make(map[string]float64, len(m))
				for id, x := range m {
					n, ok := x.(float64)
					if !ok {
						l.fail("$.accountsDetail."+id, "a number", x)
					}
					r.Accounts[id] = n
				}
			}
		}
		s.Reports = append(s.Reports, r)
	}

	if _, ok := l.get("$.settings", doc); ok {
		s.Settings = Settings{
			BuyRate:              l.numOr("$.settings.usdToCBuy", doc, s.Settings.BuyRate),
			SellRate:             l.numOr("$.settings.usdToCSell", doc, s.Settings.SellRate),
			StablecoinMode:       legacyEnum(&l, "$.settings.usdtToCMode", doc, legacyRateModes),
			ManualStablecoinRate: l.numOr("$.settings.usdtToCManual", doc, s.Settings.ManualStablecoinRate),
		}
	}

	for _, v := range l.list("$.movements", doc) {
		m := Movement{
			ID:           l.str("$.id", v),
			Date:         l.date("$.date", v),
			CreatedAt:    l.time("$.createdAt", v),
			Type:         legacyEnum(&l, "$.type", v, legacyMoveTypes),
			From:         l.endpoint("$.from", v),
			To:           l.endpoint("$.to", v),
			CurrencyFrom: legacyEnum(&l, "$.currencyFrom", v, legacyCurrencies),
			AmountFrom:   l.num("$.amountFrom", v),
			CurrencyTo:   legacyEnum(&l, "$.currencyTo", v, legacyCurrencies),
			AmountTo:     l.num("$.amountTo", v),
			ExchangeRate: l.num("$.exchangeRateManual", v),
			Concept:      l.str("$.concept", v),
			Category:     l.str("$.category", v),
			Note:         l.str("$.note", v),
			Status:       legacyEnum(&l, "$.status", v, legacyMoveState),
		}
		for _, tag := range l.list("$.tags", v) {
			if t, ok := tag.(string); ok {
				m.Tags = append(m.Tags, t)
			}
		}
		if _, ok := l.get("$.meta", v); ok {
			m.Audit = &AuditSnapshot{
				Title:      l.str("$.meta.title", v),
				Currency:   legacyEnum(&l, "$.meta.currency", v, legacyCurrencies),
				Amount:     l.num("$.meta.amount", v),
				FromBefore: l.num("$.meta.fromBefore", v),
				FromAfter:  l.num("$.meta.fromAfter", v),
				ToBefore:   l.num("$.meta.toBefore", v),
				ToAfter:    l.num("$.meta.toAfter", v),
			}
		}
		s.Movements = append(s.Movements, m)
	}

	if len(l.errs) > 0 {
		return Snapshot{}, &FormatError{Err: errors.Join(l.errs...)}
	}
	s, err := s.Normalized()
	if err != nil {
		return Snapshot{}, &FormatError{Err: err}
	}
	return s, nil
}

// legacyReader extracts typed values from a decoded JSON document and
// collects conversion errors. Absent properties yield zero values.
type legacyReader struct {
	errs []error
}

// get returns the value at path, or false if there is none.
func (l *legacyReader) get(path string, v any) (any, bool) {
	x, err := jsonpath.Get(path, v)
	if err != nil || x == nil {
		// jsonpath reports unknown keys as errors: it means absent here.
		return nil, false
	}
	return x, true
}

func (l *legacyReader) fail(path string, want string, got any) {
	l.errs = append(l.errs, fmt.Errorf("property %s: want %s, got %T %v", path, want, got, got))
}

func (l *legacyReader) list(path string, v any) []any {
	x, ok := l.get(path, v)
	if !ok {
		return nil
	}
	list, ok := x.([]any)
	if !ok {
		l.fail(path, "a list", x)
		return nil
	}
	return list
}

func (l *legacyReader) str(path string, v any) string {
	x, ok := l.get(path, v)
	if !ok {
		return ""
	}
	s, ok := x.(string)
	if !ok {
		l.fail(path, "a string", x)
	}
	return s
}

func (l *legacyReader) numOr(path string, v any, def float64) float64 {
	x, ok := l.get(path, v)
	if !ok {
		return def
	}
	n, ok := x.(float64)
	if !ok {
		l.fail(path, "a number", x)
		return def
	}
	return n
}

func (l *legacyReader) num(path string, v any) float64 { return l.numOr(path, v, 0) }

func (l *legacyReader) date(path string, v any) date.Date {
	s := l.str(path, v)
	if s == "" {
		return date.Date{}
	}
	d, err := date.Parse(s)
	if err != nil {
		l.errs = append(l.errs, fmt.Errorf("property %s: %w", path, err))
	}
	return d
}

func (l *legacyReader) time(path string, v any) time.Time {
	s := l.str(path, v)
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		l.errs = append(l.errs, fmt.Errorf("property %s: %w", path, err))
	}
	return t
}

func (l *legacyReader) endpoint(path string, v any) *Endpoint {
	if _, ok := l.get(path, v); !ok {
		return nil
	}
	return &Endpoint{
		Kind:      legacyEnum(l, path+".kind", v, legacyEndpoints),
		AccountID: l.str(path+".accountId", v),
		Name:      l.str(path+".name", v),
	}
}

// legacyEnum maps a legacy enumerated value. Absent values map to the zero value.
func legacyEnum[T ~string](l *legacyReader, path string, v any, table map[string]T) T {
	s := l.str(path, v)
	if s == "" {
		return ""
	}
	e, ok := table[s]
	if !ok {
		l.errs = append(l.errs, fmt.Errorf("property %s: unknown value %q", path, s))
	}
	return e
}
