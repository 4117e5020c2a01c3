package cmd

import (
	"bytes"
	"context"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/etnz/capital"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/subcommands"
)

// run executes a p2pc command line against the ledger file data and returns
// what it printed.
func run(t *testing.T, data string, args ...string) (string, subcommands.ExitStatus) {
	t.Helper()
	var buf bytes.Buffer
	oldData, oldOut := *dataFlag, out
	*dataFlag, out = data, &buf
	defer func() { *dataFlag, out = oldData, oldOut }()

	f := flag.NewFlagSet("p2pc", flag.ContinueOnError)
	commander := subcommands.NewCommander(f, "p2pc")
	Register(commander)
	if err := f.Parse(args); err != nil {
		t.Fatalf("cannot parse %q: %v", args, err)
	}
	status := commander.Execute(context.Background())
	return buf.String(), status
}

// mustRun is like run but fails the test unless the command succeeds.
func mustRun(t *testing.T, data string, args ...string) string {
	t.Helper()
	got, status := run(t, data, args...)
	if status != subcommands.ExitSuccess {
		t.Fatalf("p2pc %s: got status %v, want success", strings.Join(args, " "), status)
	}
	return got
}

func contains(t *testing.T, got string, want ...string) {
	t.Helper()
	for _, w := range want {
		if !strings.Contains(got, w) {
			t.Errorf("output does not contain %q:\n%s", w, got)
		}
	}
}

func tempData(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "capital.json")
}

func TestOrderLifecycle(t *testing.T) {
	data := tempData(t)
	mustRun(t, data, "account", "add", "-id", "bac", "-name", "BAC", "-venue", "bank", "-currency", "local", "-initial", "10000")
	mustRun(t, data, "account", "add", "-id", "binance", "-name", "Binance", "-venue", "EXCHANGE", "-currency", "STABLECOIN")
	mustRun(t, data, "order", "-id", "o1", "-date", "2025-01-02", "-side", "BUY", "-currency", "LOCAL", "-qty", "100", "-price", "37", "-commission", "0.1", "-account", "bac")

	contains(t, mustRun(t, data, "balance"), "C$6,300.00", "99.900000 USDT")
	contains(t, mustRun(t, data, "orders"), "o1", "C$3,700.00")

	mustRun(t, data, "cancel", "o1")
	contains(t, mustRun(t, data, "balance"), "C$10,000.00")
	if got := mustRun(t, data, "orders", "-active"); strings.Contains(got, "o1") {
		t.Errorf("orders -active lists a canceled order:\n%s", got)
	}
	contains(t, mustRun(t, data, "orders"), "CANCELED")

	mustRun(t, data, "restore", "o1")
	contains(t, mustRun(t, data, "balance"), "C$6,300.00")

	mustRun(t, data, "order", "-edit", "-id", "o1", "-price", "36")
	contains(t, mustRun(t, data, "balance"), "C$6,400.00", "99.900000 USDT")

	mustRun(t, data, "order", "-delete", "-id", "o1")
	contains(t, mustRun(t, data, "orders"), "No order.")
}

func TestAccountEditDelete(t *testing.T) {
	data := tempData(t)
	mustRun(t, data, "account", "add", "-id", "bac", "-name", "BAC", "-venue", "BANK", "-currency", "LOCAL", "-initial", "1000")

	mustRun(t, data, "account", "edit", "-name", "Banco", "bac")
	got := mustRun(t, data, "accounts")
	contains(t, got, "Banco", "BANK", "C$1,000.00")

	if _, status := run(t, data, "account", "edit", "-name", "X", "nope"); status != subcommands.ExitFailure {
		t.Errorf("account edit of an unknown account: got status %v, want failure", status)
	}

	mustRun(t, data, "account", "delete", "bac")
	contains(t, mustRun(t, data, "accounts"), "No account yet.")
}

func TestMovements(t *testing.T) {
	data := tempData(t)
	mustRun(t, data, "account", "add", "-id", "bac", "-name", "BAC", "-venue", "BANK", "-currency", "LOCAL", "-initial", "1000")
	mustRun(t, data, "account", "add", "-id", "cash", "-name", "Cash", "-venue", "CASH", "-currency", "LOCAL")

	got := mustRun(t, data, "movement", "-id", "m1", "-date", "2025-01-05", "-type", "TRANSFER", "-from", "bac", "-to", "cash",
		"-currency", "LOCAL", "-amount", "200", "-concept", "pocket money", "-tags", "weekly,family")
	contains(t, got, "BAC sent C$200.00 to Cash", "pocket money", "#weekly", "#family", "C$1,000.00 → C$800.00")

	mustRun(t, data, "movement", "-date", "2025-01-06", "-type", "DEPOSIT", "-from", "ext:Salary", "-to", "bac", "-currency", "LOCAL", "-amount", "50")
	contains(t, mustRun(t, data, "balance"), "C$850.00", "C$200.00")

	mustRun(t, data, "movement", "-edit", "-id", "m1", "-concept", "allowance")
	contains(t, mustRun(t, data, "movements"), "allowance")

	mustRun(t, data, "void", "m1")
	contains(t, mustRun(t, data, "balance"), "C$1,050.00")
	contains(t, mustRun(t, data, "movements"), "VOIDED")

	if _, status := run(t, data, "movement", "-type", "TRANSFER", "-from", "bac", "-currency", "LOCAL", "-amount", "10"); status != subcommands.ExitFailure {
		t.Errorf("transfer without destination: got status %v, want failure", status)
	}
}

func TestExpenses(t *testing.T) {
	data := tempData(t)
	mustRun(t, data, "account", "add", "-id", "cash", "-name", "Cash", "-venue", "CASH", "-currency", "LOCAL", "-initial", "500")
	mustRun(t, data, "expense", "-id", "e1", "-date", "2025-03-04", "-concept", "groceries", "-amount", "50", "-currency", "LOCAL", "-account", "cash")
	contains(t, mustRun(t, data, "balance"), "C$450.00")

	mustRun(t, data, "expense", "-edit", "-id", "e1", "-amount", "70")
	contains(t, mustRun(t, data, "balance"), "C$430.00")
	contains(t, mustRun(t, data, "monthly", "-month", "2025-03"), "Total expenses", "C$70.00")

	mustRun(t, data, "expense", "-delete", "-id", "e1")
	contains(t, mustRun(t, data, "balance"), "C$500.00")

	if _, status := run(t, data, "expense", "-amount", "10", "-currency", "STABLECOIN", "-account", "cash"); status != subcommands.ExitFailure {
		t.Errorf("stablecoin expense: got status %v, want failure", status)
	}
}

func TestSettings(t *testing.T) {
	data := tempData(t)
	contains(t, mustRun(t, data, "settings"), "36.5000", "37.0000", "AUTO")
	contains(t, mustRun(t, data, "settings", "-buy", "36.6", "-mode", "manual", "-manual", "38"), "36.6000", "MANUAL", "38.0000")
	contains(t, mustRun(t, data, "capital"), "USDT (MANUAL)", "38.0000")

	if _, status := run(t, data, "settings", "-sell", "-1"); status != subcommands.ExitFailure {
		t.Errorf("negative sell rate: got status %v, want failure", status)
	}
	contains(t, mustRun(t, data, "settings"), "37.0000")
}

func TestReports(t *testing.T) {
	data := tempData(t)
	mustRun(t, data, "account", "add", "-id", "bac", "-name", "BAC", "-venue", "BANK", "-currency", "LOCAL", "-initial", "1000")
	contains(t, mustRun(t, data, "save-report", "-date", "2025-03-01"), "Daily Report 2025-03-01", "C$1,000.00")

	mustRun(t, data, "movement", "-date", "2025-03-01", "-type", "DEPOSIT", "-to", "bac", "-currency", "LOCAL", "-amount", "200")
	mustRun(t, data, "save-report", "-date", "2025-03-01")

	contains(t, mustRun(t, data, "reports"), "2025-03-01", "+C$200.00")
	contains(t, mustRun(t, data, "reports", "-date", "2025-03-01"), "Daily Report 2025-03-01", "BAC", "C$1,200.00")
	contains(t, mustRun(t, data, "monthly", "-month", "2025-03"), "Reported days", "+C$200.00")

	if _, status := run(t, data, "reports", "-date", "2025-03-02"); status != subcommands.ExitFailure {
		t.Errorf("reports of a day without report: got status %v, want failure", status)
	}
}

func TestExportImport(t *testing.T) {
	data := tempData(t)
	mustRun(t, data, "account", "add", "-id", "bac", "-name", "BAC", "-venue", "BANK", "-currency", "LOCAL", "-initial", "1000")
	mustRun(t, data, "settings", "-sell", "36.9")

	backup := filepath.Join(t.TempDir(), "backup.json")
	mustRun(t, data, "export", "-o", backup)

	other := filepath.Join(t.TempDir(), "other.msgpack")
	mustRun(t, other, "import", backup)
	contains(t, mustRun(t, other, "balance"), "BAC", "C$1,000.00")

	want, err := loadFrom(t, data)
	if err != nil {
		t.Fatal(err)
	}
	got, err := loadFrom(t, other)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("imported ledger mismatch (-want +got):\n%s", diff)
	}
}

// loadFrom loads the ledger file data.
func loadFrom(t *testing.T, data string) (capital.Snapshot, error) {
	t.Helper()
	old := *dataFlag
	*dataFlag = data
	defer func() { *dataFlag = old }()
	return load()
}

func TestImport_KeepsLedgerOnError(t *testing.T) {
	data := tempData(t)
	mustRun(t, data, "account", "add", "-id", "bac", "-name", "BAC", "-venue", "BANK", "-currency", "LOCAL", "-initial", "1000")

	broken := filepath.Join(t.TempDir(), "broken.json")
	if err := os.WriteFile(broken, []byte("[]"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, status := run(t, data, "import", broken); status != subcommands.ExitFailure {
		t.Errorf("import of a broken document: got status %v, want failure", status)
	}
	contains(t, mustRun(t, data, "balance"), "BAC", "C$1,000.00")
}

func TestImportLegacy(t *testing.T) {
	data := tempData(t)
	legacy := filepath.Join(t.TempDir(), "legacy.json")
	doc := `{
		"accounts": [{"id": "a1", "name": "BAC", "type": "Banco", "currency": "C$", "initialBalance": 1000}],
		"orders": [],
		"expenses": [],
		"reports": []
	}`
	if err := os.WriteFile(legacy, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}
	mustRun(t, data, "import-legacy", legacy)
	contains(t, mustRun(t, data, "accounts"), "BAC", "BANK", "LOCAL")
}

func TestUsageErrors(t *testing.T) {
	data := tempData(t)
	tests := []struct {
		name string
		args []string
	}{
		{"cancel without id", []string{"cancel"}},
		{"void with two ids", []string{"void", "m1", "m2"}},
		{"account add without name", []string{"account", "add", "-venue", "BANK", "-currency", "LOCAL"}},
		{"unknown currency", []string{"account", "add", "-name", "X", "-venue", "BANK", "-currency", "EUR"}},
		{"bad date", []string{"order", "-date", "yesterday"}},
		{"edit without id", []string{"order", "-edit", "-price", "37"}},
		{"edit and delete", []string{"expense", "-edit", "-delete", "-id", "e1"}},
		{"bad month", []string{"monthly", "-month", "2025/03"}},
		{"bad report date", []string{"reports", "-date", "03/01"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, status := run(t, data, tt.args...); status != subcommands.ExitUsageError {
				t.Errorf("p2pc %s: got status %v, want usage error", strings.Join(tt.args, " "), status)
			}
		})
	}
	if _, err := os.Stat(data); err == nil {
		t.Errorf("usage errors created the ledger file %q", data)
	}
}

func TestParseMonth(t *testing.T) {
	year, month, err := parseMonth("2025-03")
	if err != nil || year != 2025 || month != 3 {
		t.Errorf("parseMonth(\"2025-03\") = %d, %d, %v", year, month, err)
	}
	if _, _, err := parseMonth("March"); err == nil {
		t.Error("parseMonth(\"March\") succeeded, want error")
	}
}

func TestEndpointValue(t *testing.T) {
	tests := []struct {
		value string
		want  *capital.Endpoint
	}{
		{"bac", capital.AccountRef("bac")},
		{"ext:Landlord", capital.External("Landlord")},
		{"", nil},
	}
	for _, tt := range tests {
		var e *capital.Endpoint
		v := endpointValue{&e}
		if err := v.Set(tt.value); err != nil {
			t.Fatalf("Set(%q) failed: %v", tt.value, err)
		}
		if diff := cmp.Diff(tt.want, e); diff != "" {
			t.Errorf("Set(%q) mismatch (-want +got):\n%s", tt.value, diff)
		}
		if v.String() != tt.value {
			t.Errorf("String() = %q, want %q", v.String(), tt.value)
		}
	}
}

func TestTagsValue(t *testing.T) {
	var tags tagsValue
	for _, v := range []string{"weekly, family", "rent", ","} {
		if err := tags.Set(v); err != nil {
			t.Fatal(err)
		}
	}
	if diff := cmp.Diff(tagsValue{"weekly", "family", "rent"}, tags); diff != "" {
		t.Errorf("tags mismatch (-want +got):\n%s", diff)
	}
}

func TestIsCommand(t *testing.T) {
	for _, name := range []string{"account", "orders", "save-report", "import-legacy", "help"} {
		if !IsCommand(name) {
			t.Errorf("IsCommand(%q) = false, want true", name)
		}
	}
	if IsCommand("hello") {
		t.Error("IsCommand(\"hello\") = true, want false")
	}
}

func TestDataPath(t *testing.T) {
	old := *dataFlag
	defer func() { *dataFlag = old }()

	*dataFlag = ""
	t.Setenv(EnvData, "")
	if got := DataPath(); got != defaultData {
		t.Errorf("DataPath() = %q, want %q", got, defaultData)
	}
	t.Setenv(EnvData, "env.msgpack")
	if got := DataPath(); got != "env.msgpack" {
		t.Errorf("DataPath() = %q, want the environment value", got)
	}
	*dataFlag = "flag.json"
	if got := DataPath(); got != "flag.json" {
		t.Errorf("DataPath() = %q, want the flag value", got)
	}
}

func TestOrderCurrencyUsage(t *testing.T) {
	f := flag.NewFlagSet("order", flag.ContinueOnError)
	(&orderCmd{}).SetFlags(f)
	usage := f.Lookup("currency").Usage
	for _, c := range []capital.Currency{capital.Local, capital.Foreign, capital.Stablecoin} {
		if got, want := strings.Contains(usage, string(c)), c.IsFiat(); got != want {
			t.Errorf("order -currency usage %q lists %s = %v, want %v", usage, c, got, want)
		}
	}
}
