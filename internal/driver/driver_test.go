package driver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"lattice/internal/diag"
)

const fleetScript = `// vehicle records with an optional year and a frozen vin
type Car = {make: string, model: string, year?: number, readonly vin: string}

let ride: Car = {make: "honda", model: "civic", vin: "1HG"}
ride.year = 1999
ride.model = "accord"
`

const narrowScript = `let id: string | number = "u-1000"

if typeof id == "string" {
	let label: string = id
} else {
	let numeric: number = id
}

id = 42
`

const petScript = `type Fish = {swim: bool, fins: number}
type Bird = {fly: bool, wings: number}
type Pet = Fish | Bird

let pet: Pet = {fly: true, wings: 2}

if "swim" in pet {
	let f: Fish = pet
} else {
	let b: Bird = pet
}
`

const draftScript = `type Car = {make: string, model: string, readonly vin: string}
type Draft = Partial<Car>
type Public = Omit<Car, "vin">

let sketch: Draft = {make: "kia"}
let listing: Public = {make: "kia", model: "rio"}
`

func TestRunScriptScenarios(t *testing.T) {
	scripts := map[string]string{
		"fleet.lat":  fleetScript,
		"narrow.lat": narrowScript,
		"pet.lat":    petScript,
		"draft.lat":  draftScript,
	}
	for name, src := range scripts {
		t.Run(name, func(t *testing.T) {
			res := RunScript(name, []byte(src), Options{})
			if res.HasErrors() {
				t.Fatalf("unexpected errors: %v", res.Bag.Items())
			}
		})
	}
}

func TestRunScriptReportsMismatch(t *testing.T) {
	res := RunScript("bad.lat", []byte(`let n: number = "nope"`), Options{})
	if !res.HasErrors() {
		t.Fatal("expected a type mismatch")
	}
	found := false
	for _, d := range res.Bag.Items() {
		if d.Code == diag.CheckTypeMismatch {
			found = true
		}
	}
	if !found {
		t.Fatalf("no mismatch diagnostic: %v", res.Bag.Items())
	}
}

func TestRunScriptZeroOptionsKeepsEveryDiagnostic(t *testing.T) {
	res := RunScript("multi.lat", []byte(`let a: number = "x"
let b: string = 1
let c: bool = "y"
`), Options{})
	errs := 0
	for _, d := range res.Bag.Items() {
		if d.Code == diag.CheckTypeMismatch {
			errs++
		}
	}
	if errs != 3 {
		t.Fatalf("want 3 mismatches with no cap set, got %d: %v", errs, res.Bag.Items())
	}
}

func TestRunScriptHonorsMaxDiagnostics(t *testing.T) {
	res := RunScript("multi.lat", []byte(`let a: number = "x"
let b: string = 1
let c: bool = "y"
`), Options{MaxDiagnostics: 2})
	if got := res.Bag.Len(); got != 2 {
		t.Fatalf("want the cap to hold at 2, got %d", got)
	}
}

func TestRunScriptSurvivesSyntaxErrors(t *testing.T) {
	res := RunScript("mixed.lat", []byte("let = 1\nlet ok: number = 2\n"), Options{})
	if !res.HasErrors() {
		t.Fatal("expected syntax errors")
	}
	name := res.Names.Intern("ok")
	if _, declared := res.Check.Bindings[name]; !declared {
		t.Fatal("good statement after a bad one was dropped")
	}
}

func TestRunFileAndTokenize(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fleet.lat")
	if err := os.WriteFile(path, []byte(fleetScript), 0o644); err != nil {
		t.Fatal(err)
	}

	res, err := RunFile(path, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if res.HasErrors() {
		t.Fatalf("unexpected errors: %v", res.Bag.Items())
	}

	toks, err := TokenizeFile(path, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(toks.Tokens) == 0 {
		t.Fatal("no tokens")
	}
	if toks.Bag.HasErrors() {
		t.Fatalf("lex errors: %v", toks.Bag.Items())
	}
}

func TestRunFileMissing(t *testing.T) {
	if _, err := RunFile(filepath.Join(t.TempDir(), "nope.lat"), Options{}); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestCheckDir(t *testing.T) {
	dir := t.TempDir()
	write := func(name, src string) {
		t.Helper()
		if err := os.WriteFile(filepath.Join(dir, name), []byte(src), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	write("a.lat", narrowScript)
	write("b.lat", `let n: number = "bad"`)
	write("c.lat", petScript)
	write("readme.txt", "not a script")

	results, err := CheckDir(context.Background(), dir, Options{}, 4)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 3 {
		t.Fatalf("want 3 scripts, got %d", len(results))
	}
	for i := 1; i < len(results); i++ {
		if results[i-1].Path > results[i].Path {
			t.Fatalf("results out of order: %q before %q", results[i-1].Path, results[i].Path)
		}
	}
	if results[0].Result.HasErrors() {
		t.Fatalf("a.lat: %v", results[0].Result.Bag.Items())
	}
	if !results[1].Result.HasErrors() {
		t.Fatal("b.lat should fail")
	}
	if results[2].Result.HasErrors() {
		t.Fatalf("c.lat: %v", results[2].Result.Bag.Items())
	}
}

func TestAllDiagnosticsFlattensDirResults(t *testing.T) {
	dir := t.TempDir()
	write := func(name, src string) {
		t.Helper()
		if err := os.WriteFile(filepath.Join(dir, name), []byte(src), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	write("a.lat", `let n: number = "bad"`)
	write("b.lat", petScript)
	write("c.lat", `let s: string = 1`)

	results, err := CheckDir(context.Background(), dir, Options{}, 2)
	if err != nil {
		t.Fatal(err)
	}
	all := AllDiagnostics(results)
	if !all.HasErrors() {
		t.Fatal("merged bag lost the errors")
	}
	want := 0
	for _, r := range results {
		want += r.Result.Bag.Len()
	}
	if all.Len() != want {
		t.Fatalf("merged %d diagnostics, want %d", all.Len(), want)
	}
}

func TestCheckDirEmpty(t *testing.T) {
	results, err := CheckDir(context.Background(), t.TempDir(), Options{}, 0)
	if err != nil {
		t.Fatal(err)
	}
	if results != nil {
		t.Fatalf("want nil results, got %v", results)
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	res := RunScript("draft.lat", []byte(draftScript), Options{})
	snap := BuildSnapshot(res)

	if snap.Schema != snapshotSchemaVersion {
		t.Fatalf("schema = %d", snap.Schema)
	}
	if snap.ContentHash == "" {
		t.Fatal("missing content hash")
	}
	if got := snap.Aliases["Public"]; got != "{make: string, model: string}" {
		t.Fatalf("Public = %q", got)
	}
	if got := snap.Bindings["sketch"]; got != "{make?: string, model?: string, readonly vin?: string}" {
		t.Fatalf("sketch = %q", got)
	}

	path := filepath.Join(t.TempDir(), "out", "draft.mp")
	if err := WriteSnapshot(path, snap); err != nil {
		t.Fatal(err)
	}
	back, err := ReadSnapshot(path)
	if err != nil {
		t.Fatal(err)
	}
	if back.ContentHash != snap.ContentHash || len(back.Aliases) != len(snap.Aliases) {
		t.Fatalf("round trip mismatch: %+v vs %+v", back, snap)
	}
}

func TestSnapshotRecordsDiagnostics(t *testing.T) {
	res := RunScript("bad.lat", []byte("let n: number = \"nope\"\n"), Options{})
	snap := BuildSnapshot(res)
	if len(snap.Diagnostics) == 0 {
		t.Fatal("no diagnostics recorded")
	}
	d := snap.Diagnostics[0]
	if d.Code != "CHK0001" || d.Line != 1 {
		t.Fatalf("diagnostic: %+v", d)
	}
}
