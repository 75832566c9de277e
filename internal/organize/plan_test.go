package organize

import (
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"curator/internal/category"
	"curator/internal/naming"
)

func planRules() naming.Rules {
	rules := naming.DefaultRules()
	rules.AddDatePrefix = false
	return rules
}

func docDescriptor(path string) FileDescriptor {
	name := filepath.Base(path)
	ext := filepath.Ext(name)
	return FileDescriptor{
		Path:      path,
		Name:      name,
		Stem:      strings.TrimSuffix(name, ext),
		Extension: ext,
		ModTime:   time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
		Category:  category.Documents,
	}
}

func destinations(plan *Plan) []string {
	var out []string
	for _, r := range plan.Renames {
		out = append(out, r.NewPath)
	}
	for _, m := range plan.Moves {
		out = append(out, m.Destination)
	}
	return out
}

func TestBuildPlanNoDuplicateDestinations(t *testing.T) {
	descriptors := []FileDescriptor{
		docDescriptor("/inbox/report.pdf"),
		docDescriptor("/inbox/sub/Report.pdf"),
		docDescriptor("/inbox/other/REPORT.PDF"),
	}
	plan := BuildPlan(descriptors, "/organized", Options{IntoFolders: true, Rules: planRules()})

	seen := make(map[string]struct{})
	for _, dest := range destinations(plan) {
		if _, dup := seen[dest]; dup {
			t.Fatalf("duplicate destination %s", dest)
		}
		seen[dest] = struct{}{}
	}
	if plan.TotalActions() != 3 {
		t.Fatalf("expected 3 actions, got %d", plan.TotalActions())
	}
}

func TestBuildPlanCopyCollision(t *testing.T) {
	descriptors := []FileDescriptor{
		docDescriptor("/inbox/Report.pdf"),
		docDescriptor("/inbox/report (copy).pdf"),
	}
	plan := BuildPlan(descriptors, "/organized", Options{IntoFolders: true, Rules: planRules()})

	if len(plan.Moves) != 2 {
		t.Fatalf("expected 2 moves, got %+v", plan)
	}
	docs := filepath.Join("/organized", "01_Documents")
	if plan.Moves[0].Destination != filepath.Join(docs, "report.pdf") {
		t.Errorf("first destination = %s", plan.Moves[0].Destination)
	}
	if plan.Moves[1].Destination != filepath.Join(docs, "report_01.pdf") {
		t.Errorf("second destination = %s", plan.Moves[1].Destination)
	}
}

func TestBuildPlanRenamesInPlace(t *testing.T) {
	plan := BuildPlan([]FileDescriptor{docDescriptor("/inbox/My Quarterly Report.pdf")}, "", Options{Rules: planRules()})

	if len(plan.Moves) != 0 || len(plan.Renames) != 1 {
		t.Fatalf("expected a single rename, got %+v", plan)
	}
	if got := plan.Renames[0].NewPath; got != "/inbox/my-quarterly-report.pdf" {
		t.Errorf("rename target = %s", got)
	}
}

func TestBuildPlanSkipsAlreadyNormalized(t *testing.T) {
	descriptors := []FileDescriptor{
		docDescriptor("/inbox/report.pdf"),
		docDescriptor("/inbox/Report.pdf"),
	}
	plan := BuildPlan(descriptors, "", Options{Rules: planRules()})

	// The first file keeps its path but still claims the name, so the
	// second gets the suffixed variant.
	if len(plan.Renames) != 1 {
		t.Fatalf("expected 1 rename, got %+v", plan)
	}
	if got := plan.Renames[0].NewPath; got != "/inbox/report_01.pdf" {
		t.Errorf("rename target = %s", got)
	}
}

func TestBuildPlanRenameWhenAlreadyInCategoryFolder(t *testing.T) {
	d := docDescriptor("/organized/01_Documents/Annual Report.pdf")
	plan := BuildPlan([]FileDescriptor{d}, "/organized", Options{IntoFolders: true, Rules: planRules()})

	if len(plan.Moves) != 0 || len(plan.Renames) != 1 {
		t.Fatalf("expected rename inside category folder, got %+v", plan)
	}
}

func TestBuildPlanDeterministic(t *testing.T) {
	descriptors := []FileDescriptor{
		docDescriptor("/inbox/a.pdf"),
		docDescriptor("/inbox/A.pdf"),
		docDescriptor("/inbox/b (copy).pdf"),
	}
	opts := Options{IntoFolders: true, Rules: planRules()}
	first := BuildPlan(descriptors, "/organized", opts)
	second := BuildPlan(descriptors, "/organized", opts)
	if !reflect.DeepEqual(first, second) {
		t.Fatal("plans differ between runs on identical input")
	}
}

func TestBuildPlanEntityFolder(t *testing.T) {
	d := docDescriptor("/inbox/invoice march.pdf")
	d.Entity = "Acme Corp"
	plan := BuildPlan([]FileDescriptor{d}, "/organized", Options{
		IntoFolders:   true,
		EntityFolders: true,
		Rules:         planRules(),
	})

	want := filepath.Join("/organized", "01_Documents", "acme-corp", "invoice-march.pdf")
	if len(plan.Moves) != 1 || plan.Moves[0].Destination != want {
		t.Fatalf("destination = %+v, want %s", plan.Moves, want)
	}
}

func TestBuildPlanEntityInFilename(t *testing.T) {
	d := docDescriptor("/inbox/invoice march.pdf")
	d.Entity = "Acme Corp"
	plan := BuildPlan([]FileDescriptor{d}, "/organized", Options{
		IntoFolders:      true,
		EntityFolders:    true,
		EntityInFilename: true,
		Rules:            planRules(),
	})

	want := filepath.Join("/organized", "01_Documents", "acme-corp-invoice-march.pdf")
	if len(plan.Moves) != 1 || plan.Moves[0].Destination != want {
		t.Fatalf("destination = %+v, want %s", plan.Moves, want)
	}
}

func TestBuildPlanCorrectedExtension(t *testing.T) {
	d := docDescriptor("/inbox/photo.png")
	d.Category = category.Images
	d.ExtensionMismatch = true
	d.DetectedExtension = ".jpg"
	plan := BuildPlan([]FileDescriptor{d}, "/organized", Options{IntoFolders: true, Rules: planRules()})

	if len(plan.Moves) != 1 {
		t.Fatalf("expected one move, got %+v", plan)
	}
	if !strings.HasSuffix(plan.Moves[0].Destination, "photo.jpg") {
		t.Errorf("destination = %s, want .jpg", plan.Moves[0].Destination)
	}
	if !strings.Contains(plan.Moves[0].Reason, "extension corrected to .jpg") {
		t.Errorf("reason = %q", plan.Moves[0].Reason)
	}
}

func TestBuildPlanSuggestedNameWins(t *testing.T) {
	d := docDescriptor("/inbox/scan0001.pdf")
	d.SuggestedName = "Quarterly Earnings 2024"
	plan := BuildPlan([]FileDescriptor{d}, "/organized", Options{IntoFolders: true, Rules: planRules()})

	if len(plan.Moves) != 1 {
		t.Fatalf("expected one move, got %+v", plan)
	}
	want := filepath.Join("/organized", "01_Documents", "quarterly-earnings-2024.pdf")
	if plan.Moves[0].Destination != want {
		t.Errorf("destination = %s, want %s", plan.Moves[0].Destination, want)
	}
	if !strings.Contains(plan.Moves[0].Reason, "metadata") {
		t.Errorf("reason = %q", plan.Moves[0].Reason)
	}
}

func TestBuildPlanSubcategory(t *testing.T) {
	descriptors := []FileDescriptor{
		docDescriptor("/inbox/ACME Invoice March.pdf"),
		docDescriptor("/inbox/meeting notes.pdf"),
	}
	plan := BuildPlan(descriptors, "/organized", Options{
		IntoFolders:   true,
		Subcategories: map[string]string{"invoice": "Invoices", "receipt": "Receipts"},
		Rules:         planRules(),
	})

	if len(plan.Moves) != 2 {
		t.Fatalf("expected 2 moves, got %d", len(plan.Moves))
	}
	want := filepath.Join("/organized", "01_Documents", "Invoices", "acme-invoice-march.pdf")
	if plan.Moves[0].Destination != want {
		t.Errorf("invoice destination = %s, want %s", plan.Moves[0].Destination, want)
	}
	other := filepath.Join("/organized", "01_Documents", "meeting-notes.pdf")
	if plan.Moves[1].Destination != other {
		t.Errorf("unmatched destination = %s, want %s", plan.Moves[1].Destination, other)
	}
}
