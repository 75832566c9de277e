package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"curator/internal/txlog"
)

type cliTestEnv struct {
	baseDir    string
	sourceDir  string
	targetDir  string
	configPath string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	env := &cliTestEnv{
		baseDir:    base,
		sourceDir:  filepath.Join(base, "inbox"),
		targetDir:  filepath.Join(base, "organized"),
		configPath: filepath.Join(base, "config.toml"),
	}
	for _, dir := range []string{env.sourceDir, env.targetDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", dir, err)
		}
	}

	contents := fmt.Sprintf(`[paths]
target_dir = %q
log_dir = %q
index_path = %q

[naming]
word_separator = "-"
element_separator = "_"
lowercase = true
max_stem_length = 50
collapse_separators = true
trim_edge_separators = true
add_date_prefix = false

[organizer]
into_folders = true

[scanner]
recursive = true
deep_scan = true

[index]
enabled = true

[logging]
format = "json"
level = "info"
`, env.targetDir, filepath.Join(base, "logs"), filepath.Join(base, "index.db"))
	if err := os.WriteFile(env.configPath, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return env
}

func (env *cliTestEnv) writeSource(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(env.sourceDir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func runCLI(t *testing.T, env *cliTestEnv, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--config", env.configPath}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func pdfBytes(body string) []byte {
	return []byte("%PDF-1.4\n" + body + "\n%%EOF")
}

func TestCLIScanCommand(t *testing.T) {
	env := setupCLITestEnv(t)
	env.writeSource(t, "Annual Report.pdf", pdfBytes("report"))
	env.writeSource(t, "notes.txt", []byte("plain text notes"))

	stdout, stderr, err := runCLI(t, env, "scan", env.sourceDir)
	if err != nil {
		t.Fatalf("scan: %v (stderr: %s)", err, stderr)
	}
	if !strings.Contains(stdout, "Annual Report.pdf") {
		t.Errorf("output missing scanned file:\n%s", stdout)
	}
	if !strings.Contains(stdout, "Documents") {
		t.Errorf("output missing category:\n%s", stdout)
	}
	if !strings.Contains(stdout, "2 files scanned") {
		t.Errorf("output missing count summary:\n%s", stdout)
	}
}

func TestCLIOrganizeAndRollback(t *testing.T) {
	env := setupCLITestEnv(t)
	original := env.writeSource(t, "Annual Report.pdf", pdfBytes("report"))

	stdout, stderr, err := runCLI(t, env, "organize", "--yes", env.sourceDir)
	if err != nil {
		t.Fatalf("organize: %v (stderr: %s)", err, stderr)
	}
	if !strings.Contains(stdout, "Transaction log:") {
		t.Errorf("output missing log path:\n%s", stdout)
	}
	if !strings.Contains(stdout, "Annual Report.pdf") {
		t.Errorf("plan table missing source path:\n%s", stdout)
	}
	if !strings.Contains(stdout, "annual-report.pdf") {
		t.Errorf("plan table missing destination path:\n%s", stdout)
	}

	organized := filepath.Join(env.targetDir, "01_Documents", "annual-report.pdf")
	if _, err := os.Stat(organized); err != nil {
		t.Fatalf("organized file missing: %v", err)
	}
	if _, err := os.Stat(original); !os.IsNotExist(err) {
		t.Fatalf("source should be gone, stat err = %v", err)
	}

	stdout, stderr, err = runCLI(t, env, "logs", env.sourceDir)
	if err != nil {
		t.Fatalf("logs: %v (stderr: %s)", err, stderr)
	}
	if !strings.Contains(stdout, "changes-") {
		t.Errorf("logs output missing transaction log:\n%s", stdout)
	}
	paths, err := txlog.List(env.sourceDir)
	if err != nil || len(paths) != 1 {
		t.Fatalf("txlog.List = %v, %v", paths, err)
	}
	saved, err := txlog.Load(paths[0])
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stdout, saved.Timestamp) {
		t.Errorf("logs output missing recorded timestamp %s:\n%s", saved.Timestamp, stdout)
	}

	_, stderr, err = runCLI(t, env, "rollback", "--yes", env.sourceDir)
	if err != nil {
		t.Fatalf("rollback: %v (stderr: %s)", err, stderr)
	}
	if _, err := os.Stat(original); err != nil {
		t.Fatalf("rollback did not restore source: %v", err)
	}
	if _, err := os.Stat(organized); !os.IsNotExist(err) {
		t.Fatalf("organized copy should be gone, stat err = %v", err)
	}
}

func TestCLIOrganizeDryRun(t *testing.T) {
	env := setupCLITestEnv(t)
	original := env.writeSource(t, "Annual Report.pdf", pdfBytes("report"))

	stdout, stderr, err := runCLI(t, env, "organize", "--dry-run", env.sourceDir)
	if err != nil {
		t.Fatalf("organize --dry-run: %v (stderr: %s)", err, stderr)
	}
	if !strings.Contains(stdout, "Dry run:") {
		t.Errorf("output missing dry run summary:\n%s", stdout)
	}
	if _, err := os.Stat(original); err != nil {
		t.Fatalf("dry run must not move files: %v", err)
	}

	logs, err := txlog.List(env.sourceDir)
	if err != nil {
		t.Fatalf("txlog.List: %v", err)
	}
	if len(logs) != 1 || !strings.Contains(logs[0], "-dry-run") {
		t.Fatalf("expected one dry-run log, got %v", logs)
	}

	stdout, _, err = runCLI(t, env, "rollback", "--yes", env.sourceDir)
	if err != nil {
		t.Fatalf("rollback of dry-run log: %v", err)
	}
	if !strings.Contains(stdout, "nothing to undo") {
		t.Errorf("dry-run log should be skipped:\n%s", stdout)
	}
}

func TestCLISearchAndHistory(t *testing.T) {
	env := setupCLITestEnv(t)
	env.writeSource(t, "Annual Report.pdf", pdfBytes("report"))

	if _, stderr, err := runCLI(t, env, "organize", "--yes", env.sourceDir); err != nil {
		t.Fatalf("organize: %v (stderr: %s)", err, stderr)
	}
	if _, stderr, err := runCLI(t, env, "scan", "--index", env.sourceDir); err != nil {
		t.Fatalf("scan --index on empty source: %v (stderr: %s)", err, stderr)
	}

	stdout, stderr, err := runCLI(t, env, "history")
	if err != nil {
		t.Fatalf("history: %v (stderr: %s)", err, stderr)
	}
	if !strings.Contains(stdout, "move") {
		t.Errorf("history missing move action:\n%s", stdout)
	}

	if _, stderr, err := runCLI(t, env, "scan", "--index", env.targetDir); err != nil {
		t.Fatalf("scan --index: %v (stderr: %s)", err, stderr)
	}
	stdout, stderr, err = runCLI(t, env, "search", "annual")
	if err != nil {
		t.Fatalf("search: %v (stderr: %s)", err, stderr)
	}
	if !strings.Contains(stdout, "annual-report.pdf") {
		t.Errorf("search missing organized file:\n%s", stdout)
	}
}

func TestCLIConfigInitAndShow(t *testing.T) {
	env := setupCLITestEnv(t)
	samplePath := filepath.Join(env.baseDir, "fresh", "config.toml")

	stdout, stderr, err := runCLI(t, env, "config", "init", "--path", samplePath)
	if err != nil {
		t.Fatalf("config init: %v (stderr: %s)", err, stderr)
	}
	if !strings.Contains(stdout, "Wrote sample configuration") {
		t.Errorf("unexpected init output:\n%s", stdout)
	}
	if _, err := os.Stat(samplePath); err != nil {
		t.Fatalf("sample config missing: %v", err)
	}

	if _, _, err := runCLI(t, env, "config", "init", "--path", samplePath); err == nil {
		t.Fatal("second init without --overwrite should fail")
	}

	stdout, stderr, err = runCLI(t, env, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v (stderr: %s)", err, stderr)
	}
	if !strings.Contains(stdout, env.targetDir) {
		t.Errorf("config show missing target dir:\n%s", stdout)
	}
}

func TestCLIStatusCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	stdout, stderr, err := runCLI(t, env, "status")
	if err != nil {
		t.Fatalf("status: %v (stderr: %s)", err, stderr)
	}
	if !strings.Contains(stdout, "Target directory:") {
		t.Errorf("status output missing target line:\n%s", stdout)
	}
	if !strings.Contains(stdout, "Ready.") {
		t.Errorf("status should report ready with a valid temp layout:\n%s", stdout)
	}
}
