package cli

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"holoscope/internal/domain/entity"
)

// setupWorkspace переносит тест во временный каталог с собственной конфигурацией
func setupWorkspace(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)

	for _, key := range []string{"ADMIN_USERNAME", "ADMIN_PASSWORD", "TELEGRAM_TOKEN", "TELEGRAM_CHAT_ID", "HOLOSCOPE_MODEL_DIR"} {
		t.Setenv(key, "")
	}
	t.Setenv("HOLOSCOPE_LOG_LEVEL", "error")

	cfg := `
storage:
  workspace: ` + dir + `
report:
  compress: false
`
	path := filepath.Join(dir, "holoscope.yaml")
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0o644))
	t.Setenv("HOLOSCOPE_CONFIG", path)
	return dir
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func TestCLI_UsersAndLogin(t *testing.T) {
	dir := setupWorkspace(t)

	out, _, err := run(t, "users", "add", "alice", "-p", "secret")
	require.NoError(t, err)
	require.Contains(t, out, "User 'alice' added")

	users, err := os.ReadFile(filepath.Join(dir, "users.txt"))
	require.NoError(t, err)
	require.Equal(t, "alice,secret\n", string(users))

	out, _, err = run(t, "users", "list")
	require.NoError(t, err)
	require.Equal(t, "alice\n", out)

	out, _, err = run(t, "login", "-u", "alice", "-p", "secret")
	require.NoError(t, err)
	require.Contains(t, out, "Logged in as alice (user)")

	_, _, err = run(t, "login", "--role", "admin", "-u", "admin", "-p", "bad")
	require.ErrorIs(t, err, entity.ErrInvalidCredentials)

	out, _, err = run(t, "history")
	require.NoError(t, err)
	require.Contains(t, out, "alice")

	_, _, err = run(t, "users", "delete", "alice")
	require.NoError(t, err)
	out, _, err = run(t, "users", "list")
	require.NoError(t, err)
	require.Empty(t, out)
}

func TestCLI_Orgs(t *testing.T) {
	setupWorkspace(t)

	out, _, err := run(t, "orgs", "list")
	require.NoError(t, err)
	require.Equal(t, "(none)\n", out)

	_, _, err = run(t, "orgs", "add", "Saglo Labs")
	require.NoError(t, err)

	out, _, err = run(t, "orgs", "list")
	require.NoError(t, err)
	require.Equal(t, "Saglo Labs\n", out)
}

func TestCLI_ReportFields(t *testing.T) {
	setupWorkspace(t)

	out, _, err := run(t, "report", "fields")
	require.NoError(t, err)
	require.Contains(t, out, "institution_name")
	require.Contains(t, out, "A.R No")
}

const record = `
college_name: Saglo Institute
department: Chemistry
user: alice
sample_name: S-1
solvent: Water
analysis: TLC
method: M-2
slide_material: Glass
batch_no: B-9
ar_no: AR-7
equipment_no: EQ-1
reviewed_by: Bob
analysed_by: Carol
magnification: 40x
`

func TestCLI_ReportGenerate(t *testing.T) {
	dir := setupWorkspace(t)

	img := image.NewGray(image.Rect(0, 0, 30, 10))
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	imgPath := filepath.Join(dir, "upload_20261018_101500.png")
	require.NoError(t, os.WriteFile(imgPath, buf.Bytes(), 0o644))

	recordPath := filepath.Join(dir, "sample.yaml")
	require.NoError(t, os.WriteFile(recordPath, []byte(record), 0o644))

	out, _, err := run(t, "report", "generate", "--image", imgPath, "--record", recordPath, "--field", "status=Final")
	require.NoError(t, err)
	require.Contains(t, out, "Report saved to")
	require.FileExists(t, filepath.Join(dir, "Report_upload_20261018_101500.pdf"))
}

func TestCLI_ReportGenerateListsMissingFields(t *testing.T) {
	dir := setupWorkspace(t)

	recordPath := filepath.Join(dir, "sample.yaml")
	require.NoError(t, os.WriteFile(recordPath, []byte("department: Chemistry\n"), 0o644))

	_, errOut, err := run(t, "report", "generate", "--record", recordPath, "--field", "status=Pending")
	var verr *entity.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Contains(t, errOut, "institution_name: missing")
	require.Contains(t, errOut, "status: must be one of")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		require.NotEqual(t, ".pdf", filepath.Ext(e.Name()))
	}
}
