package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, dataDir string, args ...string) (string, error) {
	t.Helper()
	root := NewRootCommand()
	buf := &bytes.Buffer{}
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(append(args, "--data-dir", dataDir, "--backend", "file"))
	err := root.Execute()
	return buf.String(), err
}

func TestEndToEndFlow(t *testing.T) {
	t.Setenv("GEMBA_BCRYPT_COST", "4")
	dataDir := t.TempDir()

	out, err := run(t, dataDir, "register",
		"--email", "a@b.com", "--name", "Ana Silva",
		"--company", "Acme", "--password", "secret1", "--role", "auditor")
	require.NoError(t, err)
	assert.Contains(t, out, "registered a@b.com")

	out, err = run(t, dataDir, "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "a@b.com")

	out, err = run(t, dataDir, "audit", "new",
		"--title", "Auditoria Linha A", "--area", "producao", "--complete",
		"--score", "1=5", "--score", "2=4", "--score", "3=3", "--score", "4=4")
	require.NoError(t, err)
	assert.Contains(t, out, "created audit")
	assert.Contains(t, out, "4.0/5.0")

	out, err = run(t, dataDir, "audit", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Auditoria Linha A")
	assert.Contains(t, out, "completed")

	out, err = run(t, dataDir, "dashboard")
	require.NoError(t, err)
	assert.Contains(t, out, "average score:    80.0%")
	assert.Contains(t, out, "excellent audits: 1")

	out, err = run(t, dataDir, "logout")
	require.NoError(t, err)
	assert.Contains(t, out, "logged out")

	out, err = run(t, dataDir, "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "not logged in")

	_, err = run(t, dataDir, "audit", "list")
	require.Error(t, err, "listing audits requires a session")
}

func TestAuditRespondRevisesDraft(t *testing.T) {
	t.Setenv("GEMBA_BCRYPT_COST", "4")
	dataDir := t.TempDir()

	_, err := run(t, dataDir, "register",
		"--email", "a@b.com", "--name", "Ana Silva",
		"--company", "Acme", "--password", "secret1", "--role", "auditor")
	require.NoError(t, err)

	out, err := run(t, dataDir, "audit", "new",
		"--title", "Auditoria Linha B", "--area", "expedicao",
		"--score", "1=2")
	require.NoError(t, err)
	fields := strings.Fields(out)
	require.GreaterOrEqual(t, len(fields), 3, "want audit id in %q", out)
	id := fields[2]

	// revise question 1 and answer question 2 for the first time
	out, err = run(t, dataDir, "audit", "respond", id, "--score", "1=5", "--score", "2=3")
	require.NoError(t, err)
	assert.Contains(t, out, "4.0/5.0")
	assert.Contains(t, out, "80%")

	out, err = run(t, dataDir, "audit", "show", id)
	require.NoError(t, err)
	assert.Contains(t, out, "total: 4.0/5.0")

	_, err = run(t, dataDir, "audit", "respond", "missing", "--score", "1=5")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")

	_, err = run(t, dataDir, "audit", "respond", id, "--score", "1=9")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "between 0 and 5")

	_, err = run(t, dataDir, "audit", "respond", id)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least one")
}

func TestRegisterValidationSurfacesMessage(t *testing.T) {
	t.Setenv("GEMBA_BCRYPT_COST", "4")
	_, err := run(t, t.TempDir(), "register",
		"--email", "a@b.com", "--name", "Ana Silva",
		"--company", "Acme", "--password", "123", "--role", "auditor")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 6 characters")
}

func TestAuditShowUnknownID(t *testing.T) {
	t.Setenv("GEMBA_BCRYPT_COST", "4")
	_, err := run(t, t.TempDir(), "audit", "show", "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestParseScores(t *testing.T) {
	responses, err := parseScores([]string{"1=5", "12=3"})
	require.NoError(t, err)
	require.Len(t, responses, 2)
	assert.Equal(t, "12", responses[1].QuestionID)
	assert.Equal(t, 3, responses[1].Score)

	_, err = parseScores([]string{"nope"})
	assert.Error(t, err)
	_, err = parseScores([]string{"1=five"})
	assert.Error(t, err)
}

func TestQuestionsCommand(t *testing.T) {
	out, err := run(t, t.TempDir(), "questions")
	require.NoError(t, err)
	assert.Contains(t, out, "SEIRI - Classificar")
	assert.Contains(t, out, "20. Existe cultura de melhoria contínua?")
}

func TestDirectoryReport(t *testing.T) {
	out, err := run(t, t.TempDir(), "directory", "report")
	require.NoError(t, err)
	assert.Contains(t, out, "employees: 6 (4 active)")
}

func TestSQLiteBackendFlow(t *testing.T) {
	t.Setenv("GEMBA_BCRYPT_COST", "4")
	dataDir := t.TempDir()

	root := NewRootCommand()
	buf := &bytes.Buffer{}
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs([]string{"register",
		"--email", "s@b.com", "--name", "Sofia", "--company", "Acme",
		"--password", "secret1", "--data-dir", dataDir, "--backend", "sqlite"})
	require.NoError(t, root.Execute())

	root = NewRootCommand()
	buf.Reset()
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs([]string{"whoami", "--data-dir", dataDir, "--backend", "sqlite"})
	require.NoError(t, root.Execute())
	assert.Contains(t, buf.String(), "s@b.com")
}
