package commands_test

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/myasset-dev/myasset/internal/commands"
)

func runMyasset(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := commands.NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

// initDir creates a fresh data directory.
func initDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	_, err := runMyasset(t, "init", dir)
	require.NoError(t, err)
	return dir
}

func fixture(name string) string {
	return filepath.Join("..", "..", "testdata", name)
}

func copyFixture(t *testing.T, name, dst string) {
	t.Helper()
	data, err := os.ReadFile(fixture(name))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(dst, data, 0o644))
}

func TestInit_CreatesStructure(t *testing.T) {
	dir := t.TempDir()
	out, err := runMyasset(t, "init", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Initialized myasset data directory")

	for _, d := range []string{"logs", "import", filepath.Join("import", "processed")} {
		info, err := os.Stat(filepath.Join(dir, d))
		require.NoError(t, err, "directory %s should exist", d)
		assert.True(t, info.IsDir())
	}
	for _, f := range []string{"myasset.yaml", "rules.json", "myasset.db"} {
		_, err := os.Stat(filepath.Join(dir, f))
		require.NoError(t, err, "file %s should exist", f)
	}

	rules, err := os.ReadFile(filepath.Join(dir, "rules.json"))
	require.NoError(t, err)
	assert.Equal(t, "{}\n", string(rules))
}

func TestInit_KeepsExistingFiles(t *testing.T) {
	dir := t.TempDir()
	existing := "{\n    \"全聯\": \"日常用品\"\n}\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "rules.json"), []byte(existing), 0o644))

	_, err := runMyasset(t, "init", "--dir", dir)
	require.NoError(t, err)

	rules, err := os.ReadFile(filepath.Join(dir, "rules.json"))
	require.NoError(t, err)
	assert.Equal(t, existing, string(rules))
}

func TestImport_DetectsAndStores(t *testing.T) {
	dir := initDir(t)

	out, err := runMyasset(t, "import", fixture("daily_accounting.csv"), "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 3 transactions from daily_accounting.csv (daily)")

	out, err = runMyasset(t, "list", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "高鐵台北-台中")
	assert.Contains(t, out, "交通*")
	assert.Contains(t, out, "3 transactions, total 1960")

	out, err = runMyasset(t, "history", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "daily_accounting.csv")
	assert.Contains(t, out, "ok")
}

func TestImport_FormatOverride(t *testing.T) {
	dir := initDir(t)

	out, err := runMyasset(t, "import", fixture("structured.csv"), "--format", "messy", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 0 transactions from structured.csv (messy)")

	_, err = runMyasset(t, "import", fixture("structured.csv"), "--format", "chase", "--dir", dir)
	assert.ErrorContains(t, err, `unknown format "chase"`)
}

func TestImport_DryRun(t *testing.T) {
	dir := initDir(t)

	out, err := runMyasset(t, "import", fixture("messy_paste.csv"), "--dry-run", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "messy_paste.csv (messy), not stored")
	assert.Contains(t, out, "7-ELEVEN 忠孝店")

	out, err = runMyasset(t, "list", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "0 transactions, total 0")
}

func TestImport_Scan(t *testing.T) {
	dir := initDir(t)
	copyFixture(t, "messy_paste.csv", filepath.Join(dir, "import", "einvoice.csv"))
	copyFixture(t, "structured.csv", filepath.Join(dir, "import", "sheet.csv"))

	out, err := runMyasset(t, "import", "--scan", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 2 transactions from einvoice.csv (messy)")
	assert.Contains(t, out, "Imported 3 transactions from sheet.csv (structured)")

	processed, err := os.ReadDir(filepath.Join(dir, "import", "processed"))
	require.NoError(t, err)
	assert.Len(t, processed, 2)

	out, err = runMyasset(t, "list", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "5 transactions")
}

func TestImport_FailureStoresNothing(t *testing.T) {
	dir := initDir(t)
	bad := filepath.Join(dir, "bad.csv")
	require.NoError(t, os.WriteFile(bad, []byte("日期,商店名稱,金額\n2025-01-01,全聯,100\n昨天,家樂福,50\n"), 0o644))

	_, err := runMyasset(t, "import", bad, "--dir", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 3")

	out, err := runMyasset(t, "list", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "0 transactions")

	out, err = runMyasset(t, "history", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "bad.csv")
	assert.Contains(t, out, "parsing date")
}

func TestImport_RequiresFiles(t *testing.T) {
	dir := initDir(t)
	_, err := runMyasset(t, "import", "--dir", dir)
	assert.ErrorContains(t, err, "requires at least one file")
}

func TestAddSplitEditDelete(t *testing.T) {
	dir := initDir(t)

	out, err := runMyasset(t, "add", "--store", "好市多", "--item", "一般消費", "--amount", "1000", "--date", "2025-06-10", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Added transaction 1")

	_, err = runMyasset(t, "split", "1", "--piece", "衛生紙:600:日常用品", "--piece", "烤雞:300:飲食", "--dir", dir)
	require.Error(t, err, "pieces must add up")
	assert.Contains(t, err.Error(), "sum to 900, want 1000")

	out, err = runMyasset(t, "split", "1", "--piece", "衛生紙:600:日常用品", "--piece", "烤雞:400:飲食", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Split transaction 1 into 2, 3")

	out, err = runMyasset(t, "list", "--category", "飲食", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "烤雞")
	assert.NotContains(t, out, "衛生紙")

	out, err = runMyasset(t, "edit", "2", "--category", "居家", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Updated transaction 2")

	out, err = runMyasset(t, "list", "--category", "居家", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "衛生紙")
	assert.Contains(t, out, "600")

	_, err = runMyasset(t, "edit", "2", "--category", "零食", "--dir", dir)
	assert.ErrorContains(t, err, `unknown category "零食"`)

	out, err = runMyasset(t, "delete", "2", "3", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted 2 transactions")

	_, err = runMyasset(t, "delete", "2", "--dir", dir)
	assert.ErrorContains(t, err, "not found")

	_, err = runMyasset(t, "edit", "abc", "--dir", dir)
	assert.ErrorContains(t, err, `invalid id "abc"`)
}

func TestEdit_SourceCategoryOutsideSet(t *testing.T) {
	dir := initDir(t)
	src := filepath.Join(dir, "daily.csv")
	require.NoError(t, os.WriteFile(src, []byte("日期,收支區分,類別,金額,備註\n20251126,支,早餐,80,\n"), 0o644))
	_, err := runMyasset(t, "import", src, "--dir", dir)
	require.NoError(t, err)

	out, err := runMyasset(t, "edit", "1", "--amount", "95", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Updated transaction 1")

	out, err = runMyasset(t, "list", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "早餐*")
	assert.Contains(t, out, "total 95")
}

func TestClear(t *testing.T) {
	dir := initDir(t)
	_, err := runMyasset(t, "import", fixture("structured.csv"), "--dir", dir)
	require.NoError(t, err)

	_, err = runMyasset(t, "clear", "--dir", dir)
	assert.ErrorContains(t, err, "--yes")

	out, err := runMyasset(t, "clear", "--yes", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted 3 transactions")
}

func TestRules(t *testing.T) {
	dir := initDir(t)
	_, err := runMyasset(t, "add", "--store", "鼎泰豐", "--item", "一般消費", "--amount", "800", "--date", "2025-03-02", "--dir", dir)
	require.NoError(t, err)

	out, err := runMyasset(t, "rules", "suggest", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "鼎泰豐")

	out, err = runMyasset(t, "rules", "set", "鼎泰豐", "飲食", "--item", "小籠包", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Saved rule 鼎泰豐 -> 飲食")

	out, err = runMyasset(t, "list", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "小籠包")
	assert.Contains(t, out, "飲食")

	out, err = runMyasset(t, "rules", "suggest", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Nothing unclassified")

	out, err = runMyasset(t, "rules", "list", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "鼎泰豐")

	_, err = runMyasset(t, "rules", "set", "珍奶", "零食", "--dir", dir)
	assert.ErrorContains(t, err, "unknown category")

	_, err = runMyasset(t, "rules", "delete", "鼎泰豐", "--dir", dir)
	require.NoError(t, err)
	_, err = runMyasset(t, "rules", "delete", "鼎泰豐", "--dir", dir)
	assert.ErrorContains(t, err, "no rule for keyword")

	data, err := os.ReadFile(filepath.Join(dir, "rules.json"))
	require.NoError(t, err)
	assert.Equal(t, "{}\n", string(data))
}

func TestSummary(t *testing.T) {
	dir := initDir(t)
	_, err := runMyasset(t, "import", fixture("daily_accounting.csv"), "--dir", dir)
	require.NoError(t, err)

	out, err := runMyasset(t, "summary", "--month", "2025-11", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "2025-11: total 1960 across 3 transactions, 0 unclassified")
	assert.Contains(t, out, "交通")

	out, err = runMyasset(t, "summary", "--month", "2024-01", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "total 0 across 0 transactions")
}

func TestExport(t *testing.T) {
	dir := initDir(t)
	_, err := runMyasset(t, "import", fixture("structured.csv"), "--dir", dir)
	require.NoError(t, err)

	out, err := runMyasset(t, "export", "--dir", dir)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 4)
	assert.Contains(t, lines[1], "2025-01-05")

	path := filepath.Join(dir, "out.xlsx")
	_, err = runMyasset(t, "export", "-o", path, "--search", "星巴克", "--dir", dir)
	require.NoError(t, err)
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestCategories(t *testing.T) {
	out, err := runMyasset(t, "categories")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 14)
	assert.Equal(t, "飲食", lines[0])
	assert.Equal(t, "其他", lines[13])
}

func TestConfigRedirectsDatabase(t *testing.T) {
	dir := initDir(t)
	cfg := "database:\n    path: db/ledger.db\nrules:\n    path: rules.json\nlog:\n    level: error\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "myasset.yaml"), []byte(cfg), 0o644))

	_, err := runMyasset(t, "add", "--item", "停車費", "--amount", "40", "--dir", dir)
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "db", "ledger.db"))
	assert.NoError(t, err)
}
