package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	errs "github.com/matzehuels/causalid/pkg/errors"
	"github.com/matzehuels/causalid/pkg/identify"
	modelio "github.com/matzehuels/causalid/pkg/io"
	"github.com/matzehuels/causalid/pkg/observability"
)

const frontDoorYAML = `
nodes:
  - id: Smoking
  - id: Tar
  - id: Cancer
edges:
  - {from: Smoking, to: Tar}
  - {from: Tar, to: Cancer}
bidirected:
  - {a: Smoking, b: Cancer}
`

// execute runs the CLI with args and returns what the command wrote to
// stdout. The cache lives in a per-test XDG_CACHE_HOME.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	quietStatus(t)
	t.Cleanup(observability.Reset)

	var out bytes.Buffer
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDoCommand(t *testing.T) {
	model := writeFile(t, "front_door.yaml", frontDoorYAML)

	out, err := execute(t, "do", model, "--x", "Tar")
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	want := `P(Cancer|Smoking,Tar)P(Smoking) \sum_{Tar} P(Tar|Smoking)` + "\n"
	if out != want {
		t.Errorf("do output = %q, want %q", out, want)
	}
}

func TestDoCommandMarginalize(t *testing.T) {
	model := writeFile(t, "front_door.yaml", frontDoorYAML)

	out, err := execute(t, "do", model, "-x", "Tar", "-t", "Cancer", "--marginalize")
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	want := `\sum_{Smoking} P(Cancer|Smoking,Tar)P(Smoking) \sum_{Tar} P(Tar|Smoking)` + "\n"
	if out != want {
		t.Errorf("do output = %q, want %q", out, want)
	}
}

func TestDoCommandJSON(t *testing.T) {
	model := writeFile(t, "front_door.yaml", frontDoorYAML)

	out, err := execute(t, "do", model, "--x", "1", "--format", "json")
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	var res identify.Result
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("decode result: %v\n%s", err, out)
	}
	if res.Query.X != 1 {
		t.Errorf("query x = %d, want 1", res.Query.X)
	}
	if len(res.Components) != 2 {
		t.Errorf("components = %v, want 2", res.Components)
	}
}

func TestDoCommandErrors(t *testing.T) {
	frontDoor := writeFile(t, "front_door.yaml", frontDoorYAML)
	bow := writeFile(t, "bow.json", `{"labels": ["X", "Y"], "matrix": [[0, 2], [-2, 0]]}`)

	tests := []struct {
		name string
		args []string
		code errs.Code
	}{
		{"non-identifiable", []string{"do", bow, "--x", "X"}, errs.ErrCodeNonIdentifiable},
		{"no intervention", []string{"do", frontDoor}, errs.ErrCodeInvalidInput},
		{"unknown node", []string{"do", frontDoor, "--x", "Radon"}, errs.ErrCodeInvalidNode},
		{"not ancestor", []string{"do", frontDoor, "--x", "Cancer", "-t", "Tar"}, errs.ErrCodeNotAncestor},
		{"bad format", []string{"do", frontDoor, "--x", "Tar", "-f", "mathml"}, errs.ErrCodeInvalidFormat},
		{"bad policy", []string{"do", frontDoor, "--x", "Tar", "--hedge", "strict"}, errs.ErrCodeInvalidInput},
		{"missing file", []string{"do", filepath.Join(t.TempDir(), "nope.json"), "--x", "a"}, errs.ErrCodeFileNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			if !errs.Is(err, tt.code) {
				t.Errorf("error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestDoCommandPassThrough(t *testing.T) {
	model := writeFile(t, "front_door.yaml", frontDoorYAML)

	out, err := execute(t, "do", model, "--x", "Cancer", "-t", "Tar", "--non-ancestor", "pass")
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	if want := "P(Smoking) P(Tar|Smoking)\n"; out != want {
		t.Errorf("do output = %q, want %q", out, want)
	}
}

func TestComponentsCommand(t *testing.T) {
	model := writeFile(t, "front_door.yaml", frontDoorYAML)

	out, err := execute(t, "components", model)
	if err != nil {
		t.Fatalf("components: %v", err)
	}
	for _, want := range []string{"Smoking, Cancer", "P(Cancer|Smoking,Tar)P(Smoking)", "P(Tar|Smoking)"} {
		if !strings.Contains(out, want) {
			t.Errorf("components output missing %q:\n%s", want, out)
		}
	}
}

func TestComponentsCommandJSON(t *testing.T) {
	model := writeFile(t, "front_door.yaml", frontDoorYAML)

	out, err := execute(t, "components", model, "-f", "json")
	if err != nil {
		t.Fatalf("components: %v", err)
	}
	var comps []componentJSON
	if err := json.Unmarshal([]byte(out), &comps); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if len(comps) != 2 {
		t.Fatalf("got %d components, want 2", len(comps))
	}
	if got := strings.Join(comps[0].Members, ","); got != "Smoking,Cancer" {
		t.Errorf("first component = %s, want Smoking,Cancer", got)
	}
}

func TestFactorCommand(t *testing.T) {
	model := writeFile(t, "front_door.yaml", frontDoorYAML)

	out, err := execute(t, "factor", model, "--node", "Tar")
	if err != nil {
		t.Fatalf("factor: %v", err)
	}
	if want := "P(Tar|Smoking)\n"; out != want {
		t.Errorf("factor output = %q, want %q", out, want)
	}

	out, err = execute(t, "factor", model, "--component", "0", "-f", "latex")
	if err != nil {
		t.Fatalf("factor: %v", err)
	}
	if want := `P(Cancer \mid Smoking, Tar) P(Smoking)` + "\n"; out != want {
		t.Errorf("latex factor output = %q, want %q", out, want)
	}

	if _, err := execute(t, "factor", model, "--component", "5"); !errs.Is(err, errs.ErrCodeInvalidInput) {
		t.Errorf("out of range component: error = %v, want INVALID_INPUT", err)
	}
}

func TestNormalizeCommand(t *testing.T) {
	model := writeFile(t, "reversed.json", `{"labels": ["y", "x"], "matrix": [[0, -1], [1, 0]], "meta": {"source": "test"}}`)

	out, err := execute(t, "normalize", model)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	f, err := modelio.ReadModel(strings.NewReader(out), modelio.FormatJSON)
	if err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	g, labels, err := f.Graph()
	if err != nil {
		t.Fatal(err)
	}
	if strings.Join(labels, ",") != "x,y" {
		t.Errorf("labels = %v, want [x y]", labels)
	}
	if !g.IsTopological() {
		t.Error("normalized graph is not topological")
	}
	if f.Meta["source"] != "test" {
		t.Errorf("meta = %v, want source kept", f.Meta)
	}
	order, ok := f.Meta["order"].([]any)
	if !ok || len(order) != 2 || order[0] != float64(1) {
		t.Errorf("meta.order = %v, want [1 0]", f.Meta["order"])
	}
}

func TestNormalizeCommandOutput(t *testing.T) {
	model := writeFile(t, "front_door.yaml", frontDoorYAML)
	output := filepath.Join(t.TempDir(), "normalized.toml")

	if _, err := execute(t, "normalize", model, "-o", output, "--labelled"); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	f, err := modelio.ImportModel(output)
	if err != nil {
		t.Fatalf("ImportModel: %v", err)
	}
	if len(f.Nodes) != 3 || len(f.Bidirected) != 1 {
		t.Errorf("labelled output = %+v", f)
	}
}

func TestRenderCommandDOT(t *testing.T) {
	model := writeFile(t, "front_door.yaml", frontDoorYAML)
	output := filepath.Join(t.TempDir(), "diagram.dot")

	if _, err := execute(t, "render", model, "-f", "dot", "-o", output, "--x", "Smoking"); err != nil {
		t.Fatalf("render: %v", err)
	}
	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	dot := string(data)
	if !strings.HasPrefix(dot, "digraph G {") {
		t.Errorf("output is not DOT:\n%s", dot)
	}
	if !strings.Contains(dot, `"Smoking" -> "Cancer" [dir=both`) {
		t.Errorf("missing bidirected arc:\n%s", dot)
	}
}

func TestRenderCommandBadFormat(t *testing.T) {
	model := writeFile(t, "front_door.yaml", frontDoorYAML)
	if _, err := execute(t, "render", model, "-f", "gif"); !errs.Is(err, errs.ErrCodeInvalidFormat) {
		t.Errorf("error = %v, want INVALID_FORMAT", err)
	}
}

func TestCachePathCommand(t *testing.T) {
	out, err := execute(t, "cache", "path")
	if err != nil {
		t.Fatalf("cache path: %v", err)
	}
	want := filepath.Join(os.Getenv("XDG_CACHE_HOME"), appName) + "\n"
	if out != want {
		t.Errorf("cache path = %q, want %q", out, want)
	}
}

func TestClearCache(t *testing.T) {
	quietStatus(t)
	dir := filepath.Join(t.TempDir(), appName)

	if err := clearCache(dir); err != nil {
		t.Fatalf("clear missing dir: %v", err)
	}
	if err := os.MkdirAll(filepath.Join(dir, "ab"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := clearCache(dir); err != nil {
		t.Fatalf("clear: %v", err)
	}
}

func TestMetricsFile(t *testing.T) {
	model := writeFile(t, "front_door.yaml", frontDoorYAML)
	metrics := filepath.Join(t.TempDir(), "causalid.prom")

	if _, err := execute(t, "--metrics-file", metrics, "do", model, "--x", "Tar"); err != nil {
		t.Fatalf("do: %v", err)
	}
	data, err := os.ReadFile(metrics)
	if err != nil {
		t.Fatalf("metrics file: %v", err)
	}
	if !strings.Contains(string(data), `causalid_identify_total{status="ok"} 1`) {
		t.Errorf("metrics missing identify counter:\n%s", data)
	}
}

func TestCompletionCommand(t *testing.T) {
	out, err := execute(t, "completion", "bash")
	if err != nil {
		t.Fatalf("completion: %v", err)
	}
	if !strings.Contains(out, appName) {
		t.Error("bash completion does not mention the command name")
	}
}

func TestNodeListModel(t *testing.T) {
	m, err := identify.FromMatrix([][]int{
		{0, 1, 3},
		{-1, 0, 1},
		{3, -1, 0},
	}, nil, identify.WithLabels("Smoking", "Tar", "Cancer"))
	if err != nil {
		t.Fatal(err)
	}

	list := NewNodeListModel(m)
	if len(list.Rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(list.Rows))
	}
	if !list.Rows[0].Confounded || list.Rows[1].Confounded {
		t.Errorf("confounded flags = %v/%v, want true/false", list.Rows[0].Confounded, list.Rows[1].Confounded)
	}

	var model tea.Model = list
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyDown})
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEnter})

	got := model.(NodeListModel)
	if got.Selected == nil || *got.Selected != 1 {
		t.Fatalf("selected = %v, want node 1", got.Selected)
	}
	if view := got.View(); !strings.Contains(view, "Select Intervention") || !strings.Contains(view, "Tar") {
		t.Errorf("view missing title or node:\n%s", view)
	}
}

func TestNodeListModelQuit(t *testing.T) {
	m, err := identify.FromMatrix([][]int{{0}}, nil)
	if err != nil {
		t.Fatal(err)
	}
	model, cmd := NewNodeListModel(m).Update(tea.KeyMsg{Type: tea.KeyEsc})
	if model.(NodeListModel).Selected != nil {
		t.Error("esc should not select a node")
	}
	if cmd == nil {
		t.Error("esc should quit")
	}
}

func TestDoCommandRowReferences(t *testing.T) {
	model := filepath.Join("..", "..", "examples", "unordered.toml")

	want, err := execute(t, "do", model, "--x", "M")
	if err != nil {
		t.Fatalf("do --x M: %v", err)
	}
	for _, ref := range []string{"1", "v_1"} {
		got, err := execute(t, "do", model, "--x", ref)
		if err != nil {
			t.Fatalf("do --x %s: %v", ref, err)
		}
		if got != want {
			t.Errorf("do --x %s = %q, want %q (same as --x M)", ref, got, want)
		}
	}

	for _, ref := range []string{"X", "2"} {
		_, err := execute(t, "do", model, "--x", ref)
		if !errs.Is(err, errs.ErrCodeNonIdentifiable) {
			t.Errorf("do --x %s: error = %v, want NON_IDENTIFIABLE", ref, err)
		}
	}
}
