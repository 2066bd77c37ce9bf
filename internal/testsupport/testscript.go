// Package testsupport holds helpers shared by the CLI script tests.
package testsupport

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"

	"tasklist/internal/paths"
	"tasklist/model"
)

// binary is the tasklist executable shared by every script in a test run.
var binary struct {
	once sync.Once
	path string
	err  error
}

// BuildTasklist compiles ./cmd/tasklist on first use and returns the path.
func BuildTasklist(t testing.TB) string {
	t.Helper()

	binary.once.Do(func() {
		binary.path, binary.err = buildTasklist()
	})
	if binary.err != nil {
		t.Fatalf("%v", binary.err)
	}
	return binary.path
}

func buildTasklist() (string, error) {
	root, err := moduleRoot()
	if err != nil {
		return "", err
	}
	binDir, err := os.MkdirTemp("", "tasklist-bin-")
	if err != nil {
		return "", err
	}

	path := filepath.Join(binDir, "tasklist")
	cmd := exec.Command("go", "build", "-o", path, "./cmd/tasklist")
	cmd.Dir = root
	if output, err := cmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("build tasklist: %w: %s", err, bytes.TrimSpace(output))
	}
	return path, nil
}

// moduleRoot asks the go command where go.mod lives.
func moduleRoot() (string, error) {
	out, err := exec.Command("go", "env", "GOMOD").Output()
	if err != nil {
		return "", fmt.Errorf("locate go.mod: %w", err)
	}
	gomod := strings.TrimSpace(string(out))
	if gomod == "" || gomod == os.DevNull {
		return "", fmt.Errorf("locate go.mod: not inside a module")
	}
	return filepath.Dir(gomod), nil
}

// SetupScriptEnv gives each script its own HOME and state dir, disables
// colour, and exposes the binary as $TASKLIST.
func SetupScriptEnv(t testing.TB, env *testscript.Env) error {
	t.Helper()

	home := filepath.Join(env.WorkDir, "home")
	state := filepath.Join(home, ".local", "state", "tasklist")
	for _, dir := range []string{state, filepath.Join(home, ".config", "tasklist")} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	env.Setenv("TASKLIST", BuildTasklist(t))
	env.Setenv("HOME", home)
	env.Setenv(paths.StateDirEnvVar, state)
	env.Setenv("NO_COLOR", "1")
	return nil
}

// Commands returns the custom script commands:
//
//	taskid FILE TEXT VAR   set VAR to the id of the task with TEXT in a `list --json` dump
//	envset VAR FILE        set VAR to the trimmed contents of FILE
func Commands() map[string]func(*testscript.TestScript, bool, []string) {
	return map[string]func(*testscript.TestScript, bool, []string){
		"taskid": cmdTaskID,
		"envset": cmdEnvSet,
	}
}

func cmdTaskID(ts *testscript.TestScript, neg bool, args []string) {
	if neg || len(args) != 3 {
		ts.Fatalf("usage: taskid FILE TEXT VAR")
	}

	var tasks []model.Task
	if err := json.Unmarshal([]byte(ts.ReadFile(args[0])), &tasks); err != nil {
		ts.Fatalf("parse task list: %v", err)
	}
	for _, task := range tasks {
		if task.Text == args[1] {
			ts.Setenv(args[2], task.ID)
			return
		}
	}
	ts.Fatalf("no task with text %q in %s", args[1], args[0])
}

func cmdEnvSet(ts *testscript.TestScript, neg bool, args []string) {
	if neg || len(args) != 2 {
		ts.Fatalf("usage: envset VAR FILE")
	}
	ts.Setenv(args[0], strings.TrimSpace(ts.ReadFile(args[1])))
}
