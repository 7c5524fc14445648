package commands_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskcli/internal/commands"
	"taskcli/internal/config"
	"taskcli/internal/exitcode"
	"taskcli/internal/service"
	"taskcli/internal/store"
	"taskcli/internal/testutil"
)

// runCommand is a helper to run a command with FakeService.
func runCommand(t *testing.T, cmd commands.Command, svc *testutil.FakeService, args []string, quiet bool) (stdout, stderr string, code int) {
	t.Helper()

	var outBuf, errBuf bytes.Buffer
	cfg := &config.Config{
		Dir:   t.TempDir(),
		Quiet: quiet,
	}

	var s service.Service
	if svc != nil {
		s = svc
	}
	code = cmd.Run(context.Background(), cfg, s, args, &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), code
}

var errDisk = &store.WriteError{Path: "/tmp/tasks.json", Err: errors.New("no space left on device")}

func TestVersionCommand(t *testing.T) {
	stdout, stderr, code := runCommand(t, &commands.VersionCmd{}, nil, nil, false)

	assert.Equal(t, exitcode.Success, code)
	assert.Empty(t, stderr)
	assert.Equal(t, "task-cli 0.1.0\n", stdout)
}

func TestHelpCommand(t *testing.T) {
	stdout, stderr, code := runCommand(t, &commands.HelpCmd{}, nil, nil, false)

	assert.Equal(t, exitcode.Success, code)
	assert.Empty(t, stderr)
	assert.Contains(t, stdout, "Usage:")
	for _, name := range []string{"add", "update", "delete", "list", "mark-in-progress", "mark-done", "export"} {
		assert.Contains(t, stdout, "task-cli "+name)
	}
	assert.Contains(t, stdout, "(alias: rm)")
}

func TestAddCommand(t *testing.T) {
	svc := testutil.NewFakeService()

	stdout, stderr, code := runCommand(t, &commands.AddCmd{}, svc, []string{"buy", "milk"}, false)

	assert.Equal(t, exitcode.Success, code)
	assert.Empty(t, stderr)
	assert.Equal(t, "Task added successfully (ID: 1)\n", stdout)

	tasks := svc.Tasks()
	require.Len(t, tasks, 1)
	assert.Equal(t, "buy milk", tasks[0].Description)
	assert.Equal(t, service.StatusTodo, tasks[0].Status)
}

func TestAddCommand_Quiet(t *testing.T) {
	svc := testutil.NewFakeService()

	stdout, stderr, code := runCommand(t, &commands.AddCmd{}, svc, []string{"buy milk"}, true)

	assert.Equal(t, exitcode.Success, code)
	assert.Empty(t, stderr)
	assert.Empty(t, stdout)
	assert.Len(t, svc.Tasks(), 1)
}

func TestAddCommand_NoDescription(t *testing.T) {
	svc := testutil.NewFakeService()

	stdout, stderr, code := runCommand(t, &commands.AddCmd{}, svc, nil, false)

	assert.Equal(t, exitcode.UserError, code)
	assert.Empty(t, stdout)
	assert.Equal(t, "error: description required\n", stderr)
	assert.Zero(t, svc.Writes)
}

func TestAddCommand_StorageError(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddErr = errDisk

	stdout, stderr, code := runCommand(t, &commands.AddCmd{}, svc, []string{"x"}, false)

	assert.Equal(t, exitcode.StorageError, code)
	assert.Empty(t, stdout)
	assert.Equal(t, "error: storage error: write /tmp/tasks.json: no space left on device\n", stderr)
}

func TestUpdateCommand(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask(1, "buy milk", service.StatusTodo)

	stdout, stderr, code := runCommand(t, &commands.UpdateCmd{}, svc, []string{"1", "buy", "oat", "milk"}, false)

	assert.Equal(t, exitcode.Success, code)
	assert.Empty(t, stderr)
	assert.Equal(t, "Task 1 updated successfully.\n", stdout)
	assert.Equal(t, "buy oat milk", svc.Tasks()[0].Description)
}

func TestUpdateCommand_MissingArgs(t *testing.T) {
	svc := testutil.NewFakeService()

	_, stderr, code := runCommand(t, &commands.UpdateCmd{}, svc, nil, false)
	assert.Equal(t, exitcode.UserError, code)
	assert.Equal(t, "error: task id required\n", stderr)

	_, stderr, code = runCommand(t, &commands.UpdateCmd{}, svc, []string{"1"}, false)
	assert.Equal(t, exitcode.UserError, code)
	assert.Equal(t, "error: description required\n", stderr)
}

func TestNotFound_ReportedOnStdout(t *testing.T) {
	cases := []struct {
		name string
		cmd  commands.Command
		args []string
	}{
		{"update", &commands.UpdateCmd{}, []string{"7", "new text"}},
		{"delete", &commands.DeleteCmd{}, []string{"7"}},
		{"mark-in-progress", &commands.MarkInProgressCmd{}, []string{"7"}},
		{"mark-done", &commands.MarkDoneCmd{}, []string{"7"}},
		{"unparsable id", &commands.MarkDoneCmd{}, []string{"seven"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := testutil.NewFakeService()
			svc.AddTask(1, "buy milk", service.StatusTodo)

			stdout, stderr, code := runCommand(t, tc.cmd, svc, tc.args, true)

			assert.Equal(t, exitcode.Success, code)
			assert.Empty(t, stderr)
			assert.Equal(t, "Task with ID "+tc.args[0]+" not found.\n", stdout)
			assert.Zero(t, svc.Writes)
		})
	}
}

func TestDeleteCommand(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask(1, "a", service.StatusTodo)
	svc.AddTask(2, "b", service.StatusDone)

	stdout, stderr, code := runCommand(t, &commands.DeleteCmd{}, svc, []string{"1"}, false)

	assert.Equal(t, exitcode.Success, code)
	assert.Empty(t, stderr)
	assert.Equal(t, "Task 1 deleted successfully.\n", stdout)
	tasks := svc.Tasks()
	require.Len(t, tasks, 1)
	assert.Equal(t, 2, tasks[0].ID)
}

func TestDeleteCommand_NoID(t *testing.T) {
	stdout, stderr, code := runCommand(t, &commands.DeleteCmd{}, testutil.NewFakeService(), nil, false)

	assert.Equal(t, exitcode.UserError, code)
	assert.Empty(t, stdout)
	assert.Equal(t, "error: task id required\n", stderr)
}

func TestDeleteCommand_StorageError(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.DeleteErr = errDisk

	_, stderr, code := runCommand(t, &commands.DeleteCmd{}, svc, []string{"1"}, false)

	assert.Equal(t, exitcode.StorageError, code)
	assert.Contains(t, stderr, "error: storage error:")
}

func TestMarkCommands(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask(3, "write report", service.StatusTodo)

	stdout, _, code := runCommand(t, &commands.MarkInProgressCmd{}, svc, []string{"3"}, false)
	assert.Equal(t, exitcode.Success, code)
	assert.Equal(t, "Task 3 marked as in-progress.\n", stdout)
	assert.Equal(t, service.StatusInProgress, svc.Tasks()[0].Status)

	stdout, _, code = runCommand(t, &commands.MarkDoneCmd{}, svc, []string{"3"}, false)
	assert.Equal(t, exitcode.Success, code)
	assert.Equal(t, "Task 3 marked as done.\n", stdout)
	assert.Equal(t, service.StatusDone, svc.Tasks()[0].Status)
}

func TestCommands_EchoIDAsGiven(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask(7, "water plants", service.StatusTodo)

	stdout, _, code := runCommand(t, &commands.UpdateCmd{}, svc, []string{"07", "water", "ferns"}, false)
	assert.Equal(t, exitcode.Success, code)
	assert.Equal(t, "Task 07 updated successfully.\n", stdout)

	stdout, _, code = runCommand(t, &commands.MarkInProgressCmd{}, svc, []string{"7abc"}, false)
	assert.Equal(t, exitcode.Success, code)
	assert.Equal(t, "Task 7abc marked as in-progress.\n", stdout)

	stdout, _, code = runCommand(t, &commands.MarkDoneCmd{}, svc, []string{"7.0"}, false)
	assert.Equal(t, exitcode.Success, code)
	assert.Equal(t, "Task 7.0 marked as done.\n", stdout)

	stdout, _, code = runCommand(t, &commands.DeleteCmd{}, svc, []string{"007"}, false)
	assert.Equal(t, exitcode.Success, code)
	assert.Equal(t, "Task 007 deleted successfully.\n", stdout)
	assert.Empty(t, svc.Tasks())
}

func TestMarkCommand_StorageError(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.MarkErr = errDisk

	stdout, stderr, code := runCommand(t, &commands.MarkDoneCmd{}, svc, []string{"1"}, false)

	assert.Equal(t, exitcode.StorageError, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "no space left on device")
}

func TestListCommand_All(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask(1, "buy milk", service.StatusTodo)
	svc.AddTask(2, "write report", service.StatusInProgress)
	svc.AddTask(4, "file taxes", service.StatusDone)

	stdout, stderr, code := runCommand(t, &commands.ListCmd{}, svc, nil, false)

	assert.Equal(t, exitcode.Success, code)
	assert.Empty(t, stderr)
	testutil.GoldenString(t, "list_all", stdout)
}

func TestListCommand_Filtered(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask(1, "buy milk", service.StatusTodo)
	svc.AddTask(2, "write report", service.StatusInProgress)
	svc.AddTask(3, "call mom", service.StatusTodo)

	stdout, stderr, code := runCommand(t, &commands.ListCmd{}, svc, []string{"todo"}, false)

	assert.Equal(t, exitcode.Success, code)
	assert.Empty(t, stderr)
	assert.Equal(t, "1: buy milk [todo]\n3: call mom [todo]\n", stdout)
}

func TestListCommand_Empty(t *testing.T) {
	svc := testutil.NewFakeService()

	stdout, _, code := runCommand(t, &commands.ListCmd{}, svc, nil, false)
	assert.Equal(t, exitcode.Success, code)
	assert.Equal(t, "no tasks found\n", stdout)

	// Quiet mode should suppress "no tasks found"
	stdout, _, code = runCommand(t, &commands.ListCmd{}, svc, []string{"done"}, true)
	assert.Equal(t, exitcode.Success, code)
	assert.Empty(t, stdout)
}

func TestListCommand_InvalidStatus(t *testing.T) {
	stdout, stderr, code := runCommand(t, &commands.ListCmd{}, testutil.NewFakeService(), []string{"finished"}, false)

	assert.Equal(t, exitcode.UserError, code)
	assert.Empty(t, stdout)
	assert.Equal(t, "error: invalid status: finished\n", stderr)
}

func TestListCommand_TooManyArgs(t *testing.T) {
	_, stderr, code := runCommand(t, &commands.ListCmd{}, testutil.NewFakeService(), []string{"todo", "done"}, false)

	assert.Equal(t, exitcode.UserError, code)
	assert.Equal(t, "error: unexpected argument: done\n", stderr)
}

func TestListCommand_StorageError(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.ListErr = &store.FormatError{Path: "/tmp/tasks.json", Err: errors.New("duplicate task id 2")}

	stdout, stderr, code := runCommand(t, &commands.ListCmd{}, svc, nil, false)

	assert.Equal(t, exitcode.StorageError, code)
	assert.Empty(t, stdout)
	assert.Equal(t, "error: storage error: malformed /tmp/tasks.json: duplicate task id 2\n", stderr)
}

func TestExportCommand_Stdout(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask(1, "buy milk", service.StatusTodo)
	cmd := &commands.ExportCmd{}
	cmd.SetFormat("csv")

	stdout, stderr, code := runCommand(t, cmd, svc, nil, false)

	assert.Equal(t, exitcode.Success, code)
	assert.Empty(t, stderr)
	assert.Equal(t, "id,description,status,createdAt,updatedAt\n1,buy milk,todo,2024-01-02T03:04:05.000Z,2024-01-02T03:04:05.000Z\n", stdout)
}

func TestExportCommand_File(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask(1, "buy milk", service.StatusTodo)
	path := filepath.Join(t.TempDir(), "report.pdf")
	cmd := &commands.ExportCmd{}
	cmd.SetFormat("pdf")
	cmd.SetOutput(path)

	stdout, stderr, code := runCommand(t, cmd, svc, nil, false)

	assert.Equal(t, exitcode.Success, code)
	assert.Empty(t, stderr)
	assert.Equal(t, "Exported tasks to "+path+"\n", stdout)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}

func TestExportCommand_UnknownFormat(t *testing.T) {
	cmd := &commands.ExportCmd{}
	cmd.SetFormat("xml")

	stdout, stderr, code := runCommand(t, cmd, testutil.NewFakeService(), nil, false)

	assert.Equal(t, exitcode.UserError, code)
	assert.Empty(t, stdout)
	assert.Equal(t, "error: unknown format: xml (want json, csv, pdf)\n", stderr)
}

func TestRegistry_DuplicateNames(t *testing.T) {
	r := commands.NewRegistry()
	require.NoError(t, r.Register(&commands.DeleteCmd{}))

	err := r.Register(&commands.DeleteCmd{})
	require.EqualError(t, err, "command already registered: delete")

	cmd, ok := r.Find("rm")
	require.True(t, ok)
	assert.Equal(t, "delete", cmd.Name())
	assert.Len(t, r.All(), 1)
}

func TestRegistry_DuplicateAlias(t *testing.T) {
	r := commands.NewRegistry()
	require.NoError(t, r.Register(&commands.ListCmd{}))

	err := r.Register(&aliasClash{})
	require.EqualError(t, err, "command alias already registered: ls (used by list)")

	_, ok := r.Find("lsx")
	assert.False(t, ok, "a rejected command must not be partially registered")
}

// aliasClash reuses the list alias under a different name.
type aliasClash struct{ commands.VersionCmd }

func (c *aliasClash) Name() string      { return "lsx" }
func (c *aliasClash) Aliases() []string { return []string{"ls"} }

func TestDefaultRegistry_Commands(t *testing.T) {
	var names []string
	for _, cmd := range commands.DefaultRegistry.All() {
		names = append(names, cmd.Name())
	}
	assert.Equal(t, []string{"add", "delete", "export", "help", "list", "mark-done", "mark-in-progress", "update", "version"}, names)
}
