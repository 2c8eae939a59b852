package tui

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jacksmith/daily/internal/cli"
	"github.com/jacksmith/daily/internal/model"
	"github.com/jacksmith/daily/internal/ops"
	"github.com/jacksmith/daily/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const (
	idRent   int64 = 1729350000001
	idBank   int64 = 1729350000002
	idPlants int64 = 1729350000003
	idStamps int64 = 1729350000004
)

func seedTasks() []model.Task {
	return []model.Task{
		{ID: idRent, Name: "Pay rent", Desc: "Before the 5th", Priority: model.PriorityHigh},
		{ID: idBank, Name: "Call the bank", Priority: model.PriorityMedium},
		{ID: idPlants, Name: "Water plants", Priority: model.PriorityLow},
		{ID: idStamps, Name: "Buy stamps", Priority: model.PriorityLow, Completed: true},
	}
}

// setupModel returns a session over a fresh data directory holding tasks.
func setupModel(t *testing.T, tasks []model.Task) (*Model, *storage.Storage) {
	t.Helper()
	cli.SetColorEnabled(false)

	s, err := storage.Open(t.TempDir())
	require.NoError(t, err)
	if tasks != nil {
		data, err := model.EncodeTasks(tasks)
		require.NoError(t, err)
		require.NoError(t, s.Set(storage.DefaultStoreKey, data))
	}

	store := ops.NewTaskStore(s, storage.DefaultStoreKey, ops.WithClock(func() time.Time {
		return time.UnixMilli(1729350010000)
	}))
	store.Initialize()

	return New(store, Options{ConfirmDelay: 5 * time.Millisecond}), s
}

// loadTasks reads the persisted list the way a fresh process would.
func loadTasks(t *testing.T, s *storage.Storage) []model.Task {
	t.Helper()
	store := ops.NewTaskStore(s, storage.DefaultStoreKey)
	store.Initialize()
	return store.List()
}

func findTask(t *testing.T, tasks []model.Task, id int64) model.Task {
	t.Helper()
	for _, task := range tasks {
		if task.ID == id {
			return task
		}
	}
	t.Fatalf("task %d not found", id)
	return model.Task{}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	keySpace = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
	keyCtrlU = tea.KeyMsg{Type: tea.KeyCtrlU}
	keyCtrlS = tea.KeyMsg{Type: tea.KeyCtrlS}
)

// press feeds msgs to m in order and returns the last command produced.
func press(m *Model, msgs ...tea.Msg) tea.Cmd {
	var last tea.Cmd
	for _, msg := range msgs {
		_, last = m.Update(msg)
	}
	return last
}

// typeKeys sends each rune of s as its own key press.
func typeKeys(m *Model, s string) {
	for _, r := range s {
		if r == ' ' {
			press(m, keySpace)
			continue
		}
		press(m, runes(string(r)))
	}
}

func TestFinishBatch(t *testing.T) {
	m, s := setupModel(t, seedTasks())

	press(m, runes("f"), keySpace, runes("j"), runes("j"), keySpace, runes("k"), keySpace, keySpace)
	assert.Equal(t, ops.ModeFinish, m.ctrl.Mode())
	assert.Equal(t, []int64{idRent, idPlants}, m.ctrl.Selected())
	assert.Contains(t, m.View(), "finish: Confirm (2)")
	assert.Contains(t, m.View(), "[x] 0001")
	assert.Contains(t, m.View(), "[ ] 0002")

	cmd := press(m, runes("c"))
	require.NotNil(t, cmd)
	assert.Equal(t, modeCommit, m.mode)
	assert.Contains(t, m.View(), "Finishing 2 task(s)...")

	// Keys are ignored until the delay has passed.
	press(m, keySpace, runes("d"))
	assert.Equal(t, []int64{idRent, idPlants}, m.ctrl.Selected())
	assert.False(t, findTask(t, loadTasks(t, s), idRent).Completed)

	msg := cmd()
	assert.IsType(t, commitMsg{}, msg)
	press(m, msg)

	assert.Equal(t, modeNormal, m.mode)
	assert.False(t, m.ctrl.Active())
	assert.Equal(t, "2 done.", m.status)

	tasks := loadTasks(t, s)
	assert.True(t, findTask(t, tasks, idRent).Completed)
	assert.False(t, findTask(t, tasks, idBank).Completed)
	assert.True(t, findTask(t, tasks, idPlants).Completed)
	assert.Equal(t, idRent, tasks[0].ID)
}

func TestDeleteBatch(t *testing.T) {
	m, s := setupModel(t, seedTasks())

	cmd := press(m, runes("d"), keySpace, runes("j"), keySpace, runes("c"))
	require.NotNil(t, cmd)
	assert.Contains(t, m.View(), "Deleting 2 task(s)...")
	press(m, cmd())

	assert.Equal(t, "2 deleted.", m.status)
	tasks := loadTasks(t, s)
	require.Len(t, tasks, 2)
	assert.Equal(t, idPlants, tasks[0].ID)
	assert.Equal(t, idStamps, tasks[1].ID)
	assert.Equal(t, 0, m.cursor)
}

func TestStaleCommitIgnored(t *testing.T) {
	m, s := setupModel(t, seedTasks())

	press(m, runes("f"), keySpace, commitMsg{})
	assert.True(t, m.ctrl.Active())
	assert.False(t, findTask(t, loadTasks(t, s), idRent).Completed)
}

func TestModeSwitchClearsSelection(t *testing.T) {
	m, s := setupModel(t, seedTasks())

	press(m, runes("f"), keySpace, runes("d"))
	assert.Equal(t, ops.ModeDelete, m.ctrl.Mode())
	assert.Equal(t, 0, m.ctrl.Count())
	assert.Contains(t, m.View(), "delete: Confirm (0)")

	cmd := press(m, runes("c"))
	assert.Nil(t, cmd)
	assert.Equal(t, "Nothing selected.", m.status)
	assert.False(t, m.ctrl.Active())
	assert.Len(t, loadTasks(t, s), 4)
}

func TestModeToggleOff(t *testing.T) {
	m, _ := setupModel(t, seedTasks())

	press(m, runes("f"), keySpace, runes("f"))
	assert.False(t, m.ctrl.Active())
	assert.Equal(t, "Selection cleared.", m.status)

	press(m, runes("c"))
	assert.True(t, m.statusErr)
	assert.Contains(t, m.View(), "error: no batch mode active")

	press(m, runes("d"), keySpace, keyEsc)
	assert.False(t, m.ctrl.Active())
	assert.Equal(t, 0, m.ctrl.Count())
}

func TestModeRequiresPendingTasks(t *testing.T) {
	m, _ := setupModel(t, nil)

	press(m, runes("d"))
	assert.False(t, m.ctrl.Active())
	assert.Contains(t, m.View(), "No pending tasks.")
	assert.Contains(t, m.View(), "error: no pending tasks")
}

func TestSelectWithoutModeEdits(t *testing.T) {
	m, s := setupModel(t, seedTasks())

	press(m, keySpace)
	require.Equal(t, modeForm, m.mode)
	assert.True(t, m.form.editing)
	assert.Contains(t, m.View(), "Edit 1729350000001")
	assert.Equal(t, "Pay rent", m.form.inputs[fieldName].Value())

	typeKeys(m, " now")
	press(m, keyEnter, keyEnter, keyEnter)

	assert.Equal(t, modeNormal, m.mode)
	assert.Equal(t, "1729350000001 updated.", m.status)

	task := findTask(t, loadTasks(t, s), idRent)
	assert.Equal(t, "Pay rent now", task.Name)
	assert.Equal(t, "Before the 5th", task.Desc)
	assert.Equal(t, model.PriorityHigh, task.Priority)
}

func TestEditClearsDescription(t *testing.T) {
	m, s := setupModel(t, seedTasks())

	press(m, runes("f"), runes("j"), keySpace, runes("k"), runes("e"))
	// Starting an edit leaves the batch mode.
	assert.False(t, m.ctrl.Active())

	press(m, keyTab, keyCtrlU, keyTab, keyCtrlU)
	typeKeys(m, "low")
	press(m, keyEnter)

	task := findTask(t, loadTasks(t, s), idRent)
	assert.Equal(t, "Pay rent", task.Name)
	assert.Equal(t, "", task.Desc)
	assert.Equal(t, model.PriorityLow, task.Priority)
	assert.False(t, findTask(t, loadTasks(t, s), idBank).Completed)
}

func TestEditKeepsMultilineDescription(t *testing.T) {
	tasks := seedTasks()
	tasks[1].Desc = "Ask about the card\nand the loan"
	m, s := setupModel(t, tasks)

	press(m, runes("j"), runes("e"))
	typeKeys(m, "!")
	press(m, keyCtrlS)

	task := findTask(t, loadTasks(t, s), idBank)
	assert.Equal(t, "Call the bank!", task.Name)
	assert.Equal(t, "Ask about the card\nand the loan", task.Desc)
}

func TestEditUnknownPriority(t *testing.T) {
	tasks := seedTasks()
	tasks[0].Priority = model.Priority("urgent")
	m, s := setupModel(t, tasks)

	press(m, keySpace)
	require.Equal(t, modeForm, m.mode)
	assert.Equal(t, "low", m.form.inputs[fieldPriority].Value())

	typeKeys(m, "!")
	press(m, keyCtrlS)

	assert.False(t, m.statusErr, m.status)
	task := findTask(t, loadTasks(t, s), idRent)
	assert.Equal(t, "Pay rent!", task.Name)
	assert.Equal(t, model.PriorityLow, task.Priority)
}

func TestNewTask(t *testing.T) {
	m, s := setupModel(t, seedTasks())

	press(m, runes("n"))
	require.Equal(t, modeForm, m.mode)
	assert.Contains(t, m.View(), "New task")
	assert.Equal(t, "low", m.form.inputs[fieldPriority].Value())

	typeKeys(m, "Buy milk")
	press(m, keyEnter)
	typeKeys(m, "2 litres")
	press(m, keyEnter, keyCtrlU)
	typeKeys(m, "high")
	press(m, keyEnter)

	assert.Equal(t, modeNormal, m.mode)
	assert.Equal(t, "1729350010000 added.", m.status)
	assert.Equal(t, 3, m.cursor)

	tasks := loadTasks(t, s)
	require.Len(t, tasks, 5)
	assert.Equal(t, "Buy milk", tasks[4].Name)
	assert.Equal(t, "2 litres", tasks[4].Desc)
	assert.Equal(t, model.PriorityHigh, tasks[4].Priority)
}

func TestNewTaskValidation(t *testing.T) {
	m, s := setupModel(t, seedTasks())

	press(m, runes("n"), keyCtrlS)
	assert.Equal(t, modeForm, m.mode)
	assert.Contains(t, m.status, "must not be empty")

	typeKeys(m, "Buy milk")
	press(m, keyTab, keyTab, keyCtrlU)
	typeKeys(m, "urgent")
	press(m, keyEnter)
	assert.Equal(t, modeForm, m.mode)
	assert.True(t, m.statusErr)

	press(m, keyEsc)
	assert.Equal(t, modeNormal, m.mode)
	assert.Equal(t, "Canceled.", m.status)
	assert.Len(t, loadTasks(t, s), 4)
}

func TestDoneViewReopen(t *testing.T) {
	m, s := setupModel(t, seedTasks())

	press(m, keyTab)
	assert.Equal(t, viewDone, m.view)
	assert.Contains(t, m.View(), "Buy stamps")
	assert.NotContains(t, m.View(), "Pay rent")

	// Space does not select completed tasks.
	press(m, keySpace)
	assert.Equal(t, modeNormal, m.mode)

	press(m, runes("r"))
	assert.Equal(t, "1729350000004 reopened.", m.status)
	assert.False(t, findTask(t, loadTasks(t, s), idStamps).Completed)
	assert.Contains(t, m.View(), "No completed tasks.")
}

func TestDoneViewPurge(t *testing.T) {
	m, s := setupModel(t, seedTasks())

	press(m, keyTab, runes("x"))
	assert.Equal(t, modePurge, m.mode)
	assert.Contains(t, m.View(), `Delete "Buy stamps" permanently? [y/N]`)

	press(m, runes("n"))
	assert.Equal(t, "Canceled.", m.status)
	assert.Len(t, loadTasks(t, s), 4)

	press(m, runes("x"), runes("y"))
	assert.Equal(t, "1729350000004 deleted.", m.status)
	assert.Len(t, loadTasks(t, s), 3)
}

func TestCommandLine(t *testing.T) {
	m, s := setupModel(t, seedTasks())

	command := func(line string) tea.Cmd {
		press(m, runes(":"))
		require.Equal(t, modeCommand, m.mode)
		typeKeys(m, line)
		return press(m, keyEnter)
	}

	command("goto 0003")
	assert.Equal(t, 2, m.cursor)

	command("g 0004")
	assert.Equal(t, viewDone, m.view)
	assert.Equal(t, 0, m.cursor)

	command("mode delete")
	assert.Equal(t, ops.ModeDelete, m.ctrl.Mode())
	assert.Equal(t, viewPending, m.view)

	command("mode none")
	assert.False(t, m.ctrl.Active())

	command("frobnicate")
	assert.Contains(t, m.View(), `error: unknown command "frobnicate"`)

	command("purge 0001")
	assert.Contains(t, m.status, "is not done")

	command("reopen 4")
	assert.Equal(t, "1729350000004 reopened.", m.status)
	assert.False(t, findTask(t, loadTasks(t, s), idStamps).Completed)

	command("edit")
	assert.Contains(t, m.status, "expected exactly one task ID")

	press(m, runes(":"), keyEsc)
	assert.Equal(t, modeNormal, m.mode)

	cmd := command("q")
	require.NotNil(t, cmd)
	assert.True(t, m.quitting)
	assert.Equal(t, "", m.View())
}

func TestQuitKeys(t *testing.T) {
	m, _ := setupModel(t, seedTasks())

	cmd := press(m, runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	m, _ = setupModel(t, seedTasks())
	press(m, runes("n"))
	cmd = press(m, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.True(t, m.quitting)
}

func TestHelpToggle(t *testing.T) {
	m, _ := setupModel(t, seedTasks())

	assert.NotContains(t, m.View(), "Commands (after \":\")")
	press(m, runes("?"))
	assert.Contains(t, m.View(), "Commands (after \":\")")
}

// failingMedium serves a blob but refuses every write.
type failingMedium struct {
	mock.Mock
}

func (f *failingMedium) Get(key string) ([]byte, bool, error) {
	args := f.Called(key)
	data, _ := args.Get(0).([]byte)
	return data, args.Bool(1), args.Error(2)
}

func (f *failingMedium) Set(key string, value []byte) error {
	return f.Called(key, value).Error(0)
}

func TestCommitFailureIsLogged(t *testing.T) {
	cli.SetColorEnabled(false)
	data, err := model.EncodeTasks(seedTasks())
	require.NoError(t, err)

	medium := &failingMedium{}
	medium.On("Get", storage.DefaultStoreKey).Return(data, true, nil)
	medium.On("Set", storage.DefaultStoreKey, mock.Anything).Return(errors.New("disk full"))

	core, logs := observer.New(zapcore.WarnLevel)
	store := ops.NewTaskStore(medium, storage.DefaultStoreKey)
	store.Initialize()
	m := New(store, Options{Logger: zap.New(core)})

	cmd := press(m, runes("f"), keySpace, runes("c"))
	require.NotNil(t, cmd)
	press(m, cmd())

	assert.True(t, m.statusErr)
	assert.Contains(t, m.status, "disk full")
	assert.False(t, m.ctrl.Active())
	require.Equal(t, 1, logs.FilterMessage("batch failed").Len())
	medium.AssertExpectations(t)
}
