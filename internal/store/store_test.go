package store

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedClock returns a clock that advances one minute per call.
func fixedClock() func() time.Time {
	base := time.Date(2025, 2, 1, 10, 0, 0, 0, time.UTC)
	calls := 0
	return func() time.Time {
		t := base.Add(time.Duration(calls) * time.Minute)
		calls++
		return t
	}
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tasks.json")
	s, err := Open(path, WithClock(fixedClock()))
	require.NoError(t, err)
	return s
}

func TestOpenMissingFile(t *testing.T) {
	s := newTestStore(t)

	assert.Empty(t, s.List(""))
	assert.False(t, s.Dirty())
	_, err := os.Stat(s.Path())
	assert.True(t, os.IsNotExist(err), "Open must not create the file")
}

func TestAdd(t *testing.T) {
	s := newTestStore(t)

	task, err := s.Add("Buy milk")
	require.NoError(t, err)

	assert.Equal(t, 1, task.ID)
	assert.Equal(t, "Buy milk", task.Description)
	assert.Equal(t, StatusTodo, task.Status)
	assert.Equal(t, task.CreatedAt, task.UpdatedAt)
	assert.True(t, s.Dirty())

	second, err := s.Add("  Walk dog  ")
	require.NoError(t, err)
	assert.Equal(t, 2, second.ID)
	assert.Equal(t, "Walk dog", second.Description)

	listed := s.List("")
	require.Len(t, listed, 2)
	assert.Equal(t, task, listed[0])
}

func TestAddRejectsEmptyDescription(t *testing.T) {
	tests := []struct {
		name string
		desc string
	}{
		{"empty", ""},
		{"spaces", "   "},
		{"newline", "\n\t"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore(t)
			_, err := s.Add(tt.desc)
			require.ErrorIs(t, err, ErrValidation)
			assert.Empty(t, s.List(""))
			assert.False(t, s.Dirty())
		})
	}
}

func TestUpdate(t *testing.T) {
	s := newTestStore(t)
	added, err := s.Add("Old")
	require.NoError(t, err)
	_, err = s.SetStatus(added.ID, StatusInProgress)
	require.NoError(t, err)

	updated, err := s.Update(added.ID, "New")
	require.NoError(t, err)

	assert.Equal(t, "New", updated.Description)
	assert.Equal(t, StatusInProgress, updated.Status)
	assert.Equal(t, added.CreatedAt, updated.CreatedAt)
	assert.True(t, updated.UpdatedAt.After(added.UpdatedAt))
}

func TestUpdateNotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Add("Only task")
	require.NoError(t, err)

	_, err = s.Update(42, "Nope")
	require.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "42")
}

func TestUpdateRejectsEmptyDescription(t *testing.T) {
	s := newTestStore(t)
	added, err := s.Add("Keep me")
	require.NoError(t, err)

	_, err = s.Update(added.ID, " ")
	require.ErrorIs(t, err, ErrValidation)

	got, err := s.Get(added.ID)
	require.NoError(t, err)
	assert.Equal(t, "Keep me", got.Description)
}

func TestDeleteKeepsOtherIDs(t *testing.T) {
	s := newTestStore(t)
	for _, d := range []string{"one", "two", "three"} {
		_, err := s.Add(d)
		require.NoError(t, err)
	}

	require.NoError(t, s.Delete(2))

	listed := s.List("")
	require.Len(t, listed, 2)
	assert.Equal(t, 1, listed[0].ID)
	assert.Equal(t, "one", listed[0].Description)
	assert.Equal(t, 3, listed[1].ID)
	assert.Equal(t, "three", listed[1].Description)

	_, err := s.Get(2)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteNotFound(t *testing.T) {
	s := newTestStore(t)
	err := s.Delete(1)
	require.ErrorIs(t, err, ErrNotFound)
	assert.False(t, s.Dirty())
}

func TestIDsNotReusedWithinSession(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Add("one")
	require.NoError(t, err)
	two, err := s.Add("two")
	require.NoError(t, err)

	require.NoError(t, s.Delete(two.ID))

	three, err := s.Add("three")
	require.NoError(t, err)
	assert.Equal(t, 3, three.ID)
}

func TestNextIDFromLoadedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	created := time.Date(2025, 1, 2, 10, 0, 0, 0, time.UTC)
	require.NoError(t, SaveFile(path, []Task{
		{ID: 3, Description: "a", Status: StatusTodo, CreatedAt: created, UpdatedAt: created},
		{ID: 7, Description: "b", Status: StatusDone, CreatedAt: created, UpdatedAt: created},
	}))

	s, err := Open(path)
	require.NoError(t, err)

	task, err := s.Add("c")
	require.NoError(t, err)
	assert.Equal(t, 8, task.ID)
}

func TestAddFailsWhenIDsExhausted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	created := time.Date(2025, 1, 2, 10, 0, 0, 0, time.UTC)
	require.NoError(t, SaveFile(path, []Task{
		{ID: math.MaxInt, Description: "last", Status: StatusTodo, CreatedAt: created, UpdatedAt: created},
	}))
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	s, err := Open(path)
	require.NoError(t, err)

	_, err = s.Add("one too many")
	require.ErrorIs(t, err, ErrValidation)
	assert.False(t, s.Dirty())
	assert.Len(t, s.List(""), 1)

	require.NoError(t, s.Save())
	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after)

	_, err = Open(path)
	require.NoError(t, err)
}

func TestSetStatus(t *testing.T) {
	s := newTestStore(t)
	added, err := s.Add("Task")
	require.NoError(t, err)

	for _, st := range []Status{StatusInProgress, StatusDone, StatusTodo} {
		got, err := s.SetStatus(added.ID, st)
		require.NoError(t, err)
		assert.Equal(t, st, got.Status)
	}

	_, err = s.SetStatus(99, StatusDone)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.SetStatus(added.ID, Status("blocked"))
	assert.ErrorIs(t, err, ErrValidation)
}

func TestListFilterPreservesOrder(t *testing.T) {
	s := newTestStore(t)
	for _, d := range []string{"a", "b", "c", "d"} {
		_, err := s.Add(d)
		require.NoError(t, err)
	}
	_, err := s.SetStatus(4, StatusDone)
	require.NoError(t, err)
	_, err = s.SetStatus(2, StatusDone)
	require.NoError(t, err)
	_, err = s.SetStatus(3, StatusInProgress)
	require.NoError(t, err)

	done := s.List(StatusDone)
	require.Len(t, done, 2)
	assert.Equal(t, 2, done[0].ID)
	assert.Equal(t, 4, done[1].ID)

	todo := s.List(StatusTodo)
	require.Len(t, todo, 1)
	assert.Equal(t, 1, todo[0].ID)

	assert.Equal(t, map[Status]int{
		StatusTodo:       1,
		StatusInProgress: 1,
		StatusDone:       2,
	}, s.Counts())
}

func TestListReturnsCopy(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Add("original")
	require.NoError(t, err)

	listed := s.List("")
	listed[0].Description = "changed"

	got, err := s.Get(1)
	require.NoError(t, err)
	assert.Equal(t, "original", got.Description)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Add("Buy milk")
	require.NoError(t, err)
	_, err = s.Add("Write report")
	require.NoError(t, err)
	_, err = s.SetStatus(2, StatusInProgress)
	require.NoError(t, err)

	require.NoError(t, s.Save())
	assert.False(t, s.Dirty())

	reopened, err := Open(s.Path())
	require.NoError(t, err)
	assert.Equal(t, s.List(""), reopened.List(""))
}

func TestMarkDoneExample(t *testing.T) {
	s := newTestStore(t)

	task, err := s.Add("Buy milk")
	require.NoError(t, err)
	assert.Equal(t, 1, task.ID)
	assert.Equal(t, StatusTodo, task.Status)

	_, err = s.SetStatus(1, StatusDone)
	require.NoError(t, err)
	require.NoError(t, s.Save())

	reopened, err := Open(s.Path())
	require.NoError(t, err)
	done := reopened.List(StatusDone)
	require.Len(t, done, 1)
	assert.Equal(t, 1, done[0].ID)
	assert.Equal(t, "Buy milk", done[0].Description)
	assert.Equal(t, StatusDone, done[0].Status)
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		input   string
		want    Status
		wantErr bool
	}{
		{"todo", StatusTodo, false},
		{"in-progress", StatusInProgress, false},
		{"IN_PROGRESS", StatusInProgress, false},
		{"in progress", StatusInProgress, false},
		{" done ", StatusDone, false},
		{"doing", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseStatus(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
