package app

import (
	"bytes"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danpilch/trainlist/internal/display"
	"github.com/danpilch/trainlist/internal/storage"
	"github.com/danpilch/trainlist/internal/train"
)

type memStore struct {
	trains  train.Collection
	loadErr error
	saveErr error
	loads   int
	saves   int
}

func (s *memStore) Load() (train.Collection, error) {
	s.loads++
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	return append(train.Collection{}, s.trains...), nil
}

func (s *memStore) Save(c train.Collection) error {
	s.saves++
	if s.saveErr != nil {
		return s.saveErr
	}
	s.trains = append(train.Collection{}, c...)
	return nil
}

type recordingNotifier struct {
	added []train.Record
	err   error
}

func (n *recordingNotifier) TrainAdded(r train.Record) error {
	n.added = append(n.added, r)
	return n.err
}

type harness struct {
	app    *App
	store  *memStore
	out    *bytes.Buffer
	errOut *bytes.Buffer
	hook   *logtest.Hook
}

func newHarness(store *memStore, input string) *harness {
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	var out, errOut bytes.Buffer
	printer := display.NewPrinter(&out, &errOut)
	return &harness{
		app:    New(store, printer, strings.NewReader(input), &out, logger),
		store:  store,
		out:    &out,
		errOut: &errOut,
		hook:   hook,
	}
}

func TestOptionsCommandPriority(t *testing.T) {
	cases := []struct {
		opts Options
		want Command
	}{
		{Options{}, CommandHelp},
		{Options{Select: ""}, CommandHelp},
		{Options{Select: "Minsk"}, CommandSelect},
		{Options{List: true, Select: "Minsk"}, CommandList},
		{Options{Add: true, List: true, Select: "Minsk"}, CommandAdd},
		{Options{Add: true, Select: "Minsk"}, CommandAdd},
	}
	for _, tc := range cases {
		t.Run(tc.want.String(), func(t *testing.T) {
			assert.Equal(t, tc.want, tc.opts.Command())
		})
	}
}

func TestRunAdd(t *testing.T) {
	store := &memStore{trains: train.Collection{train.NewRecord(101, "Minsk", "08:00")}}
	h := newHarness(store, "102\nMinsk\n07:00\n")

	require.NoError(t, h.app.Run(Options{Add: true}))

	assert.Equal(t, 1, store.saves)
	assert.Equal(t, train.Collection{
		train.NewRecord(102, "Minsk", "07:00"),
		train.NewRecord(101, "Minsk", "08:00"),
	}, store.trains)
	assert.Equal(t, promptNum+promptDestination+promptStartTime, h.out.String())

	entry := h.hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, "train added", entry.Message)
	assert.Equal(t, 2, entry.Data["total"])
}

func TestRunAddKeepsTextAsTyped(t *testing.T) {
	store := &memStore{}
	h := newHarness(store, "  7 \r\n Brest  \r\n9:30")

	require.NoError(t, h.app.Run(Options{Add: true}))
	assert.Equal(t, train.Collection{train.NewRecord(7, " Brest  ", "9:30")}, store.trains)
}

func TestRunAddInvalidNumber(t *testing.T) {
	store := &memStore{}
	h := newHarness(store, "seven\nMinsk\n07:00\n")

	err := h.app.Run(Options{Add: true})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, err.Error(), `"seven"`)
	assert.Equal(t, 0, store.saves)
	assert.Equal(t, promptNum, h.out.String())
}

func TestRunAddTruncatedInput(t *testing.T) {
	store := &memStore{}
	h := newHarness(store, "12\nMinsk\n")

	err := h.app.Run(Options{Add: true})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	assert.Equal(t, 0, store.saves)
}

func TestRunAddSaveFailure(t *testing.T) {
	store := &memStore{saveErr: errors.New("disk full")}
	h := newHarness(store, "1\nA\n01:00\n")

	err := h.app.Run(Options{Add: true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestRunAddNotifies(t *testing.T) {
	store := &memStore{}
	n := &recordingNotifier{}
	h := newHarness(store, "5\nGomel\n12:00\n")
	h.app.WithNotifier(n)

	require.NoError(t, h.app.Run(Options{Add: true}))
	assert.Equal(t, []train.Record{train.NewRecord(5, "Gomel", "12:00")}, n.added)
}

func TestRunAddNotificationFailureIsNotFatal(t *testing.T) {
	store := &memStore{}
	n := &recordingNotifier{err: errors.New("pushover down")}
	h := newHarness(store, "5\nGomel\n12:00\n")
	h.app.WithNotifier(n)

	require.NoError(t, h.app.Run(Options{Add: true}))
	assert.Len(t, store.trains, 1)

	entry := h.hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.WarnLevel, entry.Level)
}

func TestRunList(t *testing.T) {
	store := &memStore{trains: train.Collection{train.NewRecord(101, "Minsk", "08:00")}}
	h := newHarness(store, "")

	require.NoError(t, h.app.Run(Options{List: true}))
	assert.Contains(t, h.out.String(), "|       101       |")
	assert.Equal(t, 0, store.saves)
}

func TestRunSelect(t *testing.T) {
	store := &memStore{trains: train.Collection{
		train.NewRecord(102, " Minsk ", "07:00"),
		train.NewRecord(103, "Brest", "07:30"),
		train.NewRecord(101, "Minsk", "08:00"),
	}}
	h := newHarness(store, "")

	require.NoError(t, h.app.Run(Options{Select: "Minsk"}))
	lines := strings.Split(strings.TrimRight(h.out.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(strings.TrimSpace(lines[0]), "102"))
	assert.True(t, strings.HasPrefix(strings.TrimSpace(lines[1]), "101"))
	assert.Empty(t, h.errOut.String())
	assert.Equal(t, 0, store.saves)
}

func TestRunSelectNoMatches(t *testing.T) {
	h := newHarness(&memStore{}, "")

	require.NoError(t, h.app.Run(Options{Select: "Pinsk"}))
	assert.Empty(t, h.out.String())
	assert.Equal(t, display.NoMatchesNotice+"\n", h.errOut.String())
}

func TestRunHelpDoesNotLoad(t *testing.T) {
	store := &memStore{loadErr: errors.New("should not load")}
	h := newHarness(store, "")

	require.NoError(t, h.app.Run(Options{}))
	assert.Contains(t, h.out.String(), "select <destination>")
	assert.Equal(t, 0, store.loads)
}

func TestRunLoadErrorIsReturned(t *testing.T) {
	store := &memStore{loadErr: storage.ErrMalformed}

	for _, opts := range []Options{{Add: true}, {List: true}, {Select: "X"}} {
		h := newHarness(store, "1\nA\n01:00\n")
		assert.ErrorIs(t, h.app.Run(opts), storage.ErrMalformed)
	}
	assert.Equal(t, 0, store.saves)
}

func TestRunWithFileStore(t *testing.T) {
	logger, _ := logtest.NewNullLogger()
	path := filepath.Join(t.TempDir(), "trains.json")
	file := storage.NewFile(path, logger)

	for _, input := range []string{"101\nMinsk\n08:00\n", "102\nMinsk\n07:00\n"} {
		var out, errOut bytes.Buffer
		a := New(file, display.NewPrinter(&out, &errOut), strings.NewReader(input), &out, logger)
		require.NoError(t, a.Run(Options{Add: true}))
	}

	var out, errOut bytes.Buffer
	a := New(file, display.NewPrinter(&out, &errOut), strings.NewReader(""), &out, logger)
	require.NoError(t, a.Run(Options{Select: "Minsk"}))
	assert.Equal(t,
		"      102      :           07:00          \n"+
			"      101      :           08:00          \n",
		out.String())
}
