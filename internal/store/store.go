// Package store holds the ordered note list, its single edit session, and
// mirrors every list change to a kv.Storage slot before returning.
package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/hpungsan/jot/internal/errors"
	"github.com/hpungsan/jot/internal/kv"
	"github.com/hpungsan/jot/internal/note"
)

// Store is the note list plus its drafts.
//
// Every method runs under one mutex, so concurrent callers (web handlers)
// observe the same one-action-at-a-time behavior as a single user.
// The persisted snapshot always equals the in-memory list: a list change
// whose write fails is discarded and the error returned.
type Store struct {
	mu      sync.Mutex
	storage kv.Storage
	key     string
	logger  *zap.Logger
	now     func() time.Time

	loaded bool
	notes  []note.Note
	input  note.Fields
	edit   *note.Draft
}

// newStore creates an unloaded store over storage, persisting under key.
// A nil logger disables logging.
func newStore(storage kv.Storage, key string, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		storage: storage,
		key:     key,
		logger:  logger.With(zap.String("key", key)),
		now:     time.Now,
	}
}

// Open creates a store over storage, persisting under key, and loads it.
// It is the only constructor, so every Store method sees the loaded list.
// A nil logger disables logging.
func Open(ctx context.Context, storage kv.Storage, key string, logger *zap.Logger) (*Store, error) {
	s := newStore(storage, key, logger)
	if err := s.Load(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Load reads the persisted snapshot. An absent or unparseable snapshot
// yields an empty list. Only the first call reads storage; Open makes it,
// so later calls are no-ops.
// Storage errors other than absence are returned and leave the store unloaded.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked(ctx)
}

func (s *Store) loadLocked(ctx context.Context) error {
	if s.loaded {
		return nil
	}

	snapshot, ok, err := s.storage.Get(ctx, s.key)
	if err != nil {
		return wrapStorage("load notes", err)
	}

	notes := []note.Note{}
	if ok {
		decoded, err := note.Decode(snapshot)
		if err != nil {
			s.logger.Warn("discarding unreadable snapshot", zap.Error(err))
		} else {
			notes = decoded
		}
	}

	now := s.now()
	for i := range notes {
		if notes[i].ID == "" {
			id, err := note.NewID(now)
			if err != nil {
				return errors.NewInternal(err)
			}
			notes[i].ID = id
		}
	}

	s.notes = notes
	s.loaded = true
	s.logger.Debug("notes loaded", zap.Int("count", len(notes)), zap.Bool("found", ok))
	return nil
}

// Add appends candidate as a new note. Fields are trimmed first; if any is
// empty the call is a no-op and added is false. On success the input
// draft is cleared.
func (s *Store) Add(ctx context.Context, candidate note.Fields) (n note.Note, added bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fields := candidate.Trimmed()
	if fields.Blank() {
		s.logger.Debug("blank note ignored")
		return note.Note{}, false, nil
	}

	n, err = note.New(fields, s.now())
	if err != nil {
		return note.Note{}, false, errors.NewInternal(err)
	}

	next := make([]note.Note, len(s.notes), len(s.notes)+1)
	copy(next, s.notes)
	next = append(next, n)
	if err := s.commitLocked(ctx, next); err != nil {
		return note.Note{}, false, err
	}

	s.input = note.Fields{}
	s.logger.Debug("note added", zap.String("id", n.ID), zap.Int("index", len(next)-1))
	return n, true, nil
}

// Delete removes the note at index. Later notes shift down by one.
// An edit session on the removed note ends; one on a later note follows it.
func (s *Store) Delete(ctx context.Context, index int) (note.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deleteLocked(ctx, index)
}

// DeleteID removes the note with the given ID and returns its former index.
func (s *Store) DeleteID(ctx context.Context, id string) (int, note.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	index, ok := s.indexOfLocked(id)
	if !ok {
		return 0, note.Note{}, errors.NewNotFound(id)
	}
	n, err := s.deleteLocked(ctx, index)
	return index, n, err
}

func (s *Store) deleteLocked(ctx context.Context, index int) (note.Note, error) {
	if err := s.checkIndexLocked(index); err != nil {
		return note.Note{}, err
	}
	removed := s.notes[index]

	next := make([]note.Note, 0, len(s.notes)-1)
	next = append(next, s.notes[:index]...)
	next = append(next, s.notes[index+1:]...)
	if err := s.commitLocked(ctx, next); err != nil {
		return note.Note{}, err
	}

	if s.edit != nil {
		switch {
		case s.edit.Index == index:
			s.logger.Debug("edit ended by delete", zap.String("id", removed.ID))
			s.edit = nil
		case s.edit.Index > index:
			s.edit.Index--
		}
	}

	s.logger.Debug("note deleted", zap.String("id", removed.ID), zap.Int("index", index))
	return removed, nil
}

// StartEdit copies the note at index into the edit draft. Any previous
// draft is discarded.
func (s *Store) StartEdit(index int) (note.Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.startEditLocked(index)
}

// StartEditID is StartEdit addressed by note ID.
func (s *Store) StartEditID(id string) (note.Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	index, ok := s.indexOfLocked(id)
	if !ok {
		return note.Draft{}, errors.NewNotFound(id)
	}
	return s.startEditLocked(index)
}

func (s *Store) startEditLocked(index int) (note.Draft, error) {
	if err := s.checkIndexLocked(index); err != nil {
		return note.Draft{}, err
	}
	n := s.notes[index]
	s.edit = &note.Draft{Index: index, NoteID: n.ID, Fields: n.Fields()}
	return *s.edit, nil
}

// SetDraft replaces the fields of the active edit draft.
func (s *Store) SetDraft(f note.Fields) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.edit == nil {
		return errors.NewNoActiveEdit()
	}
	s.edit.Fields = f
	return nil
}

// SubmitEdit replaces the note at index with the draft fields as they are.
// Unlike Add, blank fields are accepted. The draft is cleared.
func (s *Store) SubmitEdit(ctx context.Context, index int) (note.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submitEditLocked(ctx, index)
}

// SubmitEditID is SubmitEdit addressed by note ID.
func (s *Store) SubmitEditID(ctx context.Context, id string) (note.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	index, ok := s.indexOfLocked(id)
	if !ok {
		return note.Note{}, errors.NewNotFound(id)
	}
	return s.submitEditLocked(ctx, index)
}

func (s *Store) submitEditLocked(ctx context.Context, index int) (note.Note, error) {
	if s.edit == nil {
		return note.Note{}, errors.NewNoActiveEdit()
	}
	if err := s.checkIndexLocked(index); err != nil {
		return note.Note{}, err
	}
	if s.edit.Index != index {
		return note.Note{}, errors.NewInvalidRequest(
			fmt.Sprintf("note %d is not being edited (edit in progress on note %d)", index, s.edit.Index))
	}

	replaced := s.notes[index].Replace(s.edit.Fields, s.now())
	next := make([]note.Note, len(s.notes))
	copy(next, s.notes)
	next[index] = replaced
	if err := s.commitLocked(ctx, next); err != nil {
		return note.Note{}, err
	}

	s.edit = nil
	s.logger.Debug("note edited", zap.String("id", replaced.ID), zap.Int("index", index))
	return replaced, nil
}

// SubmitDraft applies p to the active draft and submits it as one step, so
// no other call can replace the draft in between. It fails like SubmitEdit;
// on a failed write the draft keeps the patched fields.
func (s *Store) SubmitDraft(ctx context.Context, index int, p note.Patch) (note.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.edit != nil && s.edit.Index == index {
		s.edit.Fields = p.Apply(s.edit.Fields)
	}
	return s.submitEditLocked(ctx, index)
}

// ApplyEdit runs a whole edit session on the note at index in one step:
// start, apply p, submit. Any prior draft is replaced, and no draft remains
// afterwards, whether or not the submit succeeded.
func (s *Store) ApplyEdit(ctx context.Context, index int, p note.Patch) (note.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.applyEditLocked(ctx, index, p)
}

// ApplyEditID is ApplyEdit addressed by note ID. It returns the note's index.
func (s *Store) ApplyEditID(ctx context.Context, id string, p note.Patch) (int, note.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	index, ok := s.indexOfLocked(id)
	if !ok {
		return 0, note.Note{}, errors.NewNotFound(id)
	}
	n, err := s.applyEditLocked(ctx, index, p)
	return index, n, err
}

func (s *Store) applyEditLocked(ctx context.Context, index int, p note.Patch) (note.Note, error) {
	if _, err := s.startEditLocked(index); err != nil {
		return note.Note{}, err
	}
	s.edit.Fields = p.Apply(s.edit.Fields)
	n, err := s.submitEditLocked(ctx, index)
	if err != nil {
		s.edit = nil
		return note.Note{}, err
	}
	return n, nil
}

// CancelEdit discards the edit draft without touching the list.
// It reports whether an edit was in progress.
func (s *Store) CancelEdit() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	active := s.edit != nil
	s.edit = nil
	return active
}

// Draft returns the active edit draft, if any.
func (s *Store) Draft() (note.Draft, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.edit == nil {
		return note.Draft{}, false
	}
	return *s.edit, true
}

// Input returns the pending new-note fields.
func (s *Store) Input() note.Fields {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.input
}

// SetInput records the pending new-note fields. They survive a rejected
// Add and are cleared by a successful one.
func (s *Store) SetInput(f note.Fields) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.input = f
}

// Notes returns a copy of the list.
func (s *Store) Notes() []note.Note {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]note.Note, len(s.notes))
	copy(out, s.notes)
	return out
}

// Len returns the number of notes.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.notes)
}

// Get returns the note at index.
func (s *Store) Get(index int) (note.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkIndexLocked(index); err != nil {
		return note.Note{}, err
	}
	return s.notes[index], nil
}

// IndexOf returns the current index of the note with the given ID.
func (s *Store) IndexOf(id string) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.indexOfLocked(id)
}

func (s *Store) indexOfLocked(id string) (int, bool) {
	for i, n := range s.notes {
		if n.ID == id {
			return i, true
		}
	}
	return 0, false
}

func (s *Store) checkIndexLocked(index int) error {
	if index < 0 || index >= len(s.notes) {
		return errors.NewIndexNotFound(index, len(s.notes))
	}
	return nil
}

// commitLocked persists next and, only if that succeeds, makes it the list.
func (s *Store) commitLocked(ctx context.Context, next []note.Note) error {
	snapshot, err := note.Encode(next)
	if err != nil {
		return errors.NewInternal(err)
	}
	if err := s.storage.Set(ctx, s.key, snapshot); err != nil {
		s.logger.Error("persisting notes failed", zap.Error(err))
		return wrapStorage("save notes", err)
	}
	s.notes = next
	return nil
}

func wrapStorage(op string, err error) error {
	if jErr, ok := err.(*errors.JotError); ok {
		return jErr
	}
	return errors.NewInternal(fmt.Errorf("%s: %w", op, err))
}
