package session

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"landlink/entities"
)

type fakeLoader struct {
	mu       sync.Mutex
	profiles map[string]*entities.Profile
	err      error
	calls    int
}

func (f *fakeLoader) FindProfile(_ context.Context, id string) (*entities.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.profiles[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func TestOpenLoadsProfileAndRole(t *testing.T) {
	loader := &fakeLoader{profiles: map[string]*entities.Profile{
		"u1": {ID: "u1", FullName: "Ada", Role: entities.RoleLandowner},
	}}
	m := NewManager(loader, nil)

	s, err := m.Open(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "u1", s.UserID())
	require.NotNil(t, s.Profile())
	assert.Equal(t, "Ada", s.Profile().FullName)
	assert.Equal(t, entities.RoleLandowner, s.Role())

	got, err := m.Get("u1")
	require.NoError(t, err)
	assert.Same(t, s, got)
}

func TestOpenWithoutProfileIsNotAnError(t *testing.T) {
	m := NewManager(&fakeLoader{profiles: map[string]*entities.Profile{}}, nil)
	s, err := m.Open(context.Background(), "u9")
	require.NoError(t, err)
	assert.Nil(t, s.Profile())
	assert.Empty(t, s.Role())
}

func TestOpenFailsWhenLoaderFails(t *testing.T) {
	m := NewManager(&fakeLoader{err: errors.New("backend down")}, nil)
	_, err := m.Open(context.Background(), "u1")
	assert.ErrorContains(t, err, "backend down")
	assert.Equal(t, 0, m.Len())
}

func TestReopenReusesAndRefreshes(t *testing.T) {
	loader := &fakeLoader{profiles: map[string]*entities.Profile{"u1": {ID: "u1", Phone: "1"}}}
	m := NewManager(loader, nil)
	first, err := m.Open(context.Background(), "u1")
	require.NoError(t, err)

	loader.mu.Lock()
	loader.profiles["u1"].Phone = "2"
	loader.mu.Unlock()

	second, err := m.Open(context.Background(), "u1")
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, "2", second.Profile().Phone)
}

func TestProfileIsACopy(t *testing.T) {
	m := NewManager(&fakeLoader{profiles: map[string]*entities.Profile{"u1": {ID: "u1", Phone: "1"}}}, nil)
	s, err := m.Open(context.Background(), "u1")
	require.NoError(t, err)
	s.Profile().Phone = "mutated"
	assert.Equal(t, "1", s.Profile().Phone)
}

func TestCloseRunsHooks(t *testing.T) {
	m := NewManager(&fakeLoader{}, nil)
	var closed []string
	m.OnClose(func(uid string) { closed = append(closed, uid) })

	_, err := m.Open(context.Background(), "u1")
	require.NoError(t, err)

	assert.True(t, m.Active("u1"))
	assert.True(t, m.Close("u1"))
	assert.False(t, m.Active("u1"))
	assert.False(t, m.Close("u1"))
	assert.Equal(t, []string{"u1"}, closed)

	_, err = m.Get("u1")
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestSelectRole(t *testing.T) {
	s := newSession("u1", &fakeLoader{})
	require.NoError(t, s.SelectRole(entities.RoleFarmer))
	assert.Equal(t, entities.RoleFarmer, s.Role())
	assert.ErrorIs(t, s.SelectRole("admin"), ErrInvalidRole)
	assert.Equal(t, entities.RoleFarmer, s.Role())
}

func TestBeginGuardsDuplicateSubmission(t *testing.T) {
	s := newSession("u1", &fakeLoader{})

	release, err := s.Begin("add_land")
	require.NoError(t, err)
	assert.True(t, s.Busy("add_land"))

	_, err = s.Begin("add_land")
	assert.ErrorIs(t, err, ErrBusy)

	other, err := s.Begin("save_profile")
	require.NoError(t, err)
	other()

	release()
	release()
	assert.False(t, s.Busy("add_land"))
	again, err := s.Begin("add_land")
	require.NoError(t, err)
	again()
}

func TestToggleEditing(t *testing.T) {
	s := newSession("u1", &fakeLoader{})
	assert.False(t, s.Editing("farmer"))
	assert.True(t, s.ToggleEditing("farmer"))
	assert.True(t, s.Editing("farmer"))
	assert.False(t, s.Editing("landowner"))
	s.SetEditing("farmer", false)
	assert.False(t, s.Editing("farmer"))
}
