package population

import (
	"errors"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pavelanni/meritrank/internal/academic"
	"github.com/pavelanni/meritrank/internal/catalog"
	"github.com/pavelanni/meritrank/internal/model"
	"github.com/pavelanni/meritrank/internal/ranking"
	"github.com/pavelanni/meritrank/internal/store"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLoadAddresses(t *testing.T) {
	path := filepath.Join(t.TempDir(), "direcciones.txt")
	content := "Av. Insurgentes 100\n\n   \n  Calle 5 de Mayo 22  \nPaseo de la Reforma 1\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	book, err := LoadAddresses(path, rand.New(rand.NewPCG(1, 1)))
	require.NoError(t, err)
	assert.Equal(t, 3, book.Len())

	want := []string{"Av. Insurgentes 100", "Calle 5 de Mayo 22", "Paseo de la Reforma 1"}
	for i := 0; i < 50; i++ {
		assert.Contains(t, want, book.NextAddress())
	}
}

func TestLoadAddressesMissingFile(t *testing.T) {
	book, err := LoadAddresses(filepath.Join(t.TempDir(), "nope.txt"), rand.New(rand.NewPCG(1, 1)))
	require.Error(t, err)
	assert.True(t, model.IsUnavailable(err))
	assert.True(t, errors.Is(err, os.ErrNotExist))

	require.NotNil(t, book)
	assert.Equal(t, 0, book.Len())
	assert.Equal(t, UnassignedAddress, book.NextAddress())
}

func TestMaxSemesterForAge(t *testing.T) {
	tests := []struct {
		age  int
		want int
	}{
		{18, 2}, {19, 4}, {20, 6}, {21, 8}, {22, 10}, {24, 10},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MaxSemesterForAge(tt.age), "age %d", tt.age)
	}
}

func TestPerson(t *testing.T) {
	b := NewBuilder(rand.New(rand.NewPCG(7, 7)), NewAddressBook([]string{"Calle Uno"}, rand.New(rand.NewPCG(1, 1))), 10)

	middles := 0
	for i := 0; i < 500; i++ {
		p, semester := b.Person()

		require.Contains(t, []string{"M", "F"}, p.Gender)
		names := maleNames
		if p.Gender == "F" {
			names = femaleNames
		}
		assert.True(t, slices.Contains(names, p.FirstName), "first name %q does not match gender %s", p.FirstName, p.Gender)
		if p.MiddleName != "" {
			middles++
			assert.True(t, slices.Contains(names, p.MiddleName))
		}
		assert.True(t, slices.Contains(surnames, p.LastSurname))
		assert.True(t, slices.Contains(surnames, p.SecondSurname))
		assert.GreaterOrEqual(t, p.Age, MinAge)
		assert.LessOrEqual(t, p.Age, MaxAge)
		assert.GreaterOrEqual(t, semester, 1)
		assert.LessOrEqual(t, semester, MaxSemesterForAge(p.Age))
		assert.Equal(t, "Calle Uno", p.Address)
	}
	assert.Greater(t, middles, 150)
	assert.Less(t, middles, 350)
}

func TestPersonRespectsShortCatalog(t *testing.T) {
	b := NewBuilder(rand.New(rand.NewPCG(3, 3)), nil, 3)
	for i := 0; i < 200; i++ {
		p, semester := b.Person()
		assert.LessOrEqual(t, semester, 3)
		assert.Equal(t, UnassignedAddress, p.Address)
	}
}

func TestPopulate(t *testing.T) {
	c, err := catalog.Default()
	require.NoError(t, err)
	rng := rand.New(rand.NewPCG(2025, 1))
	s := store.New(academic.NewGenerator(c, rng), rng, store.Options{Logger: quietLogger()})

	b := NewBuilder(rng, NewAddressBook([]string{"Calle Uno", "Calle Dos"}, rng), c.Semesters())
	require.NoError(t, b.Populate(s, 200, quietLogger()))

	assert.Equal(t, 200, s.Len())
	assert.True(t, ranking.IsDensePermutation(s.All()))
	assert.Equal(t, store.DefaultAccountBase+199, s.All()[199].AccountID)

	assert.True(t, model.IsInvalidInput(b.Populate(s, -1, quietLogger())))
	assert.NoError(t, b.Populate(s, 0, quietLogger()))
	assert.Equal(t, 200, s.Len())
}

type failingCreator struct{ calls int }

func (f *failingCreator) Create(model.PersonalData, int) (*model.Student, error) {
	f.calls++
	if f.calls == 3 {
		return nil, model.InvalidInput("test", "boom")
	}
	return &model.Student{}, nil
}

func TestPopulateStopsOnError(t *testing.T) {
	b := NewBuilder(rand.New(rand.NewPCG(1, 2)), nil, 10)
	dst := &failingCreator{}
	err := b.Populate(dst, 10, quietLogger())
	require.Error(t, err)
	assert.True(t, model.IsInvalidInput(err))
	assert.Equal(t, 3, dst.calls)
}
