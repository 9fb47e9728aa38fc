package population

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/pavelanni/meritrank/internal/model"
)

// UnassignedAddress is handed out when the address book is empty.
const UnassignedAddress = "Direccion no asignada"

// AddressSource hands out addresses for new students.
type AddressSource interface {
	NextAddress() string
}

// Picker is the randomness an AddressBook needs.
type Picker interface {
	IntN(n int) int
}

// AddressBook picks addresses uniformly, with repetition, from a fixed list.
type AddressBook struct {
	lines []string
	rng   Picker
}

// NewAddressBook wraps lines as an address book. Blank entries are dropped.
func NewAddressBook(lines []string, rng Picker) *AddressBook {
	b := &AddressBook{rng: rng}
	for _, l := range lines {
		if l = strings.TrimSpace(l); l != "" {
			b.lines = append(b.lines, l)
		}
	}
	return b
}

// LoadAddresses reads one address per non-blank line of path. When the file
// cannot be read it still returns a usable, empty book together with a
// ResourceUnavailable error.
func LoadAddresses(path string, rng Picker) (*AddressBook, error) {
	const op = "population.LoadAddresses"
	f, err := os.Open(path)
	if err != nil {
		return NewAddressBook(nil, rng), model.Unavailable(op, "open address list", err)
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return NewAddressBook(nil, rng), model.Unavailable(op, fmt.Sprintf("read %s", path), err)
	}
	return NewAddressBook(lines, rng), nil
}

// Len returns the number of loaded addresses.
func (b *AddressBook) Len() int {
	return len(b.lines)
}

func (b *AddressBook) NextAddress() string {
	if len(b.lines) == 0 {
		return UnassignedAddress
	}
	return b.lines[b.rng.IntN(len(b.lines))]
}
