// Package population fills a store with synthetic students: gendered names,
// ages between 18 and 24, a semester that fits the age and an address from the
// address book.
package population

import (
	"fmt"
	"log/slog"

	"github.com/pavelanni/meritrank/internal/model"
)

const (
	// DefaultSize is the number of students generated at startup.
	DefaultSize = 1000

	MinAge = 18
	MaxAge = 24
)

var (
	maleNames = []string{
		"Alejandro", "Javier", "Miguel", "Ricardo", "Andres", "Fernando", "Santiago", "Carlos", "Pablo", "Luis",
		"Jorge", "Manuel", "Angel", "Diego", "Hector", "Marco", "Juan", "Rafael", "Antonio", "Gustavo",
		"Roberto", "David", "Francisco", "Mario", "Jose", "Arturo", "Guillermo", "Alonso", "Benito", "Cesar",
		"Hector", "Julian", "Daniel", "Emilio", "Israel", "Jesus", "Pedro", "Alfredo", "Ernesto", "Felipe",
		"Ramon", "Victor", "Sergio", "Oscar", "Enrique", "Mauricio", "Gerardo", "Adolfo", "Ruben", "Ivan",
	}
	femaleNames = []string{
		"Sofia", "Valeria", "Isabella", "Camila", "Mariana", "Luciana", "Daniela", "Emma", "Regina", "Natalia",
		"Nicole", "Victoria", "Ximena", "Adriana", "Fernanda", "Andrea", "Gabriela", "Paulina", "Emilia", "Catalina",
		"Maria", "Claudia", "Elena", "Sara", "Veronica", "Diana", "Laura", "Julia", "Gloria", "Esther",
		"Ana", "Beatriz", "Carla", "Dulce", "Erika", "Irene", "Jimena", "Leticia", "Monica", "Nadia",
		"Olga", "Patricia", "Quetzali", "Rosa", "Tania", "Ursula", "Vanesa", "Yolanda", "Zoe", "Alma",
	}
	surnames = []string{
		"Garcia", "Rodriguez", "Gonzalez", "Fernandez", "Lopez", "Martinez", "Sanchez", "Perez", "Gomez", "Diaz",
		"Vazquez", "Moreno", "Jimenez", "Ruiz", "Hernandez", "Torres", "Rivera", "Flores", "Ramirez", "Reyes",
		"Morales", "Ortiz", "Gutierrez", "Castillo", "Mendoza", "Contreras", "Vargas", "Silva", "Rojas", "Herrera",
		"Castro", "Blanco", "Navarro", "Soto", "Alonso", "Nunez", "Molina", "Aguilar", "Delgado", "Vega",
		"Cabrera", "Maldonado", "Cruz", "Estrada", "Guerrero", "Ramos", "Salazar", "Montes", "Miranda", "Padilla",
	}
)

// Creator is the part of the store the builder writes to.
type Creator interface {
	Create(p model.PersonalData, semester int) (*model.Student, error)
}

// Builder draws personal data for synthetic students.
type Builder struct {
	rng       Picker
	addresses AddressSource
	semesters int
}

// NewBuilder returns a builder. semesters is the catalog length and caps every
// drawn semester.
func NewBuilder(rng Picker, addresses AddressSource, semesters int) *Builder {
	if addresses == nil {
		addresses = NewAddressBook(nil, rng)
	}
	return &Builder{rng: rng, addresses: addresses, semesters: semesters}
}

// MaxSemesterForAge caps the semester a student of the given age can be in.
func MaxSemesterForAge(age int) int {
	switch {
	case age <= 18:
		return 2
	case age == 19:
		return 4
	case age == 20:
		return 6
	case age == 21:
		return 8
	default:
		return 10
	}
}

func (b *Builder) pick(list []string) string {
	return list[b.rng.IntN(len(list))]
}

// Person draws one student's personal data and semester.
func (b *Builder) Person() (model.PersonalData, int) {
	names, gender := maleNames, "M"
	if b.rng.IntN(2) == 0 {
		names, gender = femaleNames, "F"
	}
	p := model.PersonalData{
		FirstName: b.pick(names),
		Gender:    gender,
	}
	if b.rng.IntN(2) == 0 {
		p.MiddleName = b.pick(names)
	}
	p.LastSurname = b.pick(surnames)
	p.SecondSurname = b.pick(surnames)
	p.Age = MinAge + b.rng.IntN(MaxAge-MinAge+1)
	p.Address = b.addresses.NextAddress()

	limit := MaxSemesterForAge(p.Age)
	if b.semesters > 0 {
		limit = min(limit, b.semesters)
	}
	return p, 1 + b.rng.IntN(limit)
}

// Populate creates n synthetic students in dst.
func (b *Builder) Populate(dst Creator, n int, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	if n < 0 {
		return model.InvalidInput("population.Populate", "student count must not be negative, got %d", n)
	}
	for i := 0; i < n; i++ {
		p, semester := b.Person()
		if _, err := dst.Create(p, semester); err != nil {
			return fmt.Errorf("creating student %d of %d: %w", i+1, n, err)
		}
	}
	logger.Info("population generated", "students", n)
	return nil
}
