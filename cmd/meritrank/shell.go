package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	appI18n "github.com/pavelanni/meritrank/internal/i18n"
	"github.com/pavelanni/meritrank/internal/model"
	"github.com/pavelanni/meritrank/internal/report"
)

// Ages accepted when a student is typed in by hand.
const (
	minManualAge = 18
	maxManualAge = 25
)

// errQuit ends the menu loop when input runs out mid-prompt.
var errQuit = errors.New("input closed")

// shell is the interactive menu over a populated store.
type shell struct {
	app        *app
	in         *bufio.Scanner
	out        io.Writer
	exportPath string
}

func newShell(a *app, in io.Reader, out io.Writer, exportPath string) *shell {
	if exportPath == "" {
		exportPath = report.DefaultFileName
	}
	return &shell{app: a, in: bufio.NewScanner(in), out: out, exportPath: exportPath}
}

func (s *shell) t(id string) string {
	return appI18n.T(s.app.ctx, id)
}

func (s *shell) td(id string, data map[string]any) string {
	return appI18n.Td(s.app.ctx, id, data)
}

func (s *shell) println(a ...any) {
	fmt.Fprintln(s.out, a...)
}

// Run shows the menu until the user quits or input ends.
func (s *shell) Run() error {
	for {
		s.menu()
		line, err := s.prompt(s.t("PromptOption"))
		if err != nil {
			return nil
		}

		var actionErr error
		switch strings.TrimSpace(line) {
		case "1":
			actionErr = s.create()
		case "2":
			actionErr = s.find()
		case "3":
			actionErr = s.edit()
		case "4":
			actionErr = s.remove()
		case "5":
			actionErr = s.sample()
		case "6":
			actionErr = report.PrintCatalog(s.app.ctx, s.out, s.app.catalog)
		case "7":
			actionErr = s.top()
		case "8":
			actionErr = s.export()
		case "9":
			actionErr = s.search()
		case "0":
			s.println(s.t("Goodbye"))
			return nil
		default:
			s.println(s.t("InvalidOption"))
		}

		if errors.Is(actionErr, errQuit) {
			return nil
		}
		if actionErr != nil {
			s.app.log.Debug("menu action failed", "error", actionErr)
			s.println(s.td("ErrorMessage", map[string]any{"Error": actionErr}))
		}
	}
}

func (s *shell) menu() {
	s.println()
	s.println("=====================================")
	s.println(" " + s.t("AppTitle"))
	s.println("=====================================")
	s.println("--- " + s.t("MenuTitle") + " ---")
	for _, id := range []string{"MenuCreate", "MenuFind", "MenuEdit", "MenuDelete", "MenuSample", "MenuCatalog", "MenuTop"} {
		s.println(s.t(id))
	}
	s.println(s.td("MenuExport", map[string]any{"Path": s.exportPath}))
	s.println(s.t("MenuSearch"))
	s.println(s.t("MenuQuit"))
	s.println("-------------------------------------")
}

// prompt prints label and reads one line. It returns errQuit at end of input.
func (s *shell) prompt(label string) (string, error) {
	fmt.Fprint(s.out, label)
	if !s.in.Scan() {
		s.println()
		return "", errQuit
	}
	return strings.TrimSpace(s.in.Text()), nil
}

// promptInt asks until the answer is a number within [lo, hi].
func (s *shell) promptInt(label string, lo, hi int) (int, error) {
	for {
		line, err := s.prompt(label)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(line)
		if err == nil && n >= lo && n <= hi {
			return n, nil
		}
		s.println(s.t("InvalidNumber"))
	}
}

// promptAccount reads an account number. ok is false when the answer is not a number.
func (s *shell) promptAccount() (id int64, ok bool, err error) {
	line, err := s.prompt(s.t("PromptAccount"))
	if err != nil {
		return 0, false, err
	}
	id, perr := strconv.ParseInt(line, 10, 64)
	if perr != nil {
		s.println(s.t("InvalidNumber"))
		return 0, false, nil
	}
	return id, true, nil
}

// keep asks for a new value, returning current when the answer is blank.
func (s *shell) keep(labelID, current string) (string, error) {
	line, err := s.prompt(s.td("PromptKeep", map[string]any{"Label": s.t(labelID), "Current": current}))
	if err != nil || line == "" {
		return current, err
	}
	return line, nil
}

// keepInt is keep for numbers; an unparsable answer keeps current.
func (s *shell) keepInt(labelID string, current int) (int, error) {
	line, err := s.keep(labelID, strconv.Itoa(current))
	if err != nil {
		return current, err
	}
	n, perr := strconv.Atoi(line)
	if perr != nil {
		s.println(s.td("KeepingValue", map[string]any{"Current": current}))
		return current, nil
	}
	return n, nil
}

func (s *shell) create() error {
	var p model.PersonalData
	fields := []struct {
		prompt string
		dst    *string
	}{
		{"PromptFirstName", &p.FirstName},
		{"PromptMiddleName", &p.MiddleName},
		{"PromptLastSurname", &p.LastSurname},
		{"PromptSecondSurname", &p.SecondSurname},
		{"PromptAddress", &p.Address},
		{"PromptGender", &p.Gender},
	}
	for _, f := range fields {
		v, err := s.prompt(s.t(f.prompt))
		if err != nil {
			return err
		}
		*f.dst = v
	}
	p.Gender = strings.ToUpper(p.Gender)

	age, err := s.promptInt(s.td("PromptAge", map[string]any{"Min": minManualAge, "Max": maxManualAge}), minManualAge, maxManualAge)
	if err != nil {
		return err
	}
	p.Age = age

	maxSemester := s.app.catalog.Semesters()
	semester, err := s.promptInt(s.td("PromptSemester", map[string]any{"Max": maxSemester}), 1, maxSemester)
	if err != nil {
		return err
	}

	st, err := s.app.store.Create(p, semester)
	if err != nil {
		return err
	}
	s.println(s.td("StudentCreated", map[string]any{"ID": st.AccountID, "Rank": st.FinalRank}))
	return nil
}

func (s *shell) find() error {
	id, ok, err := s.promptAccount()
	if err != nil || !ok {
		return err
	}
	s.app.store.Rerank()
	st, found := s.app.store.FindByAccountID(id)
	if !found {
		s.println(s.td("StudentNotFound", map[string]any{"ID": id}))
		return nil
	}
	return report.PrintRecord(s.app.ctx, s.out, st)
}

func (s *shell) edit() error {
	id, ok, err := s.promptAccount()
	if err != nil || !ok {
		return err
	}
	st, found := s.app.store.FindByAccountID(id)
	if !found {
		s.println(s.td("StudentNotFound", map[string]any{"ID": id}))
		return nil
	}
	s.println(s.td("EditingStudent", map[string]any{"Name": st.FullName()}))

	p := st.Personal()
	fields := []struct {
		label string
		dst   *string
	}{
		{"LabelFirstName", &p.FirstName},
		{"LabelMiddleName", &p.MiddleName},
		{"LabelLastSurname", &p.LastSurname},
		{"LabelSecondSurname", &p.SecondSurname},
		{"LabelAddress", &p.Address},
		{"LabelGender", &p.Gender},
	}
	for _, f := range fields {
		v, err := s.keep(f.label, *f.dst)
		if err != nil {
			return err
		}
		*f.dst = v
	}
	p.Gender = strings.ToUpper(p.Gender)

	if p.Age, err = s.keepInt("LabelAge", p.Age); err != nil {
		return err
	}
	semester, err := s.keepInt("LabelSemester", st.Semester)
	if err != nil {
		return err
	}

	if err := s.app.store.Update(id, p, semester); err != nil {
		return err
	}
	s.println(s.td("StudentUpdated", map[string]any{"ID": id}))
	return nil
}

func (s *shell) remove() error {
	id, ok, err := s.promptAccount()
	if err != nil || !ok {
		return err
	}
	if err := s.app.store.Delete(id); err != nil {
		if model.IsNotFound(err) {
			s.println(s.td("StudentNotFound", map[string]any{"ID": id}))
			return nil
		}
		return err
	}
	s.println(s.td("StudentDeleted", map[string]any{"ID": id}))
	return nil
}

func (s *shell) sample() error {
	line, err := s.prompt(s.td("PromptSampleSize", map[string]any{"Max": s.app.store.Len()}))
	if err != nil {
		return err
	}
	n, perr := strconv.Atoi(line)
	if perr != nil {
		s.println(s.t("InvalidNumber"))
		return nil
	}
	students, err := s.app.store.SampleRandom(n)
	if err != nil {
		return err
	}
	return report.PrintSample(s.app.ctx, s.out, students)
}

func (s *shell) top() error {
	students, err := s.app.store.Top(10)
	if err != nil {
		return err
	}
	return report.PrintTop(s.app.ctx, s.out, students)
}

func (s *shell) export() error {
	rows := s.app.store.ExportRanking()
	format := report.FormatFor(s.exportPath, report.FormatCSV)
	if err := report.ExportFile(s.exportPath, format, rows); err != nil {
		return err
	}
	s.app.log.Info("exported ranking", "path", s.exportPath, "format", format, "rows", len(rows))
	s.println(appI18n.Tpd(s.app.ctx, "ExportDone", len(rows), map[string]any{"Path": s.exportPath}))
	return nil
}

func (s *shell) search() error {
	term, err := s.prompt(s.t("PromptSurname"))
	if err != nil {
		return err
	}
	return report.PrintSearch(s.app.ctx, s.out, term, s.app.store.FindBySurname(term))
}
