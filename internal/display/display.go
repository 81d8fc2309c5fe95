package display

import (
	"fmt"
	"io"
	"math/rand/v2"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/danpilch/trainlist/internal/train"
)

const (
	numWidth         = 15
	destinationWidth = 30
	startTimeWidth   = 25

	missingText = "None"
)

const helpText = `Commands:

add - add a train;
list - list all trains;
select <destination> - show trains going to a destination;
help - show this help;
exit - quit the program.
`

// NoMatchesNotice is written to the error stream when a selection is empty.
const NoMatchesNotice = "No trains are going to that destination!"

// Printer renders trains for the terminal. Regular output goes to out,
// notices go to errOut.
type Printer struct {
	out         io.Writer
	errOut      io.Writer
	placeholder func() int
}

func NewPrinter(out, errOut io.Writer) *Printer {
	return &Printer{
		out:         out,
		errOut:      errOut,
		placeholder: placeholderNum,
	}
}

// placeholderNum stands in for a missing train number.
func placeholderNum() int {
	return 1000 + rand.IntN(9000)
}

// Table prints every record as a bordered, centered table.
func (p *Printer) Table(c train.Collection) error {
	line := "+-" + strings.Repeat("-", numWidth) +
		"-+-" + strings.Repeat("-", destinationWidth) +
		"-+-" + strings.Repeat("-", startTimeWidth) + "-+"

	var b strings.Builder
	b.WriteString(line + "\n")
	b.WriteString(row("Train No.", "Destination", "Departure") + "\n")
	b.WriteString(line + "\n")
	for _, r := range c {
		b.WriteString(row(p.cells(r)) + "\n")
	}
	b.WriteString(line + "\n")

	_, err := io.WriteString(p.out, b.String())
	return err
}

// Matches prints "<num>: <start time>" per record, or a notice on the
// error stream when there is nothing to show.
func (p *Printer) Matches(c train.Collection) error {
	if len(c) == 0 {
		_, err := fmt.Fprintln(p.errOut, NoMatchesNotice)
		return err
	}

	var b strings.Builder
	for _, r := range c {
		num, _, startTime := p.cells(r)
		b.WriteString(center(num, numWidth))
		b.WriteString(": ")
		b.WriteString(center(startTime, startTimeWidth))
		b.WriteString("\n")
	}
	_, err := io.WriteString(p.out, b.String())
	return err
}

func (p *Printer) Help() error {
	_, err := io.WriteString(p.out, helpText)
	return err
}

// cells returns the display text of each field, substituting defaults for
// fields the record was stored without.
func (p *Printer) cells(r train.Record) (num, destination, startTime string) {
	num = strconv.Itoa(r.Num)
	if !r.Has(train.FieldNum) {
		num = strconv.Itoa(p.placeholder())
	}
	destination = r.Destination
	if !r.Has(train.FieldDestination) {
		destination = missingText
	}
	startTime = r.StartTime
	if !r.Has(train.FieldStartTime) {
		startTime = missingText
	}
	return num, destination, startTime
}

func row(num, destination, startTime string) string {
	return "| " + center(num, numWidth) +
		" | " + center(destination, destinationWidth) +
		" | " + center(startTime, startTimeWidth) + " |"
}

// center pads s to width characters, putting the odd space on the right.
// Longer strings are returned unchanged.
func center(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	pad := width - n
	left := pad / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", pad-left)
}
