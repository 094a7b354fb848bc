package matrix

import (
	"fmt"
	"strings"

	"github.com/rpcmatrix/jsonrpc-contract-tests/classify"
	"github.com/rpcmatrix/jsonrpc-contract-tests/rpcdef"
)

type RowKind int

const (
	MethodRow RowKind = iota
	ErrorCaseRow
)

// FirstColumn is the header of the label column.
func (k RowKind) FirstColumn() string {
	if k == ErrorCaseRow {
		return "test"
	}
	return "method"
}

const errorCaseLabelWidth = 20

// Row is one line of the matrix: a catalogue entry and one Outcome per network, in column order.
type Row struct {
	Label string
	Kind  RowKind
	Cells []classify.Outcome
}

func newRow(label string, kind RowKind, networks int) Row {
	return Row{Label: label, Kind: kind, Cells: make([]classify.Outcome, networks)}
}

// String renders the row as "label, cell, cell, ...".
func (r Row) String() string {
	label := r.Label
	if r.Kind == ErrorCaseRow {
		label = fmt.Sprintf("%-*s", errorCaseLabelWidth, label)
	}
	parts := make([]string, 0, len(r.Cells)+1)
	parts = append(parts, label)
	for _, o := range r.Cells {
		parts = append(parts, FormatCell(o))
	}
	return strings.Join(parts, ", ")
}

// HeaderLine renders the header row for the given network columns.
func HeaderLine(kind RowKind, networks []string) string {
	return strings.Join(append([]string{kind.FirstColumn()}, networks...), ", ")
}

// FormatCell renders an Outcome for the table.
func FormatCell(o classify.Outcome) string {
	switch o.Kind {
	case classify.OK:
		return fmt.Sprintf("OK (%d)", o.Status)
	case classify.EmptyResult:
		return fmt.Sprintf("Empty response (%d)", o.Status)
	case classify.NotSupported:
		if o.Code == rpcdef.CodeMethodNotFound {
			return "N"
		}
		return fmt.Sprintf("N(%d)", o.Code)
	case classify.UnknownError:
		return fmt.Sprintf("%d (%d)", o.Code, o.Status)
	case classify.AuthInvalid:
		return fmt.Sprintf("auth invalid (%d)", o.Status)
	case classify.AccessDenied:
		return fmt.Sprintf("access denied (%d)", o.Status)
	case classify.TransportError:
		return "transport error"
	default:
		return o.String()
	}
}
