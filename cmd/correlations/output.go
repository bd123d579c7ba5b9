package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/viant/correlations/model"
	"gopkg.in/yaml.v3"
)

// Row is a correlation as printed.
type Row struct {
	UID         string `json:"uid" yaml:"uid"`
	SourceUID   string `json:"sourceUID" yaml:"sourceUID"`
	Source      string `json:"source" yaml:"source"`
	TargetUID   string `json:"targetUID" yaml:"targetUID"`
	Target      string `json:"target" yaml:"target"`
	Label       string `json:"label,omitempty" yaml:"label,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	ReadOnly    bool   `json:"readOnly,omitempty" yaml:"readOnly,omitempty"`
}

// ListResult is the result of a list command.
type ListResult struct {
	Correlations []Row `json:"correlations" yaml:"correlations"`
	Total        int   `json:"total" yaml:"total"`
}

// DeleteResult is the result of a delete command.
type DeleteResult struct {
	SourceUID string `json:"sourceUID" yaml:"sourceUID"`
	UID       string `json:"uid" yaml:"uid"`
	Remaining int    `json:"remaining" yaml:"remaining"`
}

func rowOf(view *model.View) Row {
	return Row{
		UID:         view.UID,
		SourceUID:   view.Source.UID,
		Source:      view.Source.Name,
		TargetUID:   view.Target.UID,
		Target:      view.Target.Name,
		Label:       view.Label,
		Description: view.Description,
		ReadOnly:    view.ReadOnly(),
	}
}

// outputResult writes the result in the specified format.
func outputResult(w io.Writer, result interface{}, format string) error {
	switch format {
	case "json":
		return outputJSON(w, result)
	case "yaml":
		return outputYAML(w, result)
	case "table", "":
		return outputTable(w, result)
	default:
		return fmt.Errorf("unsupported output format: %q", format)
	}
}

func outputJSON(w io.Writer, result interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

func outputYAML(w io.Writer, result interface{}) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(result); err != nil {
		return err
	}
	return encoder.Close()
}

func outputTable(out io.Writer, result interface{}) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	defer w.Flush()

	switch r := result.(type) {
	case ListResult:
		fmt.Fprintln(w, "UID\tSOURCE\tTARGET\tLABEL\tREAD-ONLY")
		for _, row := range r.Correlations {
			writeRow(w, row)
		}
		fmt.Fprintf(w, "\nTOTAL\t%d\n", r.Total)
	case Row:
		fmt.Fprintln(w, "UID\tSOURCE\tTARGET\tLABEL\tREAD-ONLY")
		writeRow(w, r)
	case DeleteResult:
		fmt.Fprintf(w, "DELETED\t%s/%s\n", r.SourceUID, r.UID)
		fmt.Fprintf(w, "REMAINING\t%d\n", r.Remaining)
	default:
		return outputJSON(out, result)
	}
	return nil
}

func writeRow(w io.Writer, row Row) {
	readOnly := ""
	if row.ReadOnly {
		readOnly = "yes"
	}
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", row.UID, row.Source, row.Target, row.Label, readOnly)
}
