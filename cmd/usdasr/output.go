package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/alexBLR/usdasr/internal/domain"
	"gopkg.in/yaml.v3"
)

func jsonMarshal(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}

func printJSON(v any) error {
	b, err := jsonMarshal(v)
	if err != nil {
		return err
	}
	fmt.Println(string(b))
	return nil
}

func printYAML(v any) error {
	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

func printStructured(format string, v any) error {
	switch format {
	case "json":
		return printJSON(v)
	case "yaml":
		return printYAML(v)
	}
	return fmt.Errorf("unknown format %q", format)
}

func printKV(rows [][2]string) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, row := range rows {
		_, _ = fmt.Fprintf(w, "%s\t%s\n", row[0], row[1])
	}
	_ = w.Flush()
}

func printTable(headers []string, rows [][]string) {
	if len(rows) == 0 {
		fmt.Println("no results")
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, strings.Join(headers, "\t"))
	for _, row := range rows {
		_, _ = fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	_ = w.Flush()
}

func printEntitySummaries(items []domain.Entity) {
	rows := make([][]string, 0, len(items))
	for _, e := range items {
		rows = append(rows, []string{
			string(e.Name),
			e.Table,
			e.VerboseName,
			strings.Join(e.Key, ","),
			e.Source,
		})
	}
	printTable([]string{"ENTITY", "TABLE", "NAME", "KEY", "SOURCE"}, rows)
}

func printEntityFields(e domain.Entity) {
	printKV([][2]string{
		{"entity", string(e.Name)},
		{"table", e.Table},
		{"name", e.VerboseName + " / " + e.VerboseNamePlural},
		{"key", strings.Join(e.Key, ",")},
	})
	fmt.Println()

	rows := make([][]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		rows = append(rows, []string{f.Name, f.Column, string(f.Kind), constraints(f), f.Label})
	}
	printTable([]string{"FIELD", "COLUMN", "KIND", "CONSTRAINTS", "LABEL"}, rows)
}

func constraints(f domain.Field) string {
	var parts []string
	if f.PrimaryKey {
		parts = append(parts, "pk")
	}
	if f.MaxLength > 0 {
		parts = append(parts, "max "+strconv.Itoa(f.MaxLength))
	}
	if f.Kind == domain.KindDecimal {
		parts = append(parts, fmt.Sprintf("(%d,%d)", f.MaxDigits, f.DecimalPlaces))
	}
	if f.Nullable {
		parts = append(parts, "null")
	}
	if f.References != "" {
		parts = append(parts, "-> "+string(f.References))
	}
	if len(f.Choices) > 0 {
		values := make([]string, 0, len(f.Choices))
		for _, c := range f.Choices {
			values = append(values, c.Value)
		}
		parts = append(parts, strings.Join(values, "|"))
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, " ")
}

// yamlRecord keeps the schema field order in YAML output.
func yamlRecord(fields []field) *yaml.Node {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, f := range fields {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: f.Name},
			&yaml.Node{Kind: yaml.ScalarNode, Value: f.Value, Style: yaml.DoubleQuotedStyle},
		)
	}
	return node
}

func jsonRecord(fields []field) map[string]string {
	out := make(map[string]string, len(fields))
	for _, f := range fields {
		out[f.Name] = f.Value
	}
	return out
}

func printRecord(format string, fields []field) error {
	switch format {
	case "table":
		rows := make([][2]string, 0, len(fields))
		for _, f := range fields {
			rows = append(rows, [2]string{f.Name, f.Value})
		}
		printKV(rows)
		return nil
	case "yaml":
		return printYAML(yamlRecord(fields))
	case "json":
		return printJSON(jsonRecord(fields))
	}
	return fmt.Errorf("unknown format %q", format)
}

func printRecords(format string, e domain.Entity, records [][]field) error {
	switch format {
	case "table":
		headers := make([]string, 0, len(e.Fields))
		for _, f := range e.Fields {
			headers = append(headers, strings.ToUpper(f.Name))
		}
		rows := make([][]string, 0, len(records))
		for _, r := range records {
			row := make([]string, 0, len(r))
			for _, f := range r {
				row = append(row, f.Value)
			}
			rows = append(rows, row)
		}
		printTable(headers, rows)
		return nil
	case "yaml":
		seq := &yaml.Node{Kind: yaml.SequenceNode}
		for _, r := range records {
			seq.Content = append(seq.Content, yamlRecord(r))
		}
		return printYAML(seq)
	case "json":
		out := make([]map[string]string, 0, len(records))
		for _, r := range records {
			out = append(out, jsonRecord(r))
		}
		return printJSON(out)
	}
	return fmt.Errorf("unknown format %q", format)
}
