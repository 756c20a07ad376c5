package schema

import (
	"fmt"
	"reflect"
	"strings"
)

// generateDDL creates a CREATE TABLE statement from struct tags.
func generateDDL(model interface{}, tableName string) string {
	v := reflect.ValueOf(model)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	t := v.Type()

	var columns []string

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		dbTag := field.Tag.Get("db")
		ddlTag := field.Tag.Get("ddl")

		if dbTag != "" && ddlTag != "" {
			columns = append(columns, fmt.Sprintf("    %s %s", dbTag, ddlTag))
		}
	}

	ddl := fmt.Sprintf("CREATE TABLE %s (\n%s\n);",
		tableName,
		strings.Join(columns, ",\n"))

	return ddl
}

// Columns returns the db-tagged column names of a model, in field order.
func Columns(model interface{}) []string {
	v := reflect.ValueOf(model)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	t := v.Type()

	var cols []string
	for i := 0; i < t.NumField(); i++ {
		if dbTag := t.Field(i).Tag.Get("db"); dbTag != "" {
			cols = append(cols, dbTag)
		}
	}
	return cols
}

// Version DDL methods
func (v Version) TableDDL() string {
	return generateDDL(v, "version")
}

func (v Version) IndexDDL() []string {
	return []string{}
}

func (v Version) TableName() string {
	return "version"
}

// Peptide DDL methods
func (p Peptide) TableDDL() string {
	return generateDDL(p, "peptides")
}

func (p Peptide) IndexDDL() []string {
	return []string{
		"CREATE INDEX idx_peptides_peptide ON peptides(peptide);",
	}
}

func (p Peptide) TableName() string {
	return "peptides"
}

// Discriminative DDL methods
func (d Discriminative) TableDDL() string {
	return generateDDL(d, "discriminative")
}

func (d Discriminative) IndexDDL() []string {
	return []string{}
}

func (d Discriminative) TableName() string {
	return "discriminative"
}

// Refseq DDL methods
func (r Refseq) TableDDL() string {
	return generateDDL(r, "refseqs")
}

func (r Refseq) IndexDDL() []string {
	return []string{}
}

func (r Refseq) TableName() string {
	return "refseqs"
}

// Annotation DDL methods
func (a Annotation) TableDDL() string {
	return generateDDL(a, "annotations")
}

func (a Annotation) IndexDDL() []string {
	return []string{
		"CREATE INDEX idx_annotations_header ON annotations(header);",
	}
}

func (a Annotation) TableName() string {
	return "annotations"
}

// Gene DDL methods
func (g Gene) TableDDL() string {
	return generateDDL(g, "gene")
}

func (g Gene) IndexDDL() []string {
	return []string{
		"CREATE INDEX idx_gene_taxid ON gene(taxid);",
	}
}

func (g Gene) TableName() string {
	return "gene"
}

// Species DDL methods
func (s Species) TableDDL() string {
	return generateDDL(s, "species")
}

func (s Species) IndexDDL() []string {
	return []string{}
}

func (s Species) TableName() string {
	return "species"
}

// Extension returns the models owned by the proteotyping schema
// extension, in creation order. Referenced tables come before their
// referrers.
func Extension() []DDLGenerator {
	return []DDLGenerator{
		Version{},
		Peptide{},
		Discriminative{},
		Refseq{},
		Annotation{},
		Gene{},
	}
}

// Base returns the models of the inherited taxonomy schema that the
// extension depends on.
func Base() []DDLGenerator {
	return []DDLGenerator{
		Species{},
	}
}
