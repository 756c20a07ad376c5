// Package schema provides database schema models for proteodb.
// The extension tables are grafted onto an NCBI taxonomy SQLite
// database and hold reference-sequence metadata, gene annotations, and
// discriminative-peptide data for the proteotyping pipeline.
package schema

// DDLGenerator defines how Go models generate SQLite DDL.
type DDLGenerator interface {
	// TableDDL returns the CREATE TABLE statement for this model.
	TableDDL() string

	// IndexDDL returns CREATE INDEX statements for this model.
	// Returns empty slice if no indexes needed.
	IndexDDL() []string

	// TableName returns the SQLite table name for this model.
	TableName() string
}

// Version is the single bookkeeping row describing one database build.
// Rebuilding the extension schema replaces it.
type Version struct {
	// Created is the build date in YYYY-MM-DD form.
	Created string `db:"created" ddl:"TEXT"`

	// Refseq is the RefSeq release the reference sequences came from.
	Refseq string `db:"refseq" ddl:"TEXT"`

	// Taxonomy is the NCBI Taxonomy release of the underlying store.
	Taxonomy string `db:"taxonomy" ddl:"TEXT"`

	// Comment is a free-text note about the build.
	Comment string `db:"comment" ddl:"TEXT"`
}

// Peptide is one peptide-to-reference match produced by a downstream
// matching stage. The table is created here so every proteodb file has
// the full schema, but nothing in this tool populates it.
type Peptide struct {
	// Peptide is the amino-acid sequence of the matched peptide.
	Peptide string `db:"peptide" ddl:"TEXT"`

	// Target is the reference sequence the peptide matched against.
	Target string `db:"target" ddl:"TEXT"`

	// Start is the leftmost matched position on the target.
	Start int `db:"start" ddl:"INTEGER"`

	// End is the rightmost matched position on the target.
	End int `db:"end" ddl:"INTEGER"`

	// Identity is the percent identity of the match.
	Identity int `db:"identity" ddl:"INTEGER"`

	// Matches is the number of matching residues.
	Matches int `db:"matches" ddl:"INTEGER"`
}

// Discriminative marks a peptide as discriminative for one taxon.
// Populated by a downstream stage.
type Discriminative struct {
	Peptide string `db:"peptide" ddl:"TEXT PRIMARY KEY REFERENCES peptides(peptide)"`
	TaxID   int    `db:"taxid" ddl:"INTEGER REFERENCES species(taxid)"`
}

// Refseq maps a reference sequence header to its taxon. The header is
// the natural key; the primary key constraint rejects duplicate
// headers on insert.
type Refseq struct {
	Header string `db:"header" ddl:"TEXT PRIMARY KEY"`
	TaxID  int    `db:"taxid" ddl:"INTEGER"`
}

// Annotation is one gene annotation interval on a reference sequence.
// Header must name an existing refseqs row.
type Annotation struct {
	Header     string `db:"header" ddl:"TEXT REFERENCES refseqs(header)"`
	Start      int    `db:"start" ddl:"INTEGER"`
	End        int    `db:"end" ddl:"INTEGER"`
	Annotation string `db:"annotation" ddl:"TEXT"`
}

// Gene is one NCBI Gene record tied to a taxon.
type Gene struct {
	TaxID       int    `db:"taxid" ddl:"INTEGER REFERENCES species(taxid)"`
	GeneID      int    `db:"gene_id" ddl:"INTEGER PRIMARY KEY"`
	Symbol      string `db:"symbol" ddl:"TEXT"`
	Description string `db:"description" ddl:"TEXT"`
}

// Species is one node of the inherited NCBI taxonomy tree. The table
// normally ships with the taxonomy database; the model exists so a
// fresh file can be bootstrapped with the base schema and so extra
// nodes can be inserted.
type Species struct {
	TaxID  int    `db:"taxid" ddl:"INTEGER PRIMARY KEY"`
	Parent int    `db:"parent" ddl:"INTEGER"`
	Name   string `db:"spname" ddl:"TEXT COLLATE NOCASE"`
	Common string `db:"common" ddl:"TEXT COLLATE NOCASE"`
	Rank   string `db:"rank" ddl:"TEXT"`
	Track  string `db:"track" ddl:"TEXT"`
}
