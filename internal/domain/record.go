package domain

// Record is a single named sequence parsed from FASTA or FASTQ input.
type Record struct {
	ID          string
	Description string
	Letters     string
}

// Header returns the FASTA header text (without the leading '>')
func (r Record) Header() string {
	if r.Description == "" {
		return r.ID
	}

	return r.ID + " " + r.Description
}
