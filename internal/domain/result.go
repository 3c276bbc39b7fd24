package domain

// Entry names in a V-QUEST archive that get merged across batches
const (
	ParametersFile = "Parameters.txt"
	AIRRFile       = "vquest_airr.tsv"
)

// BatchResult maps archive entry names to their raw contents for one submitted batch
type BatchResult map[string][]byte

// CollapsedResult maps output file names to decoded text after merging batches
type CollapsedResult map[string]string
