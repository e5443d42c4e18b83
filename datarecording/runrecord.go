package datarecording

import "context"

// RunTable is the table that holds one RunRecord per teleportation run.
const RunTable = "runs"

// RunRecord is the flat, storable form of a teleportation run result.
type RunRecord struct {
	RunID              string
	InitialState       string
	BellType           string
	Outcome            string
	Correction         string
	ReconstructedState string
	Fidelity           float64
	ChannelDelay       int64
	StartTime          int64
	CorrectionDelay    int64
	SentAt             uint64
	DeliveredAt        uint64
	CorrectedAt        uint64
	EventsProcessed    int
}

// CreateRunTable creates the runs table on the recorder.
func CreateRunTable(r DataRecorder) {
	r.CreateTable(RunTable, RunRecord{})
}

// ReadRunRecords reads all the run records in insertion order.
func (r *SQLiteReader) ReadRunRecords(ctx context.Context) ([]RunRecord, error) {
	r.MapTable(RunTable, RunRecord{})

	results, _, err := r.Query(ctx, RunTable, QueryParams{OrderBy: "rowid"})
	if err != nil {
		return nil, err
	}

	records := make([]RunRecord, 0, len(results))
	for _, res := range results {
		records = append(records, *res.(*RunRecord))
	}

	return records, nil
}
