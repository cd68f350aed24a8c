package metric

// Unit identifies how a metric value is formatted. It never changes
// comparison semantics: lower is better for every unit we track.
type Unit string

const (
	Nanoseconds  Unit = "ns"
	Milliseconds Unit = "ms"
	Bytes        Unit = "bytes"
)

// Record is the canonical, format-independent representation of one
// benchmark measurement.
type Record struct {
	Name   string    `json:"name"`
	Median float64   `json:"median"`
	Mean   float64   `json:"mean"`
	StdDev float64   `json:"std_dev"`
	Values []float64 `json:"values,omitempty"`
	Unit   Unit      `json:"unit"`
}

// FromSamples builds a Record whose summary statistics are computed from the
// raw sample values.
func FromSamples(name string, values []float64, unit Unit) Record {
	return Record{
		Name:   name,
		Median: Median(values),
		Mean:   Mean(values),
		StdDev: StdDev(values),
		Values: values,
		Unit:   unit,
	}
}
