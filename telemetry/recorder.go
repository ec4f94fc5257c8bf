// Package telemetry records per-step metrics and windowed ecosystem statistics.
package telemetry

import "sort"

// Recorder accepts one named metric value per step.
type Recorder interface {
	Record(step int, name string, value float64)
}

// Sample is one recorded metric value.
type Sample struct {
	Seed  int64   `csv:"seed"`
	Step  int     `csv:"step"`
	Name  string  `csv:"metric"`
	Value float64 `csv:"value"`
}

// MetricLog keeps every recorded sample in memory, grouped by name.
type MetricLog struct {
	series map[string][]Sample
}

// NewMetricLog creates an empty in-memory recorder.
func NewMetricLog() *MetricLog {
	return &MetricLog{series: make(map[string][]Sample)}
}

// Record implements Recorder.
func (l *MetricLog) Record(step int, name string, value float64) {
	l.series[name] = append(l.series[name], Sample{Step: step, Name: name, Value: value})
}

// Series returns the values recorded under name, in step order.
func (l *MetricLog) Series(name string) []float64 {
	samples := l.series[name]
	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = s.Value
	}
	return out
}

// Samples returns the raw samples recorded under name.
func (l *MetricLog) Samples(name string) []Sample {
	out := make([]Sample, len(l.series[name]))
	copy(out, l.series[name])
	return out
}

// Names returns the recorded metric names, sorted.
func (l *MetricLog) Names() []string {
	names := make([]string, 0, len(l.series))
	for n := range l.series {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Tee fans every sample out to all non-nil recorders.
func Tee(recs ...Recorder) Recorder {
	out := make(tee, 0, len(recs))
	for _, r := range recs {
		if r != nil {
			out = append(out, r)
		}
	}
	return out
}

type tee []Recorder

func (t tee) Record(step int, name string, value float64) {
	for _, r := range t {
		r.Record(step, name, value)
	}
}
