// Package metrics provides an abstract interface for recording and
// managing various types of metrics within an application. It is designed
// to offer a unified and simple API for common metric operations, such as
// registering and recording standard and labeled metrics.
//
// PrometheusMetrics is the implementation used by the conversion service.
//
// Key functionalities include:
//   - Register: To define and set up new metrics.
//   - Record: To record values for the standard metrics.
//   - RegisterWithLabels: To create new metrics with associated labels.
//   - RecordWithLabels: To record values for labeled metrics, providing
//     label values dynamically.
//
// Usage Example:
//
//	m := metrics.NewPrometheusMetrics()
//	m.RegisterWithLabels("numwords_conversions_total", "Counter", "Conversions by endpoint and status", []string{"endpoint", "status"})
//	m.RecordWithLabels("numwords_conversions_total", 1, "convert", "success")
package metrics

// Metrics is implemented by PrometheusMetrics.
type Metrics interface {
	Register(name, metricType, help string)
	Record(name string, value float64)
	RegisterWithLabels(name, metricType, help string, labels []string)
	RecordWithLabels(name string, value float64, labelValues ...string)
}
