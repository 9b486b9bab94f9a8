// Package dataset supplies the (x, y) samples that feed a marginal figure.
//
// # Sources
//
// Datasets come from three places:
//
//   - Synthetic generators: [Normal] draws correlated Gaussian samples and
//     [StudyHours] simulates study time against exam scores. Both are seeded
//     so the same seed always yields the same samples.
//   - Files: [ReadCSV], [ReadJSON] and [ReadYAML] parse tabular or columnar
//     data; [Load] dispatches on the file extension.
//   - [Builtin] looks up a generator by name for the CLI and HTTP API.
//
// # Statistics
//
// [Correlation] computes Pearson's r and [Describe] the usual summary
// (count, mean, standard deviation, quartiles). Neither affects layout; they
// are reported alongside the figure.
package dataset
