// Standard attribute keys for kernel drivers. Keys follow the dotted
// naming of the rest of the library so records can be filtered by prefix.

package log

// Operation context.
const (
	// ComponentKey identifies the package emitting the record.
	// Examples: "binning", "params"
	ComponentKey = "kernel.component"

	// OperationKey names the driver operation.
	// Examples: "bin_column", "bin_matrix", "load_params"
	OperationKey = "kernel.operation"
)

// Data shape.
const (
	// SamplesKey is the number of samples (rows) processed.
	SamplesKey = "data.samples"

	// FeaturesKey is the number of features (columns) processed.
	FeaturesKey = "data.features"

	// FeatureKey is the index of a single feature column.
	FeatureKey = "data.feature"

	// MissingKey is the number of samples whose value is missing.
	MissingKey = "data.missing"

	// BinsKey is the number of bin cuts produced for a feature.
	BinsKey = "bins.count"

	// RequestedBinsKey is the number of bins asked for before deduplication.
	RequestedBinsKey = "bins.requested"
)

// Performance.
const (
	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"

	// WorkersKey records how many goroutines a driver fanned out to.
	WorkersKey = "perf.workers"
)

// Configuration.
const (
	// ParamKey names a configuration parameter.
	ParamKey = "config.param"

	// RegularizationKey records the L2 regularization strength.
	RegularizationKey = "hyperparams.lambda_l2"
)

// Standard operation values.
const (
	OperationBinColumn  = "bin_column"
	OperationBinMatrix  = "bin_matrix"
	OperationLoadParams = "load_params"
)
