package logging

// Standardized field names for structured logging across the pipeline stages.
const (
	FieldFile          = "file_path"
	FieldStage         = "stage"
	FieldLine          = "line"
	FieldTransactionID = "transaction_id"
	FieldProductID     = "product_id"
	FieldRegion        = "region"
	FieldCategory      = "category"
	FieldReason        = "reason"
	FieldError         = "error"
	FieldDuration      = "duration_ms"
	FieldCount         = "count"
	FieldValid         = "valid"
	FieldRejected      = "rejected"
	FieldMatched       = "matched"
	FieldWorkers       = "workers"
	FieldDelimiter     = "delimiter"
	FieldInputFile     = "input_file"
	FieldOutputFile    = "output_file"
)
