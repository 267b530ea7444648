package log

// Common field names for structured logging
const (
	FieldComponent   = "component"
	FieldOperation   = "operation"
	FieldError       = "error"
	FieldOwner       = "owner"
	FieldPrincipal   = "principal"
	FieldTxID        = "transaction_id"
	FieldTxType      = "transaction_type"
	FieldCategory    = "category"
	FieldAmount      = "amount"
	FieldBudgetID    = "budget_id"
	FieldGoalID      = "goal_id"
	FieldGoalStatus  = "goal_status"
	FieldSpentCents  = "spent_cents"
	FieldSavedCents  = "saved_cents"
	FieldTargetCents = "target_cents"
	FieldSubject     = "subject"
	FieldSheetName   = "sheet"
	FieldDuration    = "duration_ms"
)

// Components defines standard component names
const (
	ComponentApp         = "app"
	ComponentCoordinator = "coordinator"
	ComponentBudget      = "budget"
	ComponentGoal        = "goal"
	ComponentReport      = "report"
	ComponentLedger      = "ledger"
	ComponentNotify      = "notify"
	ComponentWorker      = "worker"
	ComponentSheets      = "sheets"
	ComponentExport      = "export"
)

// Operations defines standard operation names
const (
	OpCreate    = "create"
	OpRead      = "read"
	OpUpdate    = "update"
	OpDelete    = "delete"
	OpList      = "list"
	OpPropagate = "propagate"
	OpSweep     = "sweep"
	OpExport    = "export"
	OpValidate  = "validate"
	OpStartup   = "startup"
	OpShutdown  = "shutdown"
)
