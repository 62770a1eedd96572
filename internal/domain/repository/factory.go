package repository

// Factory describes access to different domain repositories.
type Factory interface {
	Customers() CustomerRepository
	Programs() ProgramRepository
	Ledger() LedgerRepository
	History() HistoryRepository
	PaymentEvents() PaymentEventRepository
}
