package domain

// Tx is one open database transaction. Repositories scoped to it via WithTx
// read and write inside the transaction; nothing is visible to other
// connections until Commit.
type Tx interface {
	Commit() error
	Rollback() error
}

// TxManager opens transactions for usecases that must mutate several
// repositories all-or-nothing.
type TxManager interface {
	Begin() (Tx, error)
}
