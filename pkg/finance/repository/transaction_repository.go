package repository

import "greenlands/entities"

type TransactionRepository interface {
	Create(t *entities.Transaction) error
	// ByFarmer returns the farmer's full ledger, newest first.
	ByFarmer(farmerID uint) ([]entities.Transaction, error)
}
