package household

// Typed operations per record kind. They all share the semantics of add,
// update and remove in store.go.

// AddAccount appends an account under a new identifier and returns it.
func (s *Store) AddAccount(r Account) string { return add(s, r) }

// UpdateAccount merges the non-nil fields of p into the account with that identifier.
// It returns ErrNotFound if there is none.
func (s *Store) UpdateAccount(id string, p AccountPatch) error { return update[Account](s, id, p) }

// DeleteAccount removes the account with that identifier, if any.
func (s *Store) DeleteAccount(id string) bool { return remove[Account](s, id) }

// AddBudget appends a budget under a new identifier and returns it.
func (s *Store) AddBudget(r Budget) string { return add(s, r) }

// UpdateBudget merges the non-nil fields of p into the budget with that identifier.
// It returns ErrNotFound if there is none.
func (s *Store) UpdateBudget(id string, p BudgetPatch) error { return update[Budget](s, id, p) }

// DeleteBudget removes the budget with that identifier, if any.
func (s *Store) DeleteBudget(id string) bool { return remove[Budget](s, id) }

// AddExpense appends an expense under a new identifier and returns it.
func (s *Store) AddExpense(r Expense) string { return add(s, r) }

// UpdateExpense merges the non-nil fields of p into the expense with that identifier.
// It returns ErrNotFound if there is none.
func (s *Store) UpdateExpense(id string, p ExpensePatch) error { return update[Expense](s, id, p) }

// DeleteExpense removes the expense with that identifier, if any.
func (s *Store) DeleteExpense(id string) bool { return remove[Expense](s, id) }

// AddDebt appends an interpersonal debt under a new identifier and returns it.
func (s *Store) AddDebt(r InterpersonalDebt) string { return add(s, r) }

// UpdateDebt merges the non-nil fields of p into the interpersonal debt with that identifier.
// It returns ErrNotFound if there is none.
func (s *Store) UpdateDebt(id string, p DebtPatch) error { return update[InterpersonalDebt](s, id, p) }

// DeleteDebt removes the interpersonal debt with that identifier, if any.
func (s *Store) DeleteDebt(id string) bool { return remove[InterpersonalDebt](s, id) }

// AddLoan appends a financial debt under a new identifier and returns it.
func (s *Store) AddLoan(r FinancialDebt) string { return add(s, r) }

// UpdateLoan merges the non-nil fields of p into the financial debt with that identifier.
// It returns ErrNotFound if there is none.
func (s *Store) UpdateLoan(id string, p LoanPatch) error { return update[FinancialDebt](s, id, p) }

// DeleteLoan removes the financial debt with that identifier, if any.
func (s *Store) DeleteLoan(id string) bool { return remove[FinancialDebt](s, id) }

// AddProperty appends a property under a new identifier and returns it.
func (s *Store) AddProperty(r Property) string { return add(s, r) }

// UpdateProperty merges the non-nil fields of p into the property with that identifier.
// It returns ErrNotFound if there is none.
func (s *Store) UpdateProperty(id string, p PropertyPatch) error { return update[Property](s, id, p) }

// DeleteProperty removes the property with that identifier, if any.
func (s *Store) DeleteProperty(id string) bool { return remove[Property](s, id) }

// AddGroup appends an asset group under a new identifier and returns it.
func (s *Store) AddGroup(r AssetGroup) string { return add(s, r) }

// UpdateGroup merges the non-nil fields of p into the asset group with that identifier.
// It returns ErrNotFound if there is none.
func (s *Store) UpdateGroup(id string, p GroupPatch) error { return update[AssetGroup](s, id, p) }

// DeleteGroup removes the asset group with that identifier, if any.
func (s *Store) DeleteGroup(id string) bool { return remove[AssetGroup](s, id) }

// AddAsset appends an investment asset under a new identifier and returns it.
func (s *Store) AddAsset(r InvestmentAsset) string { return add(s, r) }

// UpdateAsset merges the non-nil fields of p into the investment asset with that identifier.
// It returns ErrNotFound if there is none.
func (s *Store) UpdateAsset(id string, p AssetPatch) error { return update[InvestmentAsset](s, id, p) }

// DeleteAsset removes the investment asset with that identifier, if any.
func (s *Store) DeleteAsset(id string) bool { return remove[InvestmentAsset](s, id) }
